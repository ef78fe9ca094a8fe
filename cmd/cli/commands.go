package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"cpi-resender/internal/core/domain"

	"github.com/spf13/cobra"
)

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func flowsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "flows",
		Short: "List deployed integration flows with completed and failed counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flows, err := c.discovery.ListIntegrationFlows(cmd.Context(), c.session)
			if err != nil {
				return err
			}
			counts, err := c.discovery.CountsPerFlow(cmd.Context(), c.session, flows)
			if err != nil {
				return err
			}

			tw := table(cmd.OutOrStdout())
			fmt.Fprintln(tw, "FLOW\tCOMPLETED\tFAILED")
			for _, fc := range counts {
				fmt.Fprintf(tw, "%s\t%d\t%d\n", fc.Name, fc.Completed, fc.Failed)
			}
			return tw.Flush()
		},
	}
}

func failedCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "failed",
		Short: "List flows that have failed messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flows, err := c.discovery.ListIntegrationFlows(cmd.Context(), c.session)
			if err != nil {
				return err
			}
			counts, err := c.discovery.FailedCountsPerFlow(cmd.Context(), c.session, flows)
			if err != nil {
				return err
			}
			if len(counts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no failed messages")
				return nil
			}

			tw := table(cmd.OutOrStdout())
			fmt.Fprintln(tw, "FLOW\tFAILED")
			for _, fc := range counts {
				fmt.Fprintf(tw, "%s\t%d\n", fc.Name, fc.Failed)
			}
			return tw.Flush()
		},
	}
}

func messagesCmd(c *cli) *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "messages <flow>",
		Short: "List failed messages of a flow, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msgs, err := c.discovery.ListFailedMessages(cmd.Context(), c.session, args[0], top)
			if err != nil {
				return err
			}

			tw := table(cmd.OutOrStdout())
			fmt.Fprintln(tw, "GUID\tLOG START\tERROR")
			for _, m := range msgs {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", m.MessageGUID, formatTime(m.LogStart), oneLine(m.ErrorText, 80))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&top, "top", 0, "maximum number of messages (0 uses discovery.list_top)")
	return cmd
}

func fetchCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <flow>",
		Short: "Fetch the payloads of a flow's failed messages into the local cache",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var entries []domain.CachedPayload
			err := withProgress(cmd, func(ctx context.Context, progress chan<- domain.ProgressEvent) error {
				var err error
				entries, err = c.payloads.FetchAndCache(ctx, c.session, args[0], progress)
				return err
			})
			if err != nil {
				return err
			}

			withPayload := 0
			for _, e := range entries {
				if e.HasPayload() {
					withPayload++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cached %d messages of %s, %d with payload\n", len(entries), args[0], withPayload)
			return nil
		},
	}
}

func cachedCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "cached [flow]",
		Short: "Show cached bundles, or the entries of one flow's bundle",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := table(cmd.OutOrStdout())

			if len(args) == 0 {
				flows, err := c.payloads.ListCachedFlows(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(tw, "FLOW\tENTRIES\tWITH PAYLOAD")
				for _, f := range flows {
					fmt.Fprintf(tw, "%s\t%d\t%d\n", f.IntegrationFlowName, f.Entries, f.WithPayload)
				}
				return tw.Flush()
			}

			entries, err := c.payloads.GetCached(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(tw, "GUID\tPAYLOAD\tRESENT\tERROR")
			for _, e := range entries {
				resent, err := c.markers.WasResent(cmd.Context(), e.MessageGUID)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.MessageGUID, yesNo(e.HasPayload()), yesNo(resent), oneLine(e.Error, 60))
			}
			return tw.Flush()
		},
	}
}

func resendCmd(c *cli) *cobra.Command {
	var includeResent bool
	cmd := &cobra.Command{
		Use:   "resend <flow> [guid...]",
		Short: "Resend cached payloads of a flow",
		Long: "Resend cached payloads of a flow. Without guids every cached entry that has a payload " +
			"and was not resent before is sent.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flow := args[0]
			items, err := c.resendItems(cmd.Context(), flow, args[1:], includeResent)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing to resend")
				return nil
			}

			var report *domain.ResendReport
			err = withProgress(cmd, func(ctx context.Context, progress chan<- domain.ProgressEvent) error {
				var err error
				report, err = c.resend.Resend(ctx, c.session, items, progress)
				return err
			})
			if report != nil {
				printReport(cmd.OutOrStdout(), report)
			}
			if err != nil {
				return err
			}

			if report.FailedCount > 0 {
				return fmt.Errorf("%d of %d messages failed", report.FailedCount, report.Total)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&includeResent, "include-resent", false, "also resend entries that already carry a resent marker")
	return cmd
}

// resendItems selects the requested guids, or every eligible cached entry.
func (c *cli) resendItems(ctx context.Context, flow string, guids []string, includeResent bool) ([]domain.ResendItem, error) {
	if len(guids) > 0 {
		items := make([]domain.ResendItem, 0, len(guids))
		for _, g := range guids {
			items = append(items, domain.ResendItem{MessageGUID: g, IntegrationFlowName: flow})
		}
		return items, nil
	}

	entries, err := c.payloads.GetCached(ctx, flow)
	if err != nil {
		return nil, err
	}
	var items []domain.ResendItem
	for _, e := range entries {
		if !e.HasPayload() {
			continue
		}
		if !includeResent {
			resent, err := c.markers.WasResent(ctx, e.MessageGUID)
			if err != nil {
				return nil, err
			}
			if resent {
				continue
			}
		}
		items = append(items, domain.ResendItem{MessageGUID: e.MessageGUID, IntegrationFlowName: flow})
	}
	return items, nil
}

func printReport(w io.Writer, r *domain.ResendReport) {
	tw := table(w)
	fmt.Fprintln(tw, "#\tGUID\tRESULT\tDETAIL")
	for _, res := range r.Results {
		result, detail := "ok", res.EndpointURL
		if !res.Success {
			result, detail = "FAILED", res.Error
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", res.Index+1, res.MessageGUID, result, oneLine(detail, 80))
	}
	tw.Flush()

	fmt.Fprintf(w, "%d sent, %d failed, %d data store entries deleted\n", r.SuccessCount, r.FailedCount, r.DeletedEntries)
	if r.CleanupWarning != "" {
		fmt.Fprintf(w, "warning: %s\n", r.CleanupWarning)
	}
}

func markersCmd(c *cli) *cobra.Command {
	var flow string
	var clearAll bool
	cmd := &cobra.Command{
		Use:   "markers",
		Short: "List resent markers, or clear them all with --clear",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if clearAll {
				if err := c.markers.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "resent markers cleared")
				return nil
			}

			var list []domain.ResentMarker
			var err error
			if flow != "" {
				list, err = c.markers.ListByFlow(cmd.Context(), flow)
			} else {
				list, err = c.markers.List(cmd.Context())
			}
			if err != nil {
				return err
			}

			tw := table(cmd.OutOrStdout())
			fmt.Fprintln(tw, "GUID\tFLOW\tRESENT AT")
			for _, m := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", m.MessageGUID, m.IntegrationFlowName, formatTime(m.ResentTime()))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&flow, "flow", "", "only markers of this flow")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "delete every resent marker")
	return cmd
}

func exportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write the resent markers to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.markers.Export(cmd.Context())
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[0], data, 0o644); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d markers to %s\n", doc.TotalRecords, args[0])
			return nil
		},
	}
}

func importCmd(c *cli) *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load resent markers from a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := domain.ParseImportMode(mode)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading import: %w", err)
			}
			var doc domain.ExportDocument
			if err := json.Unmarshal(data, &doc); err != nil {
				return fmt.Errorf("%s is not a marker export: %w", args[0], err)
			}

			sum, err := c.markers.Import(cmd.Context(), doc, m)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d imported, %d updated, %d skipped of %d\n",
				sum.Mode, sum.Imported, sum.Updated, sum.Skipped, sum.Total)
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", string(domain.ImportMerge), "merge or replace")
	return cmd
}

func overviewCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Summarise the resender flow's message store per flow",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ov, err := c.overview.Overview(cmd.Context(), c.session)
			if err != nil {
				return err
			}
			tw := table(cmd.OutOrStdout())
			fmt.Fprintln(tw, "FLOW\tTOTAL\tCOMPLETED\tFAILED")
			for _, o := range ov {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", o.IFlowName, o.Total, o.Completed, o.Failed)
			}
			return tw.Flush()
		},
	}
}

func tokenCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "token <operator>",
		Short: "Mint an API token for an operator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.tokens == nil {
				return errors.New("auth.jwt_secret is not configured")
			}
			token, exp, err := c.tokens.Generate(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", formatTime(exp))
			return nil
		},
	}
}

// withProgress runs fn and prints its progress events to stderr.
func withProgress(cmd *cobra.Command, fn func(ctx context.Context, progress chan<- domain.ProgressEvent) error) error {
	progress := make(chan domain.ProgressEvent, 16)
	done := make(chan error, 1)
	go func() {
		err := fn(cmd.Context(), progress)
		close(progress)
		done <- err
	}()

	w := cmd.ErrOrStderr()
	for ev := range progress {
		line := fmt.Sprintf("[%s %d/%d] %s", ev.Stage, ev.Current, ev.Total, ev.MessageGUID)
		if ev.Message != "" {
			line += " " + ev.Message
		}
		fmt.Fprintln(w, strings.TrimSpace(line))
	}
	return <-done
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}

func oneLine(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > limit {
		return s[:limit-3] + "..."
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
