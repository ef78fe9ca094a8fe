package main

import (
	"context"
	"fmt"
	"os"

	"cpi-resender/config"
	"cpi-resender/internal/app"
	"cpi-resender/internal/core/domain"
	"cpi-resender/internal/core/ports"
	"cpi-resender/pkg/logger"

	"github.com/spf13/cobra"
)

// cli carries the services the subcommands operate on. Tests set them
// directly and mark the cli ready, which skips config loading.
type cli struct {
	configPath string
	operator   string

	ready bool
	app   *app.App

	session   domain.Session
	discovery ports.DiscoveryService
	payloads  ports.PayloadService
	resend    ports.ResendService
	markers   ports.MarkerService
	overview  ports.OverviewService
	tokens    ports.TokenService
}

func (c *cli) init(cmd *cobra.Command, _ []string) error {
	if c.ready {
		return nil
	}

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	a, err := app.New(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}

	c.app = a
	c.session = a.Session
	if c.operator != "" {
		c.session.Operator = c.operator
	}
	c.discovery = a.Discovery
	c.payloads = a.Payloads
	c.resend = a.Resend
	c.markers = a.Markers
	c.overview = a.Overview
	c.tokens = a.Tokens
	c.ready = true
	return nil
}

func (c *cli) close(*cobra.Command, []string) {
	if c.app != nil {
		c.app.Close()
	}
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:               "cpi-resender",
		Short:             "Find, cache and resend failed SAP CPI messages",
		SilenceUsage:      true,
		PersistentPreRunE: c.init,
		PersistentPostRun: c.close,
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "configuration file (default ./config.yaml or ./config/config.yaml)")
	root.PersistentFlags().StringVar(&c.operator, "operator", "", "operator name recorded on resent markers")

	root.AddCommand(
		flowsCmd(c),
		failedCmd(c),
		messagesCmd(c),
		fetchCmd(c),
		cachedCmd(c),
		resendCmd(c),
		markersCmd(c),
		exportCmd(c),
		importCmd(c),
		overviewCmd(c),
		tokenCmd(c),
	)
	return root
}

func main() {
	if err := newRootCmd(&cli{}).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
