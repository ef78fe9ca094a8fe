package odata

import (
	"errors"
	"strings"

	"cpi-resender/internal/core/domain"
	"cpi-resender/pkg/apperror"

	"github.com/beevik/etree"
)

var errEmptyDocument = errors.New("empty document")

func parseXML(data, what string) (*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(data); err != nil {
		return nil, apperror.ErrParse(what, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, apperror.ErrParse(what, errEmptyDocument)
	}
	return root, nil
}

// is compares local names; d:, m: and other prefixes are ignored.
func is(e *etree.Element, name string) bool {
	return strings.EqualFold(e.Tag, name)
}

func children(e *etree.Element, name string) []*etree.Element {
	if e == nil {
		return nil
	}
	var out []*etree.Element
	for _, c := range e.ChildElements() {
		if is(c, name) {
			out = append(out, c)
		}
	}
	return out
}

func child(e *etree.Element, name string) *etree.Element {
	if cs := children(e, name); len(cs) > 0 {
		return cs[0]
	}
	return nil
}

func childText(e *etree.Element, name string) string {
	if c := child(e, name); c != nil {
		return strings.TrimSpace(c.Text())
	}
	return ""
}

func isNullProperty(e *etree.Element) bool {
	for _, a := range e.Attr {
		if strings.EqualFold(a.Key, "null") && a.Value == "true" {
			return true
		}
	}
	return false
}

// entries returns feed/entry, or the root itself when it is a single entry.
func entries(root *etree.Element) []*etree.Element {
	switch {
	case is(root, "feed"):
		return children(root, "entry")
	case is(root, "entry"):
		return []*etree.Element{root}
	}
	return nil
}

// properties finds an entry's property bag. Media-link entries carry it
// next to content instead of inside it.
func properties(entry *etree.Element) *etree.Element {
	if p := child(child(entry, "content"), "properties"); p != nil {
		return p
	}
	return child(entry, "properties")
}

func propertyRow(props *etree.Element) Row {
	row := Row{}
	for _, p := range props.ChildElements() {
		if isNullProperty(p) {
			row[p.Tag] = nil
			continue
		}
		row[p.Tag] = strings.TrimSpace(p.Text())
	}
	return row
}

// DecodeFeed reads the property bags of an Atom feed or single entry.
// A document of any other shape yields no rows.
func DecodeFeed(data string) ([]Row, error) {
	root, err := parseXML(data, "Atom feed")
	if err != nil {
		return nil, err
	}
	var rows []Row
	for _, e := range entries(root) {
		if props := properties(e); props != nil {
			rows = append(rows, propertyRow(props))
		}
	}
	return rows, nil
}

// DecodeServiceEndpoints reads a ServiceEndpoints feed expanded with its
// EntryPoints navigation.
func DecodeServiceEndpoints(data string) ([]domain.ServiceEndpoint, error) {
	root, err := parseXML(data, "ServiceEndpoints response")
	if err != nil {
		return nil, err
	}

	var out []domain.ServiceEndpoint
	for _, e := range entries(root) {
		se := domain.ServiceEndpoint{}
		if props := properties(e); props != nil {
			se.Name = childText(props, "Name")
		}
		for _, link := range children(e, "link") {
			if !isEntryPointsLink(link) {
				continue
			}
			for _, inner := range entries(child(child(link, "inline"), "feed")) {
				props := properties(inner)
				if props == nil {
					continue
				}
				se.EntryPoints = append(se.EntryPoints, domain.EntryPoint{
					Name: childText(props, "Name"),
					URL:  childText(props, "Url"),
					Type: childText(props, "Type"),
				})
			}
		}
		out = append(out, se)
	}
	return out, nil
}

func isEntryPointsLink(link *etree.Element) bool {
	return strings.EqualFold(link.SelectAttrValue("title", ""), "EntryPoints") ||
		strings.HasSuffix(link.SelectAttrValue("rel", ""), "/EntryPoints")
}

// DecodeRuntimeLocations reads the Cloud Foundry runtime location listing.
func DecodeRuntimeLocations(data string) ([]domain.RuntimeLocation, error) {
	root, err := parseXML(data, "runtime location list")
	if err != nil {
		return nil, err
	}
	var out []domain.RuntimeLocation
	for _, loc := range children(root, "runtimeLocations") {
		out = append(out, domain.RuntimeLocation{
			ID:    childText(loc, "id"),
			State: childText(loc, "state"),
		})
	}
	return out, nil
}

// DecodeIntegrationComponents reads the integration component listing.
// Artifacts without a symbolic name are dropped.
func DecodeIntegrationComponents(data string) ([]domain.IntegrationFlow, error) {
	root, err := parseXML(data, "integration component list")
	if err != nil {
		return nil, err
	}
	var out []domain.IntegrationFlow
	for _, a := range children(root, "artifactInformations") {
		f := domain.IntegrationFlow{
			ID:           childText(a, "id"),
			Name:         childText(a, "name"),
			SymbolicName: childText(a, "symbolicName"),
		}
		if f.SymbolicName == "" {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

// DecodeResenderMessages reads the resender flow's message list: either a
// messages root or bare message elements under any root. Fields come from
// the FinalPayload child when present.
func DecodeResenderMessages(data string) ([]domain.ResenderMessage, error) {
	root, err := parseXML(data, "resender message list")
	if err != nil {
		return nil, err
	}

	var msgs []*etree.Element
	switch {
	case is(root, "message"):
		msgs = []*etree.Element{root}
	case is(root, "messages"):
		msgs = children(root, "message")
	default:
		msgs = children(root, "message")
		if m := child(root, "messages"); m != nil {
			msgs = append(msgs, children(m, "message")...)
		}
	}

	out := make([]domain.ResenderMessage, 0, len(msgs))
	for _, m := range msgs {
		src := m
		if fp := child(m, "FinalPayload"); fp != nil {
			src = fp
		}
		status := domain.MessageStatus(strings.ToUpper(childText(src, "Status")))
		if status == "" {
			status = domain.MessageStatusFailed
		}
		out = append(out, domain.ResenderMessage{
			ID:          childText(m, "id"),
			EntryID:     childText(src, "EntryID"),
			IFlowID:     childText(src, "IFlowID"),
			IFlowName:   childText(src, "IFlowName"),
			MessageGUID: childText(src, "MessageGuid"),
			Status:      status,
		})
	}
	return out, nil
}
