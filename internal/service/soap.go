package service

import (
	"errors"
	"strings"

	"cpi-resender/internal/core/domain"
	"cpi-resender/pkg/apperror"

	"github.com/beevik/etree"
)

const (
	soapEnvelopeNS  = "http://schemas.xmlsoap.org/soap/envelope/"
	soapContentType = "text/xml; charset=utf-8"
	httpContentType = "application/xml"
)

var soapPrefixes = map[string]bool{"soap": true, "soapenv": true}

// FramePayload returns the request body and content type for an endpoint of
// the given adapter type. HTTP endpoints get the payload as stored.
func FramePayload(adapter domain.AdapterType, payload string) (string, string, error) {
	if adapter != domain.AdapterSOAP {
		return payload, httpContentType, nil
	}
	body, err := WrapSOAP(payload)
	if err != nil {
		return "", "", err
	}
	return body, soapContentType, nil
}

// WrapSOAP places payload in a canonical SOAP 1.1 envelope. Stray soap and
// soapenv namespace declarations are removed first, and a <payload> root
// wrapper is unwrapped.
func WrapSOAP(payload string) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(payload); err != nil {
		return "", apperror.ErrParse("SOAP payload", err)
	}
	root := doc.Root()
	if root == nil {
		return "", apperror.ErrParse("SOAP payload", errors.New("no root element"))
	}
	stripSOAPNamespaces(root)

	env := etree.NewDocument()
	envelope := env.CreateElement("soapenv:Envelope")
	envelope.CreateAttr("xmlns:soapenv", soapEnvelopeNS)
	envelope.CreateElement("soapenv:Header")
	body := envelope.CreateElement("soapenv:Body")

	if root.Space == "" && strings.EqualFold(root.Tag, "payload") {
		for _, tok := range root.Child {
			switch t := tok.(type) {
			case *etree.Element:
				body.AddChild(t.Copy())
			case *etree.CharData:
				if strings.TrimSpace(t.Data) != "" {
					body.CreateText(strings.TrimSpace(t.Data))
				}
			}
		}
	} else {
		body.AddChild(root.Copy())
	}

	return env.WriteToString()
}

// stripSOAPNamespaces removes xmlns:soap and xmlns:soapenv attributes, and
// elements of that name, from e and everything below it.
func stripSOAPNamespaces(e *etree.Element) {
	for _, a := range append([]etree.Attr(nil), e.Attr...) {
		if a.Space == "xmlns" && soapPrefixes[a.Key] {
			e.RemoveAttr(a.FullKey())
		}
	}
	for _, c := range e.ChildElements() {
		if c.Space == "xmlns" && soapPrefixes[c.Tag] {
			e.RemoveChild(c)
			continue
		}
		stripSOAPNamespaces(c)
	}
}
