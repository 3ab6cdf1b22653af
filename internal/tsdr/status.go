// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tsdr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/pdiddy/tsdr-status/pkg/types"
)

// namespaces binds the prefixes used in statusFields to the ST.96 and USPTO
// namespace URIs of the case status document.
var namespaces = map[string]string{
	"ns1": "http://www.wipo.int/standards/XMLSchema/ST96/Common",
	"ns2": "http://www.wipo.int/standards/XMLSchema/ST96/Trademark",
	"ns3": "urn:us:gov:doc:uspto:trademark",
}

// Namespaces returns a copy of the prefix to namespace URI bindings used by
// the status field paths.
func Namespaces() map[string]string {
	return maps.Clone(namespaces)
}

// statusField maps a CaseStatus column to the XPath it is read from.
type statusField struct {
	Column string
	Path   string
}

// statusFields lists the extracted columns. Changing the upstream schema
// means editing this table. Paths are evaluated relative to the document
// element, so ".//" never matches the document element itself.
var statusFields = []statusField{
	{"application_number", ".//ns1:ApplicationNumberText"},
	{"application_date", ".//ns2:ApplicationDate"},
	{"filing_place", ".//ns1:FilingPlace"},
	{"status_code", ".//ns2:MarkCurrentStatusCode"},
	{"status_date", ".//ns2:MarkCurrentStatusDate"},
	{"mark_verbal_element", ".//ns2:MarkVerbalElementText"},
	{"image_file_name", ".//ns2:MarkImage/ns1:FileName"},
	{"applicant_name", ".//ns2:ApplicantBag/ns2:Applicant/ns1:Contact/ns1:Name/ns1:PersonName/ns1:PersonFullName"},
	{"status_description", ".//ns2:NationalTrademarkInformation/ns2:MarkCurrentStatusExternalDescriptionText"},
}

var compiledFields = mustCompileFields(statusFields, namespaces)

type compiledField struct {
	column string
	expr   *xpath.Expr
}

func compileField(f statusField, ns map[string]string) (compiledField, error) {
	expr, err := xpath.CompileWithNS(f.Path, ns)
	if err != nil {
		return compiledField{}, fmt.Errorf("compiling path for %s: %w", f.Column, err)
	}
	return compiledField{column: f.Column, expr: expr}, nil
}

func mustCompileFields(fields []statusField, ns map[string]string) []compiledField {
	out := make([]compiledField, 0, len(fields))
	for _, f := range fields {
		cf, err := compileField(f, ns)
		if err != nil {
			panic(fmt.Sprintf("tsdr: %v", err))
		}
		out = append(out, cf)
	}
	return out
}

// findText returns the trimmed leading text of the first node under root
// matched by f. Text after the first child element is not part of it.
func (f compiledField) findText(root *xmlquery.Node) (string, bool) {
	n := xmlquery.QuerySelector(root, f.expr)
	if n == nil {
		return "", false
	}
	return leadingText(n), true
}

func leadingText(n *xmlquery.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.TextNode, xmlquery.CharDataNode:
			b.WriteString(c.Data)
		case xmlquery.ElementNode:
			return strings.TrimSpace(b.String())
		}
	}
	return strings.TrimSpace(b.String())
}

// parseDocument parses data and returns its document element. Text or a
// second element outside the document element is rejected.
func parseDocument(data []byte) (*xmlquery.Node, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	for n := doc.NextSibling; n != nil; n = n.NextSibling {
		if strings.TrimSpace(n.Data) != "" {
			return nil, errors.New("content before document element")
		}
	}
	var root *xmlquery.Node
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		switch n.Type {
		case xmlquery.ElementNode:
			if root != nil {
				return nil, errors.New("multiple root elements")
			}
			root = n
		case xmlquery.TextNode, xmlquery.CharDataNode:
			if strings.TrimSpace(n.Data) != "" {
				return nil, errors.New("junk after document element")
			}
		}
	}
	if root == nil {
		return nil, errors.New("empty document")
	}
	return root, nil
}

// FetchStatus retrieves and parses the case status for caseID.
func (c *Client) FetchStatus(ctx context.Context, caseID string) (*types.CaseStatus, error) {
	reqURL := c.StatusURL(caseID)
	c.log.Info().Str("case_id", caseID).Str("url", reqURL).Msg("requesting case status")

	resp, err := c.get(ctx, "fetching status for case "+caseID, reqURL)
	if err != nil {
		c.log.Error().Err(err).Str("case_id", caseID).Msg("case status request failed")
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading status response for case %s: %w: %w", caseID, ErrTransport, err)
	}

	status, err := ParseStatus(caseID, data)
	if err != nil {
		c.log.Error().Err(err).Str("case_id", caseID).Msg("case status parse failed")
		return nil, err
	}
	return status, nil
}

// ParseStatus extracts a CaseStatus from a TSDR status XML document. Missing
// elements leave their fields empty; only malformed XML is an error.
func ParseStatus(caseID string, data []byte) (*types.CaseStatus, error) {
	root, err := parseDocument(data)
	if err != nil {
		return nil, &ParseError{CaseID: caseID, Err: err}
	}

	header := make([]string, 0, len(compiledFields)+1)
	row := make([]string, 0, len(compiledFields)+1)
	header = append(header, "case_id")
	row = append(row, caseID)
	for _, f := range compiledFields {
		if text, ok := f.findText(root); ok {
			header = append(header, f.column)
			row = append(row, text)
		}
	}

	status := types.CaseStatusFromRow(header, row)
	return &status, nil
}
