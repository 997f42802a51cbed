// Package metadata implements the XML side of record mutation: deriving
// the searchable anytext blob from a metadata document and rewriting
// values inside the document through XPath locators.
//
// All operations parse the document and work on the tree; raw-text
// comparison or splicing would break the invariant that anytext is
// always re-derivable from the stored XML.
package metadata

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeXML normalizes a byte-encoded XML payload to text for storage.
func DecodeXML(raw []byte) string {
	return string(bytes.TrimPrefix(raw, utf8BOM))
}

// AnyText extracts the free-text blob from a metadata document: every
// text node plus every attribute value, trimmed and joined with single
// spaces. Namespace declarations are not values and are skipped.
func AnyText(xmlText string) (string, error) {
	doc, err := xmlquery.Parse(strings.NewReader(xmlText))
	if err != nil {
		return "", fmt.Errorf("parse metadata document: %w", err)
	}
	var parts []string
	collectText(doc, &parts)
	return strings.Join(parts, " "), nil
}

func collectText(n *xmlquery.Node, parts *[]string) {
	switch n.Type {
	case xmlquery.TextNode, xmlquery.CharDataNode:
		if s := strings.TrimSpace(n.Data); s != "" {
			*parts = append(*parts, s)
		}
	case xmlquery.ElementNode:
		for _, attr := range n.Attr {
			if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
				continue
			}
			if s := strings.TrimSpace(attr.Value); s != "" {
				*parts = append(*parts, s)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

// UpdateXPath rewrites the text value of every node matched by the XPath
// expression, resolving prefixes against nsmap, and returns the
// serialized document. A matched node is only rewritten when its current
// text differs from the new value, so re-applying the same update leaves
// the document byte-identical.
func UpdateXPath(xmlText string, nsmap map[string]string, xpathExpr, value string) (string, error) {
	doc, err := xmlquery.Parse(strings.NewReader(xmlText))
	if err != nil {
		return "", fmt.Errorf("parse metadata document: %w", err)
	}

	expr, err := xpath.CompileWithNS(xpathExpr, nsmap)
	if err != nil {
		return "", fmt.Errorf("compile xpath %q: %w", xpathExpr, err)
	}

	for _, node := range xmlquery.QuerySelectorAll(doc, expr) {
		if node.InnerText() != value {
			setText(node, value)
		}
	}

	return doc.OutputXML(false), nil
}

// setText replaces the text content of a matched node. Text nodes are
// rewritten in place; elements get their first text child rewritten, or
// a new one when the element is empty.
func setText(n *xmlquery.Node, value string) {
	if n.Type == xmlquery.TextNode || n.Type == xmlquery.CharDataNode {
		n.Data = value
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.TextNode || c.Type == xmlquery.CharDataNode {
			c.Data = value
			return
		}
	}
	xmlquery.AddChild(n, &xmlquery.Node{Type: xmlquery.TextNode, Data: value})
}
