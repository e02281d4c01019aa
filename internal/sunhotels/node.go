package sunhotels

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// node is one element of a parsed XML document. The upstream schema is
// too inconsistent (capitalization and pluralization vary per record)
// for struct-tag unmarshalling, so responses are walked as a generic
// tree and fields are resolved through ordered candidate names.
type node struct {
	name     string
	text     string
	children []*node
}

// parseDocument decodes an XML document into a node tree.
func parseDocument(data []byte) (*node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	root := &node{}
	stack := []*node{root}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &node{name: t.Name.Local}
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, n)
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			cur := stack[len(stack)-1]
			cur.text += string(t)
		}
	}

	if len(root.children) == 0 {
		return nil, errors.New("empty xml document")
	}
	return root, nil
}

// value returns the trimmed character data of the node.
func (n *node) value() string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.text)
}

// child returns the first child element matching any of the candidate
// names, tried in order. Name comparison is case-insensitive. Safe to
// call on nil, so lookups chain without intermediate checks.
func (n *node) child(names ...string) *node {
	if n == nil {
		return nil
	}
	for _, want := range names {
		for _, c := range n.children {
			if strings.EqualFold(c.name, want) {
				return c
			}
		}
	}
	return nil
}

// childAll returns every child element matching any candidate name, in
// document order.
func (n *node) childAll(names ...string) []*node {
	if n == nil {
		return nil
	}
	var out []*node
	for _, c := range n.children {
		for _, want := range names {
			if strings.EqualFold(c.name, want) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// str resolves a text field through the candidate names, returning the
// first non-empty value, or "" when no candidate carries one.
func (n *node) str(names ...string) string {
	if n == nil {
		return ""
	}
	for _, want := range names {
		for _, c := range n.children {
			if strings.EqualFold(c.name, want) {
				if v := c.value(); v != "" {
					return v
				}
			}
		}
	}
	return ""
}

// float resolves a numeric field, returning 0 when absent or unparseable.
func (n *node) float(names ...string) float64 {
	v, err := strconv.ParseFloat(n.str(names...), 64)
	if err != nil {
		return 0
	}
	return v
}

// integer resolves an integer field, returning 0 when absent or unparseable.
func (n *node) integer(names ...string) int {
	v, err := strconv.Atoi(n.str(names...))
	if err != nil {
		return 0
	}
	return v
}
