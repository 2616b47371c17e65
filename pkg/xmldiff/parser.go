// parser.go - XML parsing with line-info retention.
//
// This is the external parsing collaborator sitting outside the core: it
// wraps encoding/xml to build a tree of Element handles, retaining source
// line numbers. No evaluated third-party XML library exposes source
// positions on its element handles, so parsing is built directly on
// encoding/xml rather than a third-party XML package - see DESIGN.md.
package xmldiff

import (
	"encoding/xml"
	"fmt"
	"io"
)

// rawElement is the parsed-but-not-yet-normalized XML tree node the external
// collaborator produces. Only local names participate - namespaces are
// dropped.
type rawElement struct {
	localName string
	attrs     []Attr
	text      string
	hasText   bool
	line      int
	children  []*rawElement
}

// parseXML decodes r into a tree of rawElements, retaining the line number
// each start element began on. Returns an error for malformed XML (the
// decoder's error, wrapped with %w so errors.Is/As still reach it); the
// diff operation that calls this fails without producing any edits.
func parseXML(r io.Reader) (*rawElement, error) {
	dec := xml.NewDecoder(r)

	var stack []*rawElement
	var root *rawElement

	for {
		line, _ := dec.InputPos()
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xmldiff: parse XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &rawElement{localName: t.Name.Local, line: line}
			for _, a := range t.Attr {
				el.attrs = append(el.attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
			} else if root == nil {
				root = el
			}
			stack = append(stack, el)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			current := stack[len(stack)-1]
			// Only the first text-bearing child establishes text, matching
			// "if the element's first child node is an XML text node".
			// Mixed content beyond that is not modeled.
			if current.hasText || len(current.children) > 0 {
				continue
			}
			text := string(t)
			if isBlank(text) {
				continue
			}
			current.text = text
			current.hasText = true
		}
	}

	if root == nil {
		return nil, nil
	}
	return root, nil
}

func isBlank(s string) bool {
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return false
		}
	}
	return true
}
