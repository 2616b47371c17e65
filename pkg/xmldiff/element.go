// element.go - the element handle the diff engine reports edits against.
//
// Element is intentionally narrow: the core only needs a local name,
// attribute values, inline text, and a line number for reporting. Parsing
// and line-tracking live in parser.go.
package xmldiff

// Attr is an XML attribute, local name only - namespaces are ignored when
// building structural signatures.
type Attr struct {
	Name  string
	Value string
}

// Element is a handle back to the parsed XML element a Node was built from.
// It is opaque to the core beyond what is exposed here.
type Element struct {
	localName string
	attrs     []Attr
	text      string
	hasText   bool
	line      int
}

// LocalName returns the element's local tag name.
func (e *Element) LocalName() string { return e.localName }

// Attrs returns the element's attributes in document order.
func (e *Element) Attrs() []Attr { return e.attrs }

// Text returns the element's inline first-child text, if any.
func (e *Element) Text() (string, bool) { return e.text, e.hasText }

// Line returns the 1-based source line the element started on, or -1 if
// unknown.
func (e *Element) Line() int { return e.line }
