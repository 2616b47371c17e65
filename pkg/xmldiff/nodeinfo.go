// nodeinfo.go - NodeInfo: the normalized parse product the core owns.
//
// NodeInfo turns a rawElement (the external parser's output) into a
// structurally-addressed node: a dotted signature, a flat property map
// (attributes plus optional inline text), and a child sequence that respects
// the caller's element predicate. Constructing a NodeInfo registers its
// signature and property names in the shared SchemaRegistry, and children
// are built eagerly, so a schema's property-name set is fully accumulated
// once Parse has returned for both documents; Diff parses both before the
// Node constructor (node.go) makes any Format call.
package xmldiff

import "bytes"

// ElementPredicate decides whether a child element participates in the
// diff. It never excludes an element's own attributes/text from its
// *parent's* extraction - only from appearing as a traversable child.
type ElementPredicate func(e *Element) bool

// AlwaysInclude is the default predicate: every element participates.
func AlwaysInclude(*Element) bool { return true }

// NodeInfo is the intermediate parse product for one XML element.
type NodeInfo struct {
	Element    *Element
	Signature  string
	Properties map[string]Bigram
	PropNames  []string // insertion order, for schema registration
	Children   []*NodeInfo
}

// buildNodeInfo recursively builds a NodeInfo tree from a rawElement,
// registering signatures and property names in registry as it goes.
func buildNodeInfo(raw *rawElement, parentSignature string, predicate ElementPredicate, registry *SchemaRegistry) *NodeInfo {
	if predicate == nil {
		predicate = AlwaysInclude
	}

	signature := raw.localName
	if parentSignature != "" {
		signature = parentSignature + "." + raw.localName
	}

	el := &Element{
		localName: raw.localName,
		attrs:     raw.attrs,
		text:      raw.text,
		hasText:   raw.hasText,
		line:      raw.line,
	}

	info := &NodeInfo{
		Element:    el,
		Signature:  signature,
		Properties: make(map[string]Bigram, len(raw.attrs)+1),
	}

	for _, a := range raw.attrs {
		info.Properties[a.Name] = NewBigram(a.Value)
		info.PropNames = append(info.PropNames, a.Name)
	}
	if raw.hasText {
		info.Properties[TextPropertyName] = NewBigram(raw.text)
		info.PropNames = append(info.PropNames, TextPropertyName)
	}

	registry.AddPropertyNames(signature, info.PropNames)

	for _, rawChild := range raw.children {
		childEl := &Element{
			localName: rawChild.localName,
			attrs:     rawChild.attrs,
			text:      rawChild.text,
			hasText:   rawChild.hasText,
			line:      rawChild.line,
		}
		if !predicate(childEl) {
			continue
		}
		info.Children = append(info.Children, buildNodeInfo(rawChild, signature, predicate, registry))
	}

	return info
}

// Parse decodes XML content and builds a NodeInfo tree, registering every
// signature and property name it observes in registry. predicate may be nil
// (equivalent to AlwaysInclude).
func Parse(data []byte, predicate ElementPredicate, registry *SchemaRegistry) (*NodeInfo, error) {
	root, err := parseXML(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, nil
	}
	return buildNodeInfo(root, "", predicate, registry), nil
}
