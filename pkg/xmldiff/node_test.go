package xmldiff

import "testing"

func parseForTest(t *testing.T, xml string) (*NodeInfo, *SchemaRegistry) {
	t.Helper()
	registry := NewSchemaRegistry()
	info, err := Parse([]byte(xml), nil, registry)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return info, registry
}

func TestGroupNodesIndicesAreDense(t *testing.T) {
	info, registry := parseForTest(t, `<a><b/><b/><c/></a>`)
	count, groups, order := groupNodes(info, registry)
	if count != 4 {
		t.Fatalf("expected 4 nodes, got %d", count)
	}
	seen := make([]bool, count)
	for _, nodes := range groups {
		for _, n := range nodes {
			if n.Index < 0 || n.Index >= count {
				t.Fatalf("index %d out of range [0,%d)", n.Index, count)
			}
			seen[n.Index] = true
		}
	}
	for i, ok := range seen {
		if !ok {
			t.Fatalf("index %d was never assigned", i)
		}
	}
	if len(order) == 0 {
		t.Fatal("expected non-empty schema order")
	}
}

func TestNodeCompareToDifferentSchema(t *testing.T) {
	info, registry := parseForTest(t, `<a><b x="1"/><c x="1"/></a>`)
	_, groups, _ := groupNodes(info, registry)
	var b, c *Node
	for _, nodes := range groups {
		for _, n := range nodes {
			switch n.Element.LocalName() {
			case "b":
				b = n
			case "c":
				c = n
			}
		}
	}
	if b == nil || c == nil {
		t.Fatal("expected to find both b and c nodes")
	}
	if got := b.CompareTo(c); got != 0.0 {
		t.Fatalf("nodes with different schema ids should score 0, got %v", got)
	}
}

func TestNodeIsEmpty(t *testing.T) {
	info, registry := parseForTest(t, `<a><b/><c x="1"/></a>`)
	_, groups, _ := groupNodes(info, registry)
	for _, nodes := range groups {
		for _, n := range nodes {
			switch n.Element.LocalName() {
			case "b":
				if !n.IsEmpty() {
					t.Fatal("<b/> with no attributes/text should be empty")
				}
			case "c":
				if n.IsEmpty() {
					t.Fatal("<c x=\"1\"/> should not be empty")
				}
			}
		}
	}
}

func TestNodeTryMatchExclusive(t *testing.T) {
	a := &Node{}
	b := &Node{}
	c := &Node{}
	if !a.TryMatch(b) {
		t.Fatal("first match attempt should succeed")
	}
	if a.TryMatch(c) {
		t.Fatal("a is already matched, should not match again")
	}
	if c.TryMatch(b) {
		t.Fatal("b is already matched, should not match again")
	}
}
