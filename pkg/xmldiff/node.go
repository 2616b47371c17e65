// node.go - Node: the materialized tree node the matcher operates on.
//
// A Node is built from a NodeInfo tree, assigning a dense index (shared
// Counter, one per document) during children-first depth-first
// construction, and flattening properties against the shared SchemaRegistry.
package xmldiff

// Node is a materialized tree node with a dense index, a non-owning parent
// back-reference, owned children, its schema id, a property vector aligned
// to that schema, and a mutable exclusive-match flag.
type Node struct {
	Index      int
	Parent     *Node
	Children   []*Node
	Element    *Element
	SchemaID   int
	Properties []Bigram
	Matched    bool
}

// buildNode recursively materializes a NodeInfo tree into Nodes, assigning
// indices from counter in children-first depth-first traversal order (i.e.
// the order the constructor visits nodes, not the order children appear in
// their parent's slice - a parent's index is always the last one assigned
// among the subtree it roots, since it is flattened after its children).
func buildNode(info *NodeInfo, parent *Node, registry *SchemaRegistry, counter *Counter) *Node {
	n := &Node{
		Parent:  parent,
		Element: info.Element,
	}

	n.Children = make([]*Node, 0, len(info.Children))
	for _, childInfo := range info.Children {
		n.Children = append(n.Children, buildNode(childInfo, n, registry, counter))
	}

	n.SchemaID, n.Properties = registry.Format(info.Signature, info.Properties)
	n.Index = counter.Next()
	return n
}

// IsEmpty reports whether the node's property vector is empty or every
// Bigram in it is empty.
func (n *Node) IsEmpty() bool {
	if len(n.Properties) == 0 {
		return true
	}
	for _, p := range n.Properties {
		if !p.IsEmpty() {
			return false
		}
	}
	return true
}

// CompareTo returns the node-similarity score between n and other: 0 if
// schema ids differ, 1 if both property vectors are empty, otherwise the
// arithmetic mean of the per-column Bigram comparisons. Matching schema ids
// guarantee equal vector length and column semantics, since both sides share
// a SchemaRegistry.
func (n *Node) CompareTo(other *Node) float64 {
	if n.SchemaID != other.SchemaID {
		return 0.0
	}
	if len(n.Properties) == 0 && len(other.Properties) == 0 {
		return 1.0
	}

	var sum float64
	for i := range n.Properties {
		sum += n.Properties[i].Compare(other.Properties[i])
	}
	return sum / float64(len(n.Properties))
}

// TryMatch atomically (within the single-threaded diff model) pairs n and
// other, succeeding only if neither is yet matched. On success both Matched
// flags are set and it returns true; on failure it returns false without
// side effect.
func (n *Node) TryMatch(other *Node) bool {
	if n.Matched || other.Matched {
		return false
	}
	n.Matched = true
	other.Matched = true
	return true
}

// groupNodes materializes the Node tree rooted at info, flattens it into a
// dense array by index, and buckets it by schema id. Bucket order reflects
// the traversal order the flattening pass used, and is deterministic.
func groupNodes(info *NodeInfo, registry *SchemaRegistry) (count int, groups map[int][]*Node, order []int) {
	if info == nil {
		return 0, map[int][]*Node{}, nil
	}

	var counter Counter
	root := buildNode(info, nil, registry, &counter)
	count = counter.Current()

	flat := make([]*Node, count)
	// Iterative DFS, pushing onto a stack - any traversal order is valid as
	// long as it is deterministic.
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		flat[n.Index] = n
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}

	groups = make(map[int][]*Node)
	for _, n := range flat {
		if _, seen := groups[n.SchemaID]; !seen {
			order = append(order, n.SchemaID)
		}
		groups[n.SchemaID] = append(groups[n.SchemaID], n)
	}

	return count, groups, order
}
