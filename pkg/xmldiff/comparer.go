// comparer.go - NodeComparer: memoized scoring and candidate-pair discovery.
//
// NodeComparer owns two dense expected×actual memoization tables (node and
// children scores) and the augmenting-path-style bipartite sweep that
// estimates a children-similarity fraction. Candidate pairs are emitted
// under the threshold predicate below and scored on node,
// children, and sibling similarity.
package xmldiff

// Direct-match and relative-match thresholds. These are tuning constants
// of the matching heuristic; preserve them exactly to match reference
// edit output.
const (
	directMatchThreshold   = 0.6
	relativeMatchThreshold = 0.8
)

// NodePair is an unordered-match candidate: one expected node, one actual
// node, and the three component scores plus their mean.
type NodePair struct {
	Expected      *Node
	Actual        *Node
	NodeScore     float64
	ChildrenScore float64
	SiblingsScore float64
	AverageScore  float64
}

// NodeComparer caches node_score and children_score over the full dense
// index space of both documents, sized by total node count per side so that
// parent lookups during sibling scoring always index validly.
type NodeComparer struct {
	expectedCount int
	actualCount   int
	nodeScores    [][]float64
	nodeSet       [][]bool
	childScores   [][]float64
	childSet      [][]bool
}

// NewNodeComparer builds a comparer sized for expectedCount expected nodes
// and actualCount actual nodes.
func NewNodeComparer(expectedCount, actualCount int) *NodeComparer {
	c := &NodeComparer{expectedCount: expectedCount, actualCount: actualCount}
	c.nodeScores = make2D(expectedCount, actualCount)
	c.nodeSet = make2DBool(expectedCount, actualCount)
	c.childScores = make2D(expectedCount, actualCount)
	c.childSet = make2DBool(expectedCount, actualCount)
	return c
}

func make2D(rows, cols int) [][]float64 {
	g := make([][]float64, rows)
	for i := range g {
		g[i] = make([]float64, cols)
	}
	return g
}

func make2DBool(rows, cols int) [][]bool {
	g := make([][]bool, rows)
	for i := range g {
		g[i] = make([]bool, cols)
	}
	return g
}

// NodeScore returns the cached node-similarity score for (e, a).
func (c *NodeComparer) NodeScore(e, a *Node) float64 {
	if c.nodeSet[e.Index][a.Index] {
		return c.nodeScores[e.Index][a.Index]
	}
	score := e.CompareTo(a)
	c.nodeScores[e.Index][a.Index] = score
	c.nodeSet[e.Index][a.Index] = true
	return score
}

// ChildrenScore returns the cached children-similarity score for (e, a):
// 1.0 if both child lists are empty, 0.0 if exactly one is, otherwise the
// count_matches fraction over max(|e.Children|, |a.Children|).
func (c *NodeComparer) ChildrenScore(e, a *Node) float64 {
	if c.childSet[e.Index][a.Index] {
		return c.childScores[e.Index][a.Index]
	}

	var score float64
	switch {
	case len(e.Children) == 0 && len(a.Children) == 0:
		score = 1.0
	case len(e.Children) == 0 || len(a.Children) == 0:
		score = 0.0
	default:
		matches := c.countMatches(e.Children, a.Children)
		denom := len(e.Children)
		if len(a.Children) > denom {
			denom = len(a.Children)
		}
		score = float64(matches) / float64(denom)
	}

	c.childScores[e.Index][a.Index] = score
	c.childSet[e.Index][a.Index] = true
	return score
}

// SiblingsScore returns the children-similarity score of e's and a's
// parents: both null -> 1.0, exactly one null -> 0.0, otherwise reuses
// ChildrenScore on the parents.
func (c *NodeComparer) SiblingsScore(e, a *Node) float64 {
	if e.Parent == nil && a.Parent == nil {
		return 1.0
	}
	if e.Parent == nil || a.Parent == nil {
		return 0.0
	}
	return c.ChildrenScore(e.Parent, a.Parent)
}

// countMatches estimates the size of a maximum matching between expected and
// actual children under the relation node_score > directMatchThreshold,
// using an augmenting-path-style sweep. Each expected child is visited at
// most once as a starter; a starter that reaches an already-assigned actual
// child takes it over, and the expected child it displaces continues down
// its own retained candidate stack. Every pop is
// written back to candidateStacks immediately, whether it leads to a match,
// a displacement, or a dead end, so a row revisited later as a displaced
// "prev" resumes from exactly where its own sweep left off rather than
// re-offering candidates it already tried. This is a heuristic
// approximation of bipartite maximum matching, not a proven-optimal
// algorithm.
func (c *NodeComparer) countMatches(expectedChildren, actualChildren []*Node) int {
	matched := make([]int, len(actualChildren)) // actual index -> expected index, or -1
	for i := range matched {
		matched[i] = -1
	}

	// candidateStacks[x] holds the actual-child indices whose node_score
	// against expectedChildren[x] exceeds the threshold, retained across the
	// sweep and mutated in place on every pop.
	candidateStacks := make([][]int, len(expectedChildren))
	for x, ec := range expectedChildren {
		var stack []int
		for y, ac := range actualChildren {
			if c.NodeScore(ec, ac) > directMatchThreshold {
				stack = append(stack, y)
			}
		}
		candidateStacks[x] = stack
	}

	count := 0
	for x := range expectedChildren {
		current := x

		for {
			stack := candidateStacks[current]
			if len(stack) == 0 {
				break
			}
			y := stack[len(stack)-1]
			candidateStacks[current] = stack[:len(stack)-1]

			prev := matched[y]
			if prev == -1 {
				matched[y] = current
				count++
				break
			}

			matched[y] = current
			current = prev
		}
	}

	return count
}

// EnumeratePairs returns every (e, a) candidate from expected × actual whose
// scores satisfy at least one of the following threshold disjuncts:
// (node_score > T1 AND children_score > T1) OR children_score > T2 OR
// siblings_score > T2. The precedence grouping is deliberate; preserve it.
func (c *NodeComparer) EnumeratePairs(expected, actual []*Node) []NodePair {
	var pairs []NodePair
	for _, e := range expected {
		for _, a := range actual {
			nodeScore := c.NodeScore(e, a)
			childrenScore := c.ChildrenScore(e, a)
			siblingsScore := c.SiblingsScore(e, a)

			if !((nodeScore > directMatchThreshold && childrenScore > directMatchThreshold) ||
				childrenScore > relativeMatchThreshold ||
				siblingsScore > relativeMatchThreshold) {
				continue
			}

			pairs = append(pairs, NodePair{
				Expected:      e,
				Actual:        a,
				NodeScore:     nodeScore,
				ChildrenScore: childrenScore,
				SiblingsScore: siblingsScore,
				AverageScore:  (nodeScore + childrenScore + siblingsScore) / 3.0,
			})
		}
	}
	return pairs
}
