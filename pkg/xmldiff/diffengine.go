// diffengine.go - the diff engine: parsing -> grouping -> matching -> edits.
//
// Diff is the single entry point the rest of the module (CLI, server,
// formatters) calls. It owns no state across invocations: every Counter,
// SchemaRegistry, and NodeComparer is created fresh per call, so concurrent
// Diff calls never share mutable state.
package xmldiff

import (
	"sort"
	"time"
)

// EditOp is the kind of change a NodeEdit reports.
type EditOp int

const (
	// Added indicates a node present only in the actual document.
	Added EditOp = iota
	// Removed indicates a node present only in the expected document.
	Removed
	// Modified indicates a matched pair whose node score is not 1.0.
	Modified
)

func (op EditOp) String() string {
	switch op {
	case Added:
		return "Added"
	case Removed:
		return "Removed"
	case Modified:
		return "Modified"
	default:
		return "Unknown"
	}
}

// NodeEdit is one emitted change. Which of Actual/Expected is set depends
// on Op: Added -> Expected nil; Removed -> Actual nil; Modified ->
// both present.
type NodeEdit struct {
	Op       EditOp
	Actual   *Element
	Expected *Element
}

// Options configures Diff. ExcludeEmptyNodes and Predicate mirror the public
// configuration surface the surrounding collaborator exposes to callers -
// the core simply accepts and applies them.
type Options struct {
	// ExcludeEmptyNodes suppresses Added/Removed edits for empty nodes when
	// true. Modified edits are never suppressed.
	ExcludeEmptyNodes bool
	// Predicate filters which child elements participate in the diff.
	// Nil is equivalent to AlwaysInclude.
	Predicate ElementPredicate
	// Logger receives debug-level bucket-size, candidate-pair-count, and
	// timing events for this invocation. Nil is equivalent to NewNopLogger().
	Logger Logger
}

// modifiedEpsilon is the tolerance against node_score == 1.0 used to decide
// whether a matched pair is reported as Modified. Preserved exactly so that
// trees differing only in property ordering - already normalized away by
// schema flattening - produce no Modified edit.
const modifiedEpsilon = 1e-5

// Diff compares expected and actual XML documents and returns the edit
// sequence that transforms expected into actual, based on structural rather
// than textual equivalence. A malformed document surfaces the parser's error
// unmodified and produces no edits.
func Diff(expected, actual []byte, opts Options) ([]NodeEdit, error) {
	logger := opts.Logger
	if logger == nil {
		logger = NewNopLogger()
	}
	start := time.Now()

	registry := NewSchemaRegistry()

	expectedInfo, err := Parse(expected, opts.Predicate, registry)
	if err != nil {
		return nil, err
	}
	actualInfo, err := Parse(actual, opts.Predicate, registry)
	if err != nil {
		return nil, err
	}

	expectedCount, expectedGroups, expectedOrder := groupNodes(expectedInfo, registry)
	actualCount, actualGroups, actualOrder := groupNodes(actualInfo, registry)

	comparer := NewNodeComparer(expectedCount, actualCount)

	schemaOrder := mergeOrder(expectedOrder, actualOrder)

	var edits []NodeEdit
	for _, schemaID := range schemaOrder {
		expectedNodes := expectedGroups[schemaID]
		actualNodes := actualGroups[schemaID]

		switch {
		case len(expectedNodes) > 0 && len(actualNodes) > 0:
			edits = append(edits, diffBucket(comparer, expectedNodes, actualNodes, opts.ExcludeEmptyNodes, logger)...)
		case len(expectedNodes) > 0:
			logger.Debug("diffengine: bucket removed-only", F("schema_id", schemaID), F("expected", len(expectedNodes)), F("actual", 0))
			for _, n := range expectedNodes {
				if opts.ExcludeEmptyNodes && n.IsEmpty() {
					continue
				}
				edits = append(edits, NodeEdit{Op: Removed, Expected: n.Element})
			}
		default:
			logger.Debug("diffengine: bucket added-only", F("schema_id", schemaID), F("expected", 0), F("actual", len(actualNodes)))
			for _, n := range actualNodes {
				if opts.ExcludeEmptyNodes && n.IsEmpty() {
					continue
				}
				edits = append(edits, NodeEdit{Op: Added, Actual: n.Element})
			}
		}
	}

	logger.Debug("diffengine: diff complete",
		F("expected_nodes", expectedCount),
		F("actual_nodes", actualCount),
		F("buckets", len(schemaOrder)),
		F("edits", len(edits)),
		F("duration_ms", time.Since(start).Milliseconds()),
	)

	return edits, nil
}

// mergeOrder concatenates a's schema ids followed by any of b's not already
// present, preserving each slice's own insertion order - bucket iteration
// order is the insertion order of schema ids.
func mergeOrder(a, b []int) []int {
	seen := make(map[int]bool, len(a)+len(b))
	order := make([]int, 0, len(a)+len(b))
	for _, id := range a {
		if !seen[id] {
			seen[id] = true
			order = append(order, id)
		}
	}
	for _, id := range b {
		if !seen[id] {
			seen[id] = true
			order = append(order, id)
		}
	}
	return order
}

// diffBucket matches expected and actual nodes sharing one schema: it
// enumerates candidate pairs, sorts them by average score descending
// (stably), and greedily matches in that order under the exclusive
// try_match discipline, emitting Modified for imperfect matches. Any nodes
// left unmatched after exhausting min(|expected|,|actual|) successes are
// emitted as Removed/Added in a second pass.
func diffBucket(comparer *NodeComparer, expected, actual []*Node, excludeEmpty bool, logger Logger) []NodeEdit {
	pairs := comparer.EnumeratePairs(expected, actual)
	logger.Debug("diffengine: bucket",
		F("schema_id", expected[0].SchemaID),
		F("expected", len(expected)),
		F("actual", len(actual)),
		F("candidate_pairs", len(pairs)),
	)
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].AverageScore > pairs[j].AverageScore
	})

	var edits []NodeEdit
	target := len(expected)
	if len(actual) < target {
		target = len(actual)
	}

	matches := 0
	for _, p := range pairs {
		if matches >= target {
			break
		}
		if !p.Expected.TryMatch(p.Actual) {
			continue
		}
		if absFloat(p.NodeScore-1.0) > modifiedEpsilon {
			edits = append(edits, NodeEdit{Op: Modified, Actual: p.Actual.Element, Expected: p.Expected.Element})
		}
		matches++
	}

	for _, e := range expected {
		if !e.Matched {
			if excludeEmpty && e.IsEmpty() {
				continue
			}
			edits = append(edits, NodeEdit{Op: Removed, Expected: e.Element})
		}
	}
	for _, a := range actual {
		if !a.Matched {
			if excludeEmpty && a.IsEmpty() {
				continue
			}
			edits = append(edits, NodeEdit{Op: Added, Actual: a.Element})
		}
	}

	return edits
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
