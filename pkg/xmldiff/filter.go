// filter.go - element-name predicate construction.
//
// Builds the ElementPredicate half of the public configuration surface:
// include and exclude glob lists over element local names, adapted from a
// path-based include/exclude matcher and retargeted from dotted diff paths
// to element local names.
package xmldiff

import "path/filepath"

// PredicateOptions configures BuildPredicate.
type PredicateOptions struct {
	// Include, when non-empty, admits only elements whose local name
	// matches one of these glob patterns (filepath.Match syntax).
	Include []string
	// Exclude rejects elements whose local name matches one of these glob
	// patterns. Exclude is applied after Include.
	Exclude []string
}

// BuildPredicate compiles opts into an ElementPredicate. A nil or zero-value
// PredicateOptions is equivalent to AlwaysInclude.
func BuildPredicate(opts PredicateOptions) ElementPredicate {
	if len(opts.Include) == 0 && len(opts.Exclude) == 0 {
		return AlwaysInclude
	}

	return func(e *Element) bool {
		if len(opts.Include) > 0 && !matchesAnyGlob(e.LocalName(), opts.Include) {
			return false
		}
		if len(opts.Exclude) > 0 && matchesAnyGlob(e.LocalName(), opts.Exclude) {
			return false
		}
		return true
	}
}

func matchesAnyGlob(name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, err := filepath.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}
