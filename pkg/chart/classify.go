package chart

import (
	"slices"
	"sort"
	"strings"

	"github.com/go-drift/chart/pkg/value"
)

// Decision is the outcome of comparing two configurations.
type Decision struct {
	// Changed reports whether the engine needs a reconfigure and redraw.
	Changed bool

	// FuncPaths lists the callback paths left out of the comparison: the
	// union of both sides' callback paths, sorted.
	FuncPaths []string
}

// Classify compares the applied configuration with the next one. Neither
// argument may contain the dataset; callers strip KeyData first.
//
// A path holding a callback on either side is ignored on both sides, so a
// configuration that differs only in closures, or in a field that became a
// callback, is unchanged.
func Classify(applied, next value.Object) Decision {
	paths := unionPaths(applied.CallablePaths(), next.CallablePaths())
	return Decision{
		Changed:   !applied.OmitPaths(paths...).Equal(next.OmitPaths(paths...)),
		FuncPaths: dotted(paths),
	}
}

func unionPaths(a, b []value.Path) []value.Path {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]value.Path, 0, len(a)+len(b))
	for _, list := range [][]value.Path{a, b} {
		for _, p := range list {
			k := strings.Join(p, "\x00")
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

// dotted renders paths for display, sorted and without repeats.
func dotted(paths []value.Path) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, p.String())
	}
	sort.Strings(out)
	return slices.Compact(out)
}
