package value

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FuncRegistry looks up callbacks by name.
type FuncRegistry interface {
	LookupFunc(name string) (any, bool)
}

// Funcs is a map-backed FuncRegistry.
type Funcs map[string]any

// LookupFunc implements FuncRegistry.
func (f Funcs) LookupFunc(name string) (any, bool) {
	fn, ok := f[name]
	return fn, ok && fn != nil
}

// UnresolvedError lists callable references that a registry could not bind.
type UnresolvedError struct {
	// Refs maps each unresolved path to the referenced name.
	Refs map[string]string
}

func (e *UnresolvedError) Error() string {
	paths := make([]string, 0, len(e.Refs))
	for p := range e.Refs {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	parts := make([]string, len(paths))
	for i, p := range paths {
		parts[i] = fmt.Sprintf("%s=%q", p, e.Refs[p])
	}
	return "value: unresolved callbacks: " + strings.Join(parts, ", ")
}

// Resolve returns a deep copy of o in which every unresolved callable is
// bound through reg. Already bound callables are kept. If any name is
// missing the copy is still returned, together with an *UnresolvedError.
func (o Object) Resolve(reg FuncRegistry) (Object, error) {
	out := o.Clone()
	missing := map[string]string{}
	for k, v := range out {
		bindFuncs(v, []string{k}, reg, missing)
	}
	if len(missing) > 0 {
		return out, &UnresolvedError{Refs: missing}
	}
	return out, nil
}

// bindFuncs mutates callables in place; callers pass a fresh clone.
func bindFuncs(v Value, path []string, reg FuncRegistry, missing map[string]string) {
	switch v.kind {
	case KindCallable:
		if v.fn.Resolved() {
			return
		}
		if reg != nil {
			if fn, ok := reg.LookupFunc(v.fn.Name); ok {
				v.fn.Fn = fn
				return
			}
		}
		missing[strings.Join(path, PathSep)] = v.fn.Name
	case KindObject:
		for k, child := range v.obj {
			bindFuncs(child, append(path[:len(path):len(path)], k), reg, missing)
		}
	case KindArray:
		for i, child := range v.arr {
			bindFuncs(child, append(path[:len(path):len(path)], strconv.Itoa(i)), reg, missing)
		}
	}
}
