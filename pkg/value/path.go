package value

import (
	"sort"
	"strconv"
	"strings"
)

// PathSep separates segments of a dotted configuration path. Array elements
// are addressed by their decimal index ("series.0.label").
const PathSep = "."

// Path is a configuration path as its segments. Keys may themselves
// contain PathSep, so the segments are authoritative.
type Path []string

func (p Path) String() string {
	return strings.Join(p, PathSep)
}

func (p Path) key() string {
	return strings.Join(p, "\x00")
}

// CallablePaths returns the path of every callable in o, ordered by their
// dotted form. Callables are leaves; the walk does not look inside them.
func (o Object) CallablePaths() []Path {
	var paths []Path
	walkFuncs(ObjectOf(o), nil, &paths)
	sort.Slice(paths, func(i, j int) bool {
		a, b := paths[i].String(), paths[j].String()
		if a != b {
			return a < b
		}
		return paths[i].key() < paths[j].key()
	})
	return paths
}

// FuncPaths returns the dotted path of every callable in o, sorted.
func (o Object) FuncPaths() []string {
	paths := o.CallablePaths()
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = p.String()
	}
	return out
}

func walkFuncs(v Value, parents Path, paths *[]Path) {
	switch v.kind {
	case KindObject:
		for k, child := range v.obj {
			visitFunc(child, append(parents, k), paths)
		}
	case KindArray:
		for i, child := range v.arr {
			visitFunc(child, append(parents, strconv.Itoa(i)), paths)
		}
	}
}

func visitFunc(v Value, path Path, paths *[]Path) {
	// append in walkFuncs may share a backing array between siblings.
	path = append(Path(nil), path...)
	if v.kind == KindCallable {
		*paths = append(*paths, path)
		return
	}
	walkFuncs(v, path, paths)
}

// Omit returns a deep copy of o with the values at the dotted paths
// removed. A key that literally matches the rest of a path wins over
// descending into nested objects. Object entries are deleted; array
// elements are replaced with null so that the positions of their siblings
// are kept. Paths that do not resolve are ignored.
func (o Object) Omit(paths ...string) Object {
	out := o.Clone()
	if out == nil {
		out = Object{}
	}
	for _, p := range paths {
		if p == "" {
			continue
		}
		omitDotted(out, strings.Split(p, PathSep))
	}
	return out
}

// OmitPaths is Omit for segment paths, as returned by CallablePaths.
func (o Object) OmitPaths(paths ...Path) Object {
	out := o.Clone()
	if out == nil {
		out = Object{}
	}
	for _, p := range paths {
		if len(p) == 0 {
			continue
		}
		omitPath(ObjectOf(out), p)
	}
	return out
}

func omitDotted(o Object, segs []string) {
	if len(segs) > 1 {
		if key := strings.Join(segs, PathSep); hasKey(o, key) {
			delete(o, key)
			return
		}
	}
	if len(segs) == 1 {
		delete(o, segs[0])
		return
	}
	child, ok := o[segs[0]]
	if !ok {
		return
	}
	switch child.kind {
	case KindObject:
		omitDotted(child.obj, segs[1:])
	case KindArray:
		omitPath(child, segs[1:])
	}
}

func hasKey(o Object, key string) bool {
	_, ok := o[key]
	return ok
}

// omitPath removes the value at segs below v, an object or array.
func omitPath(v Value, segs []string) {
	switch v.kind {
	case KindObject:
		if len(segs) == 1 {
			delete(v.obj, segs[0])
			return
		}
		child, ok := v.obj[segs[0]]
		if !ok {
			return
		}
		omitPath(child, segs[1:])
	case KindArray:
		i, err := strconv.Atoi(segs[0])
		if err != nil || i < 0 || i >= len(v.arr) {
			return
		}
		if len(segs) == 1 {
			v.arr[i] = Null()
			return
		}
		omitPath(v.arr[i], segs[1:])
	}
}

// Lookup returns the value at a dotted path below o.
func (o Object) Lookup(path string) (Value, bool) {
	if path == "" {
		return ObjectOf(o), true
	}
	cur := ObjectOf(o)
	for _, seg := range strings.Split(path, PathSep) {
		switch cur.kind {
		case KindObject:
			next, ok := cur.obj[seg]
			if !ok {
				return Value{}, false
			}
			cur = next
		case KindArray:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(cur.arr) {
				return Value{}, false
			}
			cur = cur.arr[i]
		default:
			return Value{}, false
		}
	}
	return cur, true
}
