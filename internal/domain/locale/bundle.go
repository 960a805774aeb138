package locale

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Bundle is one language's content document for one topic. It is an opaque
// nested mapping; no schema is enforced.
type Bundle map[string]any

// Lookup walks a dotted path ("hero.title", "items.0.question") through nested
// maps and lists.
func (b Bundle) Lookup(path string) (any, bool) {
	if b == nil {
		return nil, false
	}
	var cur any = map[string]any(b)
	for _, part := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			next, ok := node[part]
			if !ok {
				return nil, false
			}
			cur = next
		case Bundle:
			next, ok := node[part]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			idx, err := strconv.Atoi(part)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			cur = node[idx]
		default:
			return nil, false
		}
	}
	return cur, true
}

// String returns the string at path, or "" when missing or not a string.
func (b Bundle) String(path string) string {
	v, ok := b.Lookup(path)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return ""
	}
}

// Strings returns the string list at path, skipping non-string entries.
func (b Bundle) Strings(path string) []string {
	v, ok := b.Lookup(path)
	if !ok {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Items returns the list of objects at path as Bundles.
func (b Bundle) Items(path string) []Bundle {
	v, ok := b.Lookup(path)
	if !ok {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]Bundle, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Bundle(m))
		}
	}
	return out
}

// Section returns the nested object at path as a Bundle.
func (b Bundle) Section(path string) Bundle {
	v, ok := b.Lookup(path)
	if !ok {
		return nil
	}
	if m, ok := v.(map[string]any); ok {
		return Bundle(m)
	}
	return nil
}

// Paths flattens the bundle into its sorted leaf paths. List elements are
// addressed by index.
func (b Bundle) Paths() []string {
	var out []string
	flatten("", map[string]any(b), &out)
	sort.Strings(out)
	return out
}

func flatten(prefix string, node any, out *[]string) {
	join := func(k string) string {
		if prefix == "" {
			return k
		}
		return prefix + "." + k
	}
	switch n := node.(type) {
	case map[string]any:
		if len(n) == 0 && prefix != "" {
			*out = append(*out, prefix)
		}
		for k, v := range n {
			flatten(join(k), v, out)
		}
	case []any:
		if len(n) == 0 && prefix != "" {
			*out = append(*out, prefix)
		}
		for i, v := range n {
			flatten(join(strconv.Itoa(i)), v, out)
		}
	default:
		if prefix != "" {
			*out = append(*out, prefix)
		}
	}
}
