package contact

import (
	"reflect"
	"strings"
)

// Consolidate normalizes one field's values: nested sequences are flattened,
// non-string elements dropped, strings trimmed, exact duplicates removed, and
// any value contained in another surviving value discarded so only the most
// specific strings remain.
//
// Survivors keep their first-occurrence order. Callers must not rely on it.
func Consolidate(values ...any) []string {
	var flat []string
	for _, v := range values {
		flatten(v, &flat)
	}

	seen := make(map[string]struct{}, len(flat))
	unique := make([]string, 0, len(flat))
	for _, v := range flat {
		v = strings.TrimSpace(v)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		unique = append(unique, v)
	}

	out := make([]string, 0, len(unique))
	for i, v := range unique {
		if !containedInOther(v, i, unique) {
			out = append(out, v)
		}
	}
	return out
}

// containedInOther reports whether values[idx] is a substring of any other
// element. values must already be free of exact duplicates.
func containedInOther(v string, idx int, values []string) bool {
	for j, other := range values {
		if j != idx && strings.Contains(other, v) {
			return true
		}
	}
	return false
}

func flatten(v any, out *[]string) {
	switch typed := v.(type) {
	case nil:
	case string:
		*out = append(*out, typed)
	case []string:
		*out = append(*out, typed...)
	case []any:
		for _, item := range typed {
			flatten(item, out)
		}
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return
		}
		for i := 0; i < rv.Len(); i++ {
			flatten(rv.Index(i).Interface(), out)
		}
	}
}
