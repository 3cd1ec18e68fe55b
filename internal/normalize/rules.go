package normalize

import (
	"strconv"
	"strings"
)

// Rule 1: unwrap containers.
//
// unwrap peels off wrapper objects such as {"result": {...}} while the object
// carries none of the shape's own keys, up to maxUnwrapDepth levels.
func unwrap(shape *Shape, obj *Object) *Object {
	for depth := 0; depth < maxUnwrapDepth; depth++ {
		if hasOwnKey(shape, obj) {
			return obj
		}
		inner, ok := wrappedObject(shape, obj)
		if !ok {
			return obj
		}
		obj = inner
	}
	return obj
}

func hasOwnKey(shape *Shape, obj *Object) bool {
	for _, k := range obj.Keys {
		if shape.ownsKey(k) {
			return true
		}
	}
	return false
}

func wrappedObject(shape *Shape, obj *Object) (*Object, bool) {
	for _, w := range shape.Wrappers {
		if v, ok := obj.Get(w); ok {
			if inner, ok := v.(*Object); ok {
				return inner, true
			}
		}
	}
	return nil, false
}

// Rule 2: coalesce aliases.
//
// coalesce returns the value of the first key (canonical name, then aliases)
// that is present and not null.
func coalesce(obj *Object, f *Field) (any, bool) {
	for _, k := range f.keys() {
		if v, ok := obj.Get(k); ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// Rule 3: kind coercion.

// coerceString converts scalars to strings and reduces objects to their primary string field
func coerceString(v any, itemKeys []string) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	case *Object:
		for _, k := range itemKeys {
			if inner, ok := t.Get(k); ok {
				if s, ok := coerceString(inner, nil); ok {
					return s, true
				}
			}
		}
	}
	return "", false
}

// coerceStringList wraps a lone value and converts every item to a string.
// Items that cannot be converted are kept as-is so schema validation reports them.
func coerceStringList(v any, itemKeys []string) []any {
	items, ok := v.([]any)
	if !ok {
		items = []any{v}
	}
	out := make([]any, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		if s, ok := coerceString(item, itemKeys); ok {
			out = append(out, s)
			continue
		}
		out = append(out, toPlain(item))
	}
	return out
}

func coerceNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func coerceBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes":
			return true, true
		case "false", "no":
			return false, true
		}
	}
	return false, false
}

// Rule 4: skills.
//
// coerceSkills accepts the canonical {"categories": [...]}, a list of category
// objects, a flat list of skills (one synthetic category) or an object keyed by
// category name (key order preserved).
func coerceSkills(v any, category *Shape) map[string]any {
	categories := []any{}

	switch t := v.(type) {
	case *Object:
		if list, ok := t.Get("categories"); ok {
			if items, ok := list.([]any); ok {
				return map[string]any{"categories": normalizeObjectList(category, items, nil)}
			}
		}
		for _, name := range t.Keys {
			items, ok := t.Values[name].([]any)
			if !ok {
				continue
			}
			categories = append(categories, map[string]any{
				"name":   name,
				"skills": coerceStringList(items, skillItemKeys(category)),
			})
		}
	case []any:
		if len(t) > 0 && isCategoryObject(t[0]) {
			return map[string]any{"categories": normalizeObjectList(category, t, nil)}
		}
		if len(t) > 0 {
			categories = append(categories, map[string]any{
				"name":   syntheticSkillCategory,
				"skills": coerceStringList(t, skillItemKeys(category)),
			})
		}
	}
	return map[string]any{"categories": categories}
}

const syntheticSkillCategory = "Technical Skills"

func isCategoryObject(v any) bool {
	obj, ok := v.(*Object)
	if !ok {
		return false
	}
	_, hasName := obj.Get("name")
	_, hasCategory := obj.Get("category")
	return hasName || hasCategory
}

func skillItemKeys(category *Shape) []string {
	for i := range category.Fields {
		if category.Fields[i].Name == "skills" {
			return category.Fields[i].itemKeys()
		}
	}
	return defaultItemKeys
}

// Rule 5: enum folding.
//
// foldEnum maps a value case-insensitively onto one of the allowed values.
// Unknown values are returned unchanged for schema validation to reject.
func foldEnum(v any, allowed []string) any {
	s, ok := coerceString(v, nil)
	if !ok {
		return toPlain(v)
	}
	folded := strings.ToLower(strings.TrimSpace(s))
	for _, a := range allowed {
		if folded == a {
			return a
		}
	}
	return s
}
