package normalize

import (
	"errors"
	"fmt"

	"github.com/jonathan/resu/internal/schemas"
	"github.com/jonathan/resu/internal/types"
	"github.com/mitchellh/mapstructure"
)

// JobDescription normalizes a dynamic value into a ParsedJobDescription
func JobDescription(v any) (*types.ParsedJobDescription, error) {
	return normalizeInto[types.ParsedJobDescription](JobDescriptionShape, v)
}

// RelevanceSelection normalizes a dynamic value into a RelevanceSelection
func RelevanceSelection(v any) (*types.RelevanceSelection, error) {
	return normalizeInto[types.RelevanceSelection](RelevanceSelectionShape, v)
}

// ResumeData normalizes a dynamic value into ResumeData
func ResumeData(v any) (*types.ResumeData, error) {
	return normalizeInto[types.ResumeData](ResumeDataShape, v)
}

// CoverLetter normalizes a dynamic value into CoverLetterData
func CoverLetter(v any) (*types.CoverLetterData, error) {
	return normalizeInto[types.CoverLetterData](CoverLetterShape, v)
}

// Canonical applies the shape's rules and schema to v and returns the canonical document
func Canonical(shape *Shape, v any) (map[string]any, error) {
	obj, ok := FromAny(v).(*Object)
	if !ok {
		return nil, &ValidationError{Shape: shape.Name, Path: "(root)", Message: fmt.Sprintf("expected a JSON object, got %s", describe(v))}
	}

	doc := normalizeObject(shape, unwrap(shape, obj), nil)

	if shape.Schema != "" {
		if err := schemas.ValidateDocument(shape.Schema, doc); err != nil {
			var verr *schemas.ValidationError
			if errors.As(err, &verr) {
				first := verr.First()
				return nil, &ValidationError{Shape: shape.Name, Path: first.Field, Message: first.Message, Cause: err}
			}
			return nil, err
		}
	}
	return doc, nil
}

func normalizeInto[T any](shape *Shape, v any) (*T, error) {
	doc, err := Canonical(shape, v)
	if err != nil {
		return nil, err
	}

	var out T
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &out,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(doc); err != nil {
		return nil, &ValidationError{Shape: shape.Name, Path: "(root)", Message: "failed to decode normalized document", Cause: err}
	}
	return &out, nil
}

func normalizeObject(shape *Shape, obj *Object, parent map[string]any) map[string]any {
	out := make(map[string]any, len(shape.Fields))
	for i := range shape.Fields {
		f := &shape.Fields[i]
		raw, found := coalesce(obj, f)
		if !found {
			if v, ok := absentValue(f, parent); ok {
				out[f.Name] = v
			}
			continue
		}
		if v, ok := coerceField(f, raw, out); ok {
			out[f.Name] = v
		}
	}
	return out
}

func normalizeObjectList(shape *Shape, items []any, parent map[string]any) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(*Object); ok {
			out = append(out, normalizeObject(shape, obj, parent))
			continue
		}
		out = append(out, toPlain(item))
	}
	return out
}

// absentValue returns the value a missing field takes, or false when it stays missing
func absentValue(f *Field, parent map[string]any) (any, bool) {
	if f.Inherit != "" {
		if v, ok := parent[f.Inherit]; ok {
			return v, true
		}
	}
	if f.Required {
		return nil, false
	}
	if f.Default != nil {
		return f.Default, true
	}

	switch f.Kind {
	case KindString, KindEnum:
		return "", true
	case KindOptionalString:
		return nil, false
	case KindNullableString:
		return nil, true
	case KindStringList, KindObjectList:
		return []any{}, true
	case KindNumber:
		return 0.0, true
	case KindBool:
		return false, true
	case KindObject:
		return normalizeObject(f.Shape, NewObject(), nil), true
	case KindSkills:
		return map[string]any{"categories": []any{}}, true
	}
	return nil, false
}

// coerceField applies the kind rule for f. Values that cannot be coerced are
// kept in plain form so schema validation reports the offending path.
func coerceField(f *Field, raw any, siblings map[string]any) (any, bool) {
	switch f.Kind {
	case KindString, KindNullableString:
		if s, ok := coerceString(raw, f.itemKeys()); ok {
			return s, true
		}
	case KindOptionalString:
		if s, ok := coerceString(raw, f.itemKeys()); ok {
			if s == "" {
				return nil, false
			}
			return s, true
		}
	case KindStringList:
		return coerceStringList(raw, f.itemKeys()), true
	case KindNumber:
		if n, ok := coerceNumber(raw); ok {
			return n, true
		}
	case KindBool:
		if b, ok := coerceBool(raw); ok {
			return b, true
		}
	case KindEnum:
		return foldEnum(raw, f.Enum), true
	case KindObject:
		if obj, ok := raw.(*Object); ok {
			return normalizeObject(f.Shape, obj, siblings), true
		}
	case KindObjectList:
		switch t := raw.(type) {
		case []any:
			return normalizeObjectList(f.Shape, t, siblings), true
		case *Object:
			return normalizeObjectList(f.Shape, []any{t}, siblings), true
		}
	case KindSkills:
		return coerceSkills(raw, f.Shape), true
	}
	return toPlain(raw), true
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any, []string:
		return "array"
	case string:
		return "string"
	case float64, int, int64:
		return "number"
	case bool:
		return "boolean"
	}
	return fmt.Sprintf("%T", v)
}
