package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/resu/internal/llm"
)

// Object is a decoded JSON object that remembers the order its keys appeared in.
// Values hold the dynamic value types produced by Decode: *Object, []any,
// string, float64, bool or nil.
type Object struct {
	Keys   []string
	Values map[string]any
}

// NewObject returns an empty ordered object
func NewObject() *Object {
	return &Object{Values: map[string]any{}}
}

// Set stores a value; a repeated key keeps its first position and the last value
func (o *Object) Set(key string, value any) {
	if _, exists := o.Values[key]; !exists {
		o.Keys = append(o.Keys, key)
	}
	o.Values[key] = value
}

// Get returns the value stored under key
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.Values[key]
	return v, ok
}

// Len returns the number of keys
func (o *Object) Len() int {
	return len(o.Keys)
}

// Decode parses completion text into a dynamic value. Markdown code fences and
// surrounding prose are stripped first.
func Decode(text string) (any, error) {
	cleaned := llm.CleanJSONBlock(text)
	if cleaned == "" {
		return nil, &ValidationError{Path: "(root)", Message: "empty response"}
	}

	v, err := decodeString(cleaned)
	if err != nil {
		return nil, &ValidationError{Path: "(root)", Message: "response is not valid JSON", Cause: err}
	}
	return v, nil
}

func decodeString(s string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected content after JSON value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is not a string: %v", keyTok)
				}
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			list := []any{}
			for dec.More() {
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				list = append(list, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return list, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	case json.Number:
		return t.Float64()
	default:
		// string, bool or nil
		return t, nil
	}
}

// FromAny converts values built from Go maps and slices (for example the output
// of encoding/json) into the dynamic value types used by the normalizer.
// Map keys have no inherent order, so they are sorted.
func FromAny(v any) any {
	switch t := v.(type) {
	case *Object:
		return t
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := NewObject()
		for _, k := range keys {
			obj.Set(k, FromAny(t[k]))
		}
		return obj
	case []any:
		list := make([]any, len(t))
		for i, item := range t {
			list[i] = FromAny(item)
		}
		return list
	case []string:
		list := make([]any, len(t))
		for i, item := range t {
			list[i] = item
		}
		return list
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return t.String()
		}
		return f
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case float32:
		return float64(t)
	default:
		return v
	}
}

// toPlain converts ordered objects back into plain maps for schema validation and decoding
func toPlain(v any) any {
	switch t := v.(type) {
	case *Object:
		m := make(map[string]any, t.Len())
		for _, k := range t.Keys {
			m[k] = toPlain(t.Values[k])
		}
		return m
	case []any:
		list := make([]any, len(t))
		for i, item := range t {
			list[i] = toPlain(item)
		}
		return list
	default:
		return v
	}
}
