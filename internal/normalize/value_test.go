package normalize

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_PreservesKeyOrder(t *testing.T) {
	v, err := Decode(`{"zeta": 1, "alpha": [true, null, "x"], "mid": {"b": 2, "a": 1}}`)
	require.NoError(t, err)

	obj, ok := v.(*Object)
	require.True(t, ok)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, obj.Keys)
	assert.Equal(t, 1.0, obj.Values["zeta"])
	assert.Equal(t, []any{true, nil, "x"}, obj.Values["alpha"])

	inner, ok := obj.Values["mid"].(*Object)
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, inner.Keys)
}

func TestDecode_StripsMarkdownFence(t *testing.T) {
	v, err := Decode("```json\n{\"a\": \"b\"}\n```")
	require.NoError(t, err)
	obj := v.(*Object)
	assert.Equal(t, "b", obj.Values["a"])
}

func TestDecode_SurroundingProse(t *testing.T) {
	v, err := Decode(`Here is the result: {"a": 1} Hope this helps!`)
	require.NoError(t, err)
	obj := v.(*Object)
	assert.Equal(t, 1.0, obj.Values["a"])
}

func TestDecode_DuplicateKeyKeepsFirstPosition(t *testing.T) {
	v, err := Decode(`{"a": 1, "b": 2, "a": 3}`)
	require.NoError(t, err)
	obj := v.(*Object)
	assert.Equal(t, []string{"a", "b"}, obj.Keys)
	assert.Equal(t, 3.0, obj.Values["a"])
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"empty", "   ", "empty response"},
		{"not json", "I could not produce JSON", "response is not valid JSON"},
		{"truncated", `{"a": [1, 2`, "response is not valid JSON"},
		{"missing value", `{"a": }`, "response is not valid JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.input)
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.message, verr.Message)
			assert.Equal(t, "(root)", verr.Path)
		})
	}
}

func TestFromAny_SortsMapKeys(t *testing.T) {
	v := FromAny(map[string]any{"b": 1, "a": []string{"x"}, "c": map[string]any{"z": true, "y": false}})

	obj, ok := v.(*Object)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, obj.Keys)
	assert.Equal(t, 1.0, obj.Values["b"])
	assert.Equal(t, []any{"x"}, obj.Values["a"])
	assert.Equal(t, []string{"y", "z"}, obj.Values["c"].(*Object).Keys)
}

func TestToPlain(t *testing.T) {
	obj := NewObject()
	obj.Set("list", []any{NewObject()})
	obj.Set("n", 2.0)

	plain := toPlain(obj)
	assert.Equal(t, map[string]any{"list": []any{map[string]any{}}, "n": 2.0}, plain)
}
