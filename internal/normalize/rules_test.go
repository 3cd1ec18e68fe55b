package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustObject(t *testing.T, text string) *Object {
	t.Helper()
	v, err := Decode(text)
	require.NoError(t, err)
	obj, ok := v.(*Object)
	require.True(t, ok)
	return obj
}

func TestUnwrap(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKeys []string
	}{
		{"no wrapper", `{"summary": "x"}`, []string{"summary"}},
		{"single wrapper", `{"resumeData": {"summary": "x"}}`, []string{"summary"}},
		{"nested wrappers", `{"result": {"resumeData": {"summary": "x"}}}`, []string{"summary"}},
		{"wrapper beside own field is kept", `{"summary": "x", "resume": {"summary": "y"}}`, []string{"summary", "resume"}},
		{"non-object wrapper ignored", `{"result": "done"}`, []string{"result"}},
		{"depth bounded", `{"data": {"data": {"data": {"data": {"summary": "x"}}}}}`, []string{"data"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := unwrap(ResumeDataShape, mustObject(t, tt.input))
			assert.Equal(t, tt.wantKeys, got.Keys)
		})
	}
}

func TestCoalesce(t *testing.T) {
	f := &Field{Name: "summary", Aliases: []string{"professionalSummary", "objective"}}

	tests := []struct {
		name  string
		input string
		want  any
		found bool
	}{
		{"canonical wins", `{"objective": "b", "summary": "a"}`, "a", true},
		{"first alias in priority order", `{"objective": "c", "professionalSummary": "b"}`, "b", true},
		{"null skipped", `{"summary": null, "objective": "c"}`, "c", true},
		{"absent", `{"other": 1}`, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := coalesce(mustObject(t, tt.input), f)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerceString(t *testing.T) {
	bullet := NewObject()
	bullet.Set("impact", "high")
	bullet.Set("text", "Built the thing")

	tests := []struct {
		name  string
		input any
		want  string
		ok    bool
	}{
		{"string", "abc", "abc", true},
		{"integer number", 3.0, "3", true},
		{"fractional number", 3.5, "3.5", true},
		{"bool", true, "true", true},
		{"object reduced to text", bullet, "Built the thing", true},
		{"object without primary field", NewObject(), "", false},
		{"list", []any{"a"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := coerceString(tt.input, []string{"text", "bullet"})
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerceStringList(t *testing.T) {
	named := NewObject()
	named.Set("name", "Go")

	assert.Equal(t, []any{"solo"}, coerceStringList("solo", defaultItemKeys))
	assert.Equal(t, []any{"Go", "SQL"}, coerceStringList([]any{named, "SQL"}, defaultItemKeys))
	assert.Equal(t, []any{"a"}, coerceStringList([]any{nil, "a"}, defaultItemKeys))
	assert.Equal(t, []any{[]any{"nested"}}, coerceStringList([]any{[]any{"nested"}}, defaultItemKeys))
}

func TestCoerceNumber(t *testing.T) {
	n, ok := coerceNumber(42.0)
	assert.True(t, ok)
	assert.Equal(t, 42.0, n)

	n, ok = coerceNumber(" 87.5 ")
	assert.True(t, ok)
	assert.Equal(t, 87.5, n)

	_, ok = coerceNumber("high")
	assert.False(t, ok)
}

func TestCoerceBool(t *testing.T) {
	tests := []struct {
		input any
		want  bool
		ok    bool
	}{
		{true, true, true},
		{"TRUE", true, true},
		{"no", false, true},
		{"maybe", false, false},
		{1.0, false, false},
	}
	for _, tt := range tests {
		got, ok := coerceBool(tt.input)
		assert.Equal(t, tt.ok, ok, "%v", tt.input)
		assert.Equal(t, tt.want, got, "%v", tt.input)
	}
}

func TestCoerceSkills(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []any
	}{
		{
			name:  "canonical categories",
			input: `{"skills": {"categories": [{"name": "Languages", "skills": ["Go"]}]}}`,
			want:  []any{map[string]any{"name": "Languages", "skills": []any{"Go"}}},
		},
		{
			name:  "list of category objects",
			input: `{"skills": [{"category": "Cloud", "skills": ["AWS", {"name": "GCP"}]}]}`,
			want:  []any{map[string]any{"name": "Cloud", "skills": []any{"AWS", "GCP"}}},
		},
		{
			name:  "category object without name gets Other",
			input: `{"skills": {"categories": [{"skills": ["Go"]}]}}`,
			want:  []any{map[string]any{"name": "Other", "skills": []any{"Go"}}},
		},
		{
			name:  "flat list becomes one synthetic category",
			input: `{"skills": ["Go", "SQL", 5]}`,
			want:  []any{map[string]any{"name": "Technical Skills", "skills": []any{"Go", "SQL", "5"}}},
		},
		{
			name:  "object keyed by category keeps key order",
			input: `{"skills": {"Tools": ["Git"], "Languages": ["Go", "Rust"], "note": "ignored"}}`,
			want: []any{
				map[string]any{"name": "Tools", "skills": []any{"Git"}},
				map[string]any{"name": "Languages", "skills": []any{"Go", "Rust"}},
			},
		},
		{
			name:  "empty list",
			input: `{"skills": []}`,
			want:  []any{},
		},
		{
			name:  "scalar yields no categories",
			input: `{"skills": "Go, SQL"}`,
			want:  []any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := mustObject(t, tt.input).Values["skills"]
			got := coerceSkills(raw, skillCategoryShape)
			assert.Equal(t, map[string]any{"categories": tt.want}, got)
		})
	}
}

func TestFoldEnum(t *testing.T) {
	assert.Equal(t, "senior", foldEnum(" Senior ", seniorityValues))
	assert.Equal(t, "formal", foldEnum("FORMAL", toneValues))
	assert.Equal(t, "Senior-ish", foldEnum("Senior-ish", seniorityValues))
	assert.Equal(t, []any{}, foldEnum([]any{}, seniorityValues), "non-scalars are passed through")
}
