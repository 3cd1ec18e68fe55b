package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get(GenerationFile, KeyParseJobDescription)
	require.NoError(t, err)
	assert.Contains(t, prompt, "job posting parser")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get(GenerationFile, "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestRender_FillsPlaceholders(t *testing.T) {
	prompt, err := Render(GenerationFile, KeyGenerateResume, map[string]string{
		"TargetPageLength": "2",
		"Tone":             "formal",
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, "Target length: 2 page(s).")
	assert.Contains(t, prompt, "Tone: formal.")
	assert.Empty(t, Placeholders(prompt))
}

func TestRender_MissingValue(t *testing.T) {
	_, err := Render(GenerationFile, KeyGenerateCoverLetter, map[string]string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Tone")
}

func TestEveryGenerationPromptRenders(t *testing.T) {
	data := map[string]string{"TargetPageLength": "1", "Tone": "professional"}
	for _, key := range []string{KeyParseJobDescription, KeySelectRelevant, KeyGenerateResume, KeyGenerateCoverLetter} {
		t.Run(key, func(t *testing.T) {
			prompt, err := Render(GenerationFile, key, data)
			require.NoError(t, err)
			assert.NotEmpty(t, prompt)
		})
	}
}

func TestFormat(t *testing.T) {
	template := "Hello {{.Name}}, welcome to {{.Company}}!"
	data := map[string]string{
		"Name":    "Alice",
		"Company": "Acme Corp",
	}

	assert.Equal(t, "Hello Alice, welcome to Acme Corp!", Format(template, data))
}

func TestFormat_EmptyData(t *testing.T) {
	template := "Hello {{.Name}}"
	assert.Equal(t, template, Format(template, map[string]string{}))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, Placeholders("{{.B}} and {{.A}} and {{.B}}"))
	assert.Empty(t, Placeholders("none here"))
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List(GenerationFile)
	require.NoError(t, err)
	assert.Equal(t, []string{
		KeyGenerateCoverLetter,
		KeyGenerateResume,
		KeyParseJobDescription,
		KeySelectRelevant,
	}, keys)
}
