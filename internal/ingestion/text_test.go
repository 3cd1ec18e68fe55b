package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText_PreserveMarkdownHeadings(t *testing.T) {
	input := "# Title\n## Subtitle\nContent here"
	result := CleanText(input)

	assert.Contains(t, result, "# Title")
	assert.Contains(t, result, "## Subtitle")
	assert.Contains(t, result, "Content here")
}

func TestCleanText_PreserveBulletLists(t *testing.T) {
	input := "- Item 1\n- Item 2\n* Item 3"
	result := CleanText(input)

	assert.Contains(t, result, "- Item 1")
	assert.Contains(t, result, "- Item 2")
	assert.Contains(t, result, "* Item 3")
}

func TestCleanText_NormalizeWhitespace(t *testing.T) {
	input := "Line    with    multiple    spaces"
	result := CleanText(input)

	assert.Contains(t, result, "Line with multiple spaces")
	assert.NotContains(t, result, "    ") // Should not have 4 spaces
}

func TestCleanText_RemoveExcessiveBlankLines(t *testing.T) {
	input := "Line 1\n\n\n\n\nLine 2"
	result := CleanText(input)

	// Should have max 2 consecutive newlines
	assert.NotContains(t, result, "\n\n\n\n")
	// But should preserve up to 2
	assert.Contains(t, result, "\n\n")
}

func TestCleanText_NormalizeLineEndings(t *testing.T) {
	input := "Line 1\r\nLine 2\rLine 3\nLine 4"
	result := CleanText(input)

	// All should be normalized to LF
	assert.NotContains(t, result, "\r\n")
	assert.NotContains(t, result, "\r")
	assert.Contains(t, result, "\n")
}

func TestCleanText_DeterministicOutput(t *testing.T) {
	input := "Test content   with   spaces\n\n\nMultiple   blank   lines"
	result1 := CleanText(input)
	result2 := CleanText(input)

	// Same input should produce identical output
	assert.Equal(t, result1, result2)
}

func TestCleanText_EmptyInput(t *testing.T) {
	result := CleanText("")
	assert.Empty(t, result)
}

func TestCleanText_OnlyWhitespace(t *testing.T) {
	result := CleanText("   \n  \n  ")
	assert.Empty(t, result)
}

func TestCleanText_SpecialCharacters(t *testing.T) {
	input := "Test with émojis 🚀 and spéciàl chàracters"
	result := CleanText(input)

	assert.Contains(t, result, "émojis")
	assert.Contains(t, result, "🚀")
	assert.Contains(t, result, "spéciàl chàracters")
}

func TestCleanText_PreserveIndentation(t *testing.T) {
	input := "    Indented line\n  Less indented"
	result := CleanText(input)

	// Should preserve relative indentation
	assert.Contains(t, result, "Indented")
	assert.Contains(t, result, "Less indented")
}

func TestCleanText_UnicodeBullets(t *testing.T) {
	input := "• Build   APIs\n· Own deploys\n  - nested item"
	result := CleanText(input)

	assert.Equal(t, "- Build APIs\n- Own deploys\n  - nested item", result)
}

func TestReadFile_Success(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "jd.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("# Job Title\n\nDescription   here"), 0644))

	doc, err := ReadFile(testFile)
	require.NoError(t, err)

	assert.Equal(t, "# Job Title\n\nDescription here", doc.Text)
	assert.Equal(t, SourceFile, doc.Metadata.Source)
	assert.Equal(t, testFile, doc.Metadata.Location)
	assert.Equal(t, FormatText, doc.Metadata.Format)
	assert.Len(t, doc.Metadata.Hash, 64)
}

func TestReadFile_FileNotFound(t *testing.T) {
	doc, err := ReadFile("/nonexistent/file.txt")

	assert.Error(t, err)
	assert.Nil(t, doc)
	assert.Contains(t, err.Error(), "file not found")
}

func TestReadFile_SameContentSameHash(t *testing.T) {
	tmpDir := t.TempDir()
	file1 := filepath.Join(tmpDir, "a.txt")
	file2 := filepath.Join(tmpDir, "b.txt")
	file3 := filepath.Join(tmpDir, "c.txt")
	require.NoError(t, os.WriteFile(file1, []byte("Content 1"), 0644))
	require.NoError(t, os.WriteFile(file2, []byte("Content   1\n"), 0644))
	require.NoError(t, os.WriteFile(file3, []byte("Content 2"), 0644))

	doc1, err := ReadFile(file1)
	require.NoError(t, err)
	doc2, err := ReadFile(file2)
	require.NoError(t, err)
	doc3, err := ReadFile(file3)
	require.NoError(t, err)

	assert.Equal(t, doc1.Metadata.Hash, doc2.Metadata.Hash)
	assert.NotEqual(t, doc1.Metadata.Hash, doc3.Metadata.Hash)
}

func TestPrepare_HTMLInput(t *testing.T) {
	raw := `<html><body><nav>Home | Jobs</nav><div class="job-description"><h2>Backend Engineer</h2><p>We need Go.</p><ul><li>Postgres</li><li>Kafka</li></ul></div><footer>© Acme</footer></body></html>`

	doc, err := Prepare(raw, SourceInline, "")
	require.NoError(t, err)

	assert.Equal(t, FormatHTML, doc.Metadata.Format)
	assert.Equal(t, "Backend Engineer\nWe need Go.\n- Postgres\n- Kafka", doc.Text)
}

func TestPrepareText_PlainText(t *testing.T) {
	assert.Equal(t, "Senior engineer, 5 years < 10 years", PrepareText("  Senior   engineer, 5 years < 10 years  "))
}
