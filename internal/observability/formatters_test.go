package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resu/internal/types"
)

func TestPrintParsedJD(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	domain := "payments"
	p.PrintParsedJD(&types.ParsedJobDescription{
		CompanyName:     "Acme Corp",
		RoleTitle:       "Senior Engineer",
		SeniorityLevel:  types.SenioritySenior,
		RequiredSkills:  []string{"Go", "Kubernetes", "SQL", "gRPC", "Kafka", "Terraform"},
		PreferredSkills: []string{"Rust"},
		IndustryDomain:  &domain,
	})
	output := buf.String()

	assert.Contains(t, output, "PARSED JOB DESCRIPTION")
	assert.Contains(t, output, "Acme Corp")
	assert.Contains(t, output, "Senior Engineer")
	assert.Contains(t, output, "payments")
	assert.Contains(t, output, "Rust")
	assert.Contains(t, output, "... and 1 more")
	assert.NotContains(t, output, "Terraform")
}

func TestPrintParsedJD_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintParsedJD(nil)
	assert.Empty(t, buf.String())
}

func TestPrintSelection(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSelection(&types.RelevanceSelection{
		OverallMatchScore: 82,
		SelectedExperiences: []types.SelectedExperience{
			{
				ExperienceID: "exp-acme",
				Include:      true,
				SelectedBullets: []types.SelectedBullet{
					{ExperienceID: "exp-acme", BulletIndex: 0, OriginalText: "Cut p99 latency by 40%", RelevanceScore: 91},
				},
			},
			{ExperienceID: "exp-globex", Include: false},
		},
		SelectedSkills: []string{"Go"},
	})
	output := buf.String()

	assert.Contains(t, output, "RELEVANCE SELECTION")
	assert.Contains(t, output, "Overall match: 82/100")
	assert.Contains(t, output, "✓ exp-acme (1 bullets)")
	assert.Contains(t, output, "✗ exp-globex (0 bullets)")
	assert.Contains(t, output, "[ 91] Cut p99 latency by 40%")
}

func TestPrintATSScore(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintATSScore(&types.ATSScoreResult{
		Score: 74, KeywordMatch: 67, SectionScore: 85, FormatScore: 80,
		Suggestions: []types.ATSSuggestion{
			{Type: types.SuggestionKeyword, Severity: types.SeverityCritical, Message: "Missing required keywords: docker"},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "Score:    74/100")
	assert.Contains(t, output, "Keywords: 67  Sections: 85  Format: 80")
	assert.Contains(t, output, "🔴 Missing required keywords: docker")
}

func TestPrintTokenUsage(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintTokenUsage(types.TokenUsage{GenerateTokens: 1200, TotalCost: 0.0123})

	output := buf.String()
	assert.Contains(t, output, "Generate:     1200")
	assert.Contains(t, output, "$0.0123")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), line)
	}
	assert.Contains(t, buf.String(), "...")
}
