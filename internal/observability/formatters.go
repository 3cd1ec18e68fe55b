// Package observability provides structured logging, Prometheus metrics and
// the boxed summaries printed by the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resu/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer writes human-readable run summaries
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to a terminal; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or right-pads line to the box's inner width, counting runes
func pad(line string) string {
	width := boxWidth - 4
	runes := []rune(line)
	if len(runes) > width {
		return string(runes[:width-3]) + "..."
	}
	return line + strings.Repeat(" ", width-len(runes))
}

// writeList writes up to limit items with a "more" trailer
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	for _, item := range items[:min(len(items), limit)] {
		sb.WriteString(fmt.Sprintf("  • %s\n", item))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

// PrintParsedJD outputs a summary of a parsed job description.
func (p *Printer) PrintParsedJD(jd *types.ParsedJobDescription) {
	if jd == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:   %s\n", jd.CompanyName))
	sb.WriteString(fmt.Sprintf("Role:      %s\n", jd.RoleTitle))
	sb.WriteString(fmt.Sprintf("Seniority: %s\n", jd.SeniorityLevel))
	if jd.IndustryDomain != nil {
		sb.WriteString(fmt.Sprintf("Domain:    %s\n", *jd.IndustryDomain))
	}
	sb.WriteString("\n")

	writeList(&sb, "Required", jd.RequiredSkills, maxItemsToShow)
	writeList(&sb, "Preferred", jd.PreferredSkills, 3)
	writeList(&sb, "Tech stack", jd.TechStack, maxItemsToShow)

	p.printBox("PARSED JOB DESCRIPTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSelection outputs the checkpoint selection awaiting review.
func (p *Printer) PrintSelection(sel *types.RelevanceSelection) {
	if sel == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Overall match: %.0f/100\n\n", sel.OverallMatchScore))

	for _, exp := range sel.SelectedExperiences {
		mark := "✓"
		if !exp.Include {
			mark = "✗"
		}
		sb.WriteString(fmt.Sprintf("%s %s (%d bullets)\n", mark, exp.ExperienceID, len(exp.SelectedBullets)))
		if !exp.Include {
			continue
		}
		for _, b := range exp.SelectedBullets[:min(len(exp.SelectedBullets), 3)] {
			sb.WriteString(fmt.Sprintf("    [%3.0f] %s\n", b.RelevanceScore, b.OriginalText))
		}
	}
	sb.WriteString("\n")

	writeList(&sb, "Skills", sel.SelectedSkills, 8)
	writeList(&sb, "Projects", sel.SelectedProjects, maxItemsToShow)
	writeList(&sb, "Certifications", sel.SelectedCertifications, maxItemsToShow)

	p.printBox("RELEVANCE SELECTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintATSScore outputs the score breakdown and its suggestions.
func (p *Printer) PrintATSScore(score *types.ATSScoreResult) {
	if score == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:    %d/100\n", score.Score))
	sb.WriteString(fmt.Sprintf("Keywords: %d  Sections: %d  Format: %d\n", score.KeywordMatch, score.SectionScore, score.FormatScore))

	if len(score.Suggestions) > 0 {
		sb.WriteString("\n")
		for _, s := range score.Suggestions {
			sb.WriteString(fmt.Sprintf("%s %s\n", severityIcon(s.Severity), s.Message))
		}
	}

	p.printBox("ATS SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTokenUsage outputs per-step token counts and cost.
func (p *Printer) PrintTokenUsage(usage types.TokenUsage) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Parse:        %d\n", usage.ParseTokens))
	sb.WriteString(fmt.Sprintf("Select:       %d\n", usage.SelectTokens))
	sb.WriteString(fmt.Sprintf("Generate:     %d\n", usage.GenerateTokens))
	sb.WriteString(fmt.Sprintf("Cover letter: %d\n", usage.CoverLetterTokens))
	sb.WriteString(fmt.Sprintf("Cost:         $%.4f", usage.TotalCost))

	p.printBox("TOKEN USAGE", sb.String())
}

func severityIcon(s types.Severity) string {
	switch s {
	case types.SeverityCritical:
		return "🔴"
	case types.SeverityWarning:
		return "🟡"
	default:
		return "ℹ️"
	}
}
