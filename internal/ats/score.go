// Package ats scores finished résumés against a parsed job description the way
// an applicant tracking system would screen them. Scoring is deterministic and
// makes no external calls, so it can be re-run after every manual edit.
package ats

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/resu/internal/types"
)

// Score weights and penalties
const (
	keywordWeight = 0.5
	sectionWeight = 0.3
	formatWeight  = 0.2

	sectionPenalty     = 25
	sparseRolePenalty  = 10
	denseRolePenalty   = 5
	lengthPenalty      = 10
	missingDatePenalty = 5

	minBulletsPerRole = 2
	maxBulletsPerRole = 8
	bulletsPerPage    = 6
	maxPages          = 2

	maxKeywordsShown = 5
)

// Score rates resume against jd. It is pure: identical inputs always produce
// identical results.
func Score(resume *types.ResumeData, jd *types.ParsedJobDescription) types.ATSScoreResult {
	suggestions := []types.ATSSuggestion{}

	keywordMatch, keywordSuggestions := scoreKeywords(resume, jd)
	suggestions = append(suggestions, keywordSuggestions...)

	sectionScore, sectionSuggestions := scoreSections(resume)
	suggestions = append(suggestions, sectionSuggestions...)

	formatScore, formatSuggestions := scoreFormat(resume)
	suggestions = append(suggestions, formatSuggestions...)

	composite := round(float64(keywordMatch)*keywordWeight +
		float64(sectionScore)*sectionWeight +
		float64(formatScore)*formatWeight)

	return types.ATSScoreResult{
		Score:        clamp(composite),
		KeywordMatch: keywordMatch,
		SectionScore: clamp(sectionScore),
		FormatScore:  formatScore,
		Suggestions:  suggestions,
	}
}

// Keywords returns the job description's case-folded keyword set in first-seen
// order. Blank entries are ignored.
func Keywords(jd *types.ParsedJobDescription) []string {
	seen := map[string]bool{}
	var keywords []string
	for _, k := range jd.AllKeywords() {
		k = fold(k)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		keywords = append(keywords, k)
	}
	return keywords
}

// ResumeText flattens every scored part of the résumé into one case-folded string
func ResumeText(resume *types.ResumeData) string {
	parts := []string{resume.Summary}
	for _, exp := range resume.Experience {
		parts = append(parts, exp.Title, exp.Company)
		parts = append(parts, exp.Bullets...)
	}
	for _, cat := range resume.Skills.Categories {
		parts = append(parts, cat.Skills...)
	}
	for _, proj := range resume.Projects {
		parts = append(parts, proj.Name, proj.Description)
		parts = append(parts, proj.Highlights...)
	}
	for _, cert := range resume.Certifications {
		parts = append(parts, cert.Name)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

func scoreKeywords(resume *types.ResumeData, jd *types.ParsedJobDescription) (int, []types.ATSSuggestion) {
	keywords := Keywords(jd)
	if len(keywords) == 0 {
		return 100, nil
	}

	text := ResumeText(resume)
	required := map[string]bool{}
	for _, s := range jd.RequiredSkills {
		required[fold(s)] = true
	}

	matched := 0
	var missingRequired, missingOther []string
	for _, k := range keywords {
		switch {
		case strings.Contains(text, k):
			matched++
		case required[k]:
			missingRequired = append(missingRequired, k)
		default:
			missingOther = append(missingOther, k)
		}
	}

	var suggestions []types.ATSSuggestion
	if len(missingRequired) > 0 {
		suggestions = append(suggestions, types.ATSSuggestion{
			Type:     types.SuggestionKeyword,
			Severity: types.SeverityCritical,
			Message:  "Missing required keywords: " + strings.Join(firstN(missingRequired, maxKeywordsShown), ", "),
		})
	}
	if len(missingOther) > 0 {
		suggestions = append(suggestions, types.ATSSuggestion{
			Type:     types.SuggestionKeyword,
			Severity: types.SeverityWarning,
			Message:  "Missing preferred keywords: " + strings.Join(firstN(missingOther, maxKeywordsShown), ", "),
		})
	}

	return round(float64(matched) / float64(len(keywords)) * 100), suggestions
}

func scoreSections(resume *types.ResumeData) (int, []types.ATSSuggestion) {
	sections := []struct {
		name    string
		present bool
	}{
		{"Summary", resume.Summary != ""},
		{"Experience", len(resume.Experience) > 0},
		{"Education", len(resume.Education) > 0},
		{"Skills", len(resume.Skills.Categories) > 0},
	}

	score := 100
	var suggestions []types.ATSSuggestion
	for _, s := range sections {
		if s.present {
			continue
		}
		score -= sectionPenalty
		suggestions = append(suggestions, types.ATSSuggestion{
			Type:     types.SuggestionSection,
			Severity: types.SeverityCritical,
			Message:  fmt.Sprintf("Missing %q section; most ATS systems expect this", s.name),
		})
	}
	return score, suggestions
}

func scoreFormat(resume *types.ResumeData) (int, []types.ATSSuggestion) {
	score := 100
	var suggestions []types.ATSSuggestion

	for _, exp := range resume.Experience {
		role := exp.Title + " @ " + exp.Company
		n := len(exp.Bullets)
		if n < minBulletsPerRole {
			score -= sparseRolePenalty
			suggestions = append(suggestions, types.ATSSuggestion{
				Type:     types.SuggestionDensity,
				Severity: types.SeverityWarning,
				Message:  fmt.Sprintf("%q has only %d bullet(s); aim for 3-5", role, n),
			})
		}
		if n > maxBulletsPerRole {
			score -= denseRolePenalty
			suggestions = append(suggestions, types.ATSSuggestion{
				Type:     types.SuggestionDensity,
				Severity: types.SeverityInfo,
				Message:  fmt.Sprintf("%q has %d bullets; consider trimming to 5-6", role, n),
			})
		}
	}

	pages := (resume.TotalBullets() + bulletsPerPage - 1) / bulletsPerPage
	if pages > maxPages {
		score -= lengthPenalty
		suggestions = append(suggestions, types.ATSSuggestion{
			Type:     types.SuggestionLength,
			Severity: types.SeverityWarning,
			Message:  fmt.Sprintf("Resume may be too long (~%d pages estimated). Consider trimming.", pages),
		})
	}

	for _, exp := range resume.Experience {
		if exp.StartDate != "" {
			continue
		}
		score -= missingDatePenalty
		suggestions = append(suggestions, types.ATSSuggestion{
			Type:     types.SuggestionFormat,
			Severity: types.SeverityWarning,
			Message:  fmt.Sprintf("%q is missing a start date", exp.Title+" @ "+exp.Company),
		})
	}

	return max(score, 0), suggestions
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func round(f float64) int {
	return int(math.Floor(f + 0.5))
}

func clamp(v int) int {
	return min(max(v, 0), 100)
}
