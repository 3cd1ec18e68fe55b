package types

// SuggestionType classifies an ATS suggestion
type SuggestionType string

// Suggestion types
const (
	SuggestionKeyword SuggestionType = "keyword"
	SuggestionFormat  SuggestionType = "format"
	SuggestionSection SuggestionType = "section"
	SuggestionLength  SuggestionType = "length"
	SuggestionDensity SuggestionType = "density"
)

// Severity ranks how urgent a suggestion is
type Severity string

// Severities, most urgent first
const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// ATSSuggestion is one actionable improvement for a résumé
type ATSSuggestion struct {
	Type     SuggestionType `json:"type"`
	Severity Severity       `json:"severity"`
	Message  string         `json:"message"`
}

// ATSScoreResult is the compatibility score of a résumé against a parsed job description.
// All scores are in [0, 100].
type ATSScoreResult struct {
	Score        int             `json:"score"`
	KeywordMatch int             `json:"keywordMatch"`
	SectionScore int             `json:"sectionScore"`
	FormatScore  int             `json:"formatScore"`
	Suggestions  []ATSSuggestion `json:"suggestions"`
}
