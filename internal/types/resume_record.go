package types

import "time"

// ResumeStatus is the lifecycle status of a stored résumé
type ResumeStatus string

// Résumé statuses
const (
	StatusDraft    ResumeStatus = "draft"
	StatusExported ResumeStatus = "exported"
	StatusArchived ResumeStatus = "archived"
)

// DefaultChangeDescription labels a version created by an update that gave no description
const DefaultChangeDescription = "Manual edit"

// TokenUsage records per-step token counts and the estimated cost of a run.
// Tokens spent before the checkpoint are reported by Start; confirmed totals
// cover the generate and cover-letter steps only.
type TokenUsage struct {
	ParseTokens       int     `json:"parseTokens"`
	SelectTokens      int     `json:"selectTokens"`
	GenerateTokens    int     `json:"generateTokens"`
	CoverLetterTokens int     `json:"coverLetterTokens"`
	TotalCost         float64 `json:"totalCost"`
}

// ResumeRecord is the persisted aggregate of one generation run
type ResumeRecord struct {
	ID                 string               `json:"id"`
	Company            string               `json:"company"`
	JobTitle           string               `json:"jobTitle"`
	JDText             string               `json:"jdText"`
	ParsedJD           ParsedJobDescription `json:"parsedJD"`
	GenerationConfig   GenerationConfig     `json:"generationConfig"`
	RelevanceSelection RelevanceSelection   `json:"relevanceSelection"`
	ResumeData         ResumeData           `json:"resumeData"`
	CoverLetter        *CoverLetterData     `json:"coverLetter"`
	ATSScore           ATSScoreResult       `json:"atsScore"`
	TemplateID         string               `json:"templateId"`
	PromptVersion      string               `json:"promptVersion"`
	Status             ResumeStatus         `json:"status"`
	TokenUsage         TokenUsage           `json:"tokenUsage"`
	CreatedAt          time.Time            `json:"createdAt"`
	UpdatedAt          time.Time            `json:"updatedAt"`
	Versions           []ResumeVersion      `json:"versions"`
}

// ResumeVersion is a snapshot of résumé content taken before a mutation.
// Versions are listed newest first.
type ResumeVersion struct {
	ID                string     `json:"id"`
	ResumeData        ResumeData `json:"resumeData"`
	ChangeDescription string     `json:"changeDescription"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// ResumeSummary is the list projection of a ResumeRecord
type ResumeSummary struct {
	ID         string       `json:"id"`
	Company    string       `json:"company"`
	JobTitle   string       `json:"jobTitle"`
	ATSScore   int          `json:"atsScore"`
	Status     ResumeStatus `json:"status"`
	TemplateID string       `json:"templateId"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// ResumeUpdate is a partial update; nil fields are left unchanged
type ResumeUpdate struct {
	ResumeData        *ResumeData      `json:"resumeData,omitempty"`
	CoverLetter       *CoverLetterData `json:"coverLetter,omitempty"`
	TemplateID        *string          `json:"templateId,omitempty"`
	Status            *ResumeStatus    `json:"status,omitempty" validate:"omitempty,oneof=draft exported archived"`
	ChangeDescription string           `json:"changeDescription,omitempty"`
}

// Summary projects the record into its list form
func (r *ResumeRecord) Summary() ResumeSummary {
	return ResumeSummary{
		ID:         r.ID,
		Company:    r.Company,
		JobTitle:   r.JobTitle,
		ATSScore:   r.ATSScore.Score,
		Status:     r.Status,
		TemplateID: r.TemplateID,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
