package types

// SelectedBullet is one profile bullet proposed for the résumé.
// BulletIndex points into the experience's bullet list as it was at selection time.
type SelectedBullet struct {
	ExperienceID    string   `json:"experienceId"`
	BulletIndex     int      `json:"bulletIndex" validate:"gte=0"`
	OriginalText    string   `json:"originalText"`
	RelevanceScore  float64  `json:"relevanceScore" validate:"gte=0,lte=100"`
	MatchedKeywords []string `json:"matchedKeywords"`
}

// SelectedExperience groups the selected bullets of one profile experience
type SelectedExperience struct {
	ExperienceID    string           `json:"experienceId" validate:"required"`
	Include         bool             `json:"include"`
	SelectedBullets []SelectedBullet `json:"selectedBullets" validate:"dive"`
}

// RelevanceSelection is the checkpoint artifact: which profile items the résumé should use.
// The human may edit it freely before confirming.
type RelevanceSelection struct {
	ProposedSummary        string               `json:"proposedSummary"`
	SelectedExperiences    []SelectedExperience `json:"selectedExperiences" validate:"dive"`
	SelectedSkills         []string             `json:"selectedSkills"`
	SelectedProjects       []string             `json:"selectedProjects"`
	SelectedCertifications []string             `json:"selectedCertifications"`
	OverallMatchScore      float64              `json:"overallMatchScore" validate:"gte=0,lte=100"`
}

// IncludedExperiences returns the experiences whose include flag is set, in selection order
func (s *RelevanceSelection) IncludedExperiences() []SelectedExperience {
	included := make([]SelectedExperience, 0, len(s.SelectedExperiences))
	for _, exp := range s.SelectedExperiences {
		if exp.Include {
			included = append(included, exp)
		}
	}
	return included
}

// BulletTexts returns the original text of the selected bullets, capped at limit (0 = no cap)
func (e *SelectedExperience) BulletTexts(limit int) []string {
	n := len(e.SelectedBullets)
	if limit > 0 && n > limit {
		n = limit
	}
	texts := make([]string, 0, n)
	for _, b := range e.SelectedBullets[:n] {
		texts = append(texts, b.OriginalText)
	}
	return texts
}
