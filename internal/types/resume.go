package types

// ResumeData is the final résumé content produced by a generation run.
// It is the canonical, versioned artifact of a ResumeRecord.
type ResumeData struct {
	Contact        ResumeContact         `json:"contact"`
	Summary        string                `json:"summary"`
	Experience     []ResumeExperience    `json:"experience" validate:"dive"`
	Education      []ResumeEducation     `json:"education"`
	Skills         ResumeSkillsSection   `json:"skills"`
	Projects       []ResumeProject       `json:"projects"`
	Certifications []ResumeCertification `json:"certifications"`
}

// ResumeContact is the contact block at the top of a résumé
type ResumeContact struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

// ResumeExperience is one role on the résumé. An empty EndDate means "present".
type ResumeExperience struct {
	Title     string   `json:"title"`
	Company   string   `json:"company"`
	Location  string   `json:"location,omitempty"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate,omitempty"`
	Bullets   []string `json:"bullets"`
}

// ResumeEducation is one education entry on the résumé
type ResumeEducation struct {
	Institution string   `json:"institution"`
	Degree      string   `json:"degree"`
	Field       string   `json:"field"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate,omitempty"`
	GPA         string   `json:"gpa,omitempty"`
	Highlights  []string `json:"highlights"`
}

// ResumeSkillsSection holds skill categories in display order
type ResumeSkillsSection struct {
	Categories []SkillCategory `json:"categories"`
}

// SkillCategory is a named, ordered group of skills.
// Names are not required to be unique within a section.
type SkillCategory struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

// ResumeProject is one project entry on the résumé
type ResumeProject struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	URL         string   `json:"url,omitempty"`
	Highlights  []string `json:"highlights"`
}

// ResumeCertification is one certification entry on the résumé
type ResumeCertification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
}

// TotalBullets counts experience bullets across all roles
func (r *ResumeData) TotalBullets() int {
	total := 0
	for _, exp := range r.Experience {
		total += len(exp.Bullets)
	}
	return total
}
