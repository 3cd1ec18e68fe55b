package types

// BulletCategory classifies a profile bullet
type BulletCategory string

// Bullet categories
const (
	BulletTechnical     BulletCategory = "technical"
	BulletLeadership    BulletCategory = "leadership"
	BulletImpact        BulletCategory = "impact"
	BulletCollaboration BulletCategory = "collaboration"
	BulletProcess       BulletCategory = "process"
	BulletOther         BulletCategory = "other"
)

// Profile is the candidate's master career profile, the single source of truth
// for every generated résumé.
type Profile struct {
	Contact        ResumeContact        `json:"contact" validate:"required"`
	Summary        string               `json:"summary"`
	Experience     []ProfileExperience  `json:"experience" validate:"dive"`
	Skills         []ProfileSkill       `json:"skills" validate:"dive"`
	Education      []ProfileEducation   `json:"education"`
	Projects       []ProfileProject     `json:"projects"`
	Certifications []ProfileCertificate `json:"certifications"`
	Achievements   []Achievement        `json:"achievements"`
}

// ProfileExperience is one role in the master profile.
// Bullet indexes used by a RelevanceSelection refer to Bullets.
type ProfileExperience struct {
	ID           string          `json:"id" validate:"required"`
	Title        string          `json:"title" validate:"required"`
	TitleAliases []string        `json:"titleAliases"`
	Company      string          `json:"company" validate:"required"`
	Location     string          `json:"location,omitempty"`
	StartDate    string          `json:"startDate"`
	EndDate      string          `json:"endDate,omitempty"`
	Bullets      []ProfileBullet `json:"bullets" validate:"dive"`
	Tags         []string        `json:"tags"`
}

// ProfileBullet is one accomplishment with tags and a self-assessed strength
type ProfileBullet struct {
	Text     string         `json:"text" validate:"required"`
	Tags     []string       `json:"tags"`
	Category BulletCategory `json:"category" validate:"oneof=technical leadership impact collaboration process other"`
	Strength int            `json:"strength" validate:"min=1,max=5"`
}

// ProfileSkill is a skill with its known aliases
type ProfileSkill struct {
	Name        string   `json:"name" validate:"required"`
	Aliases     []string `json:"aliases"`
	Proficiency string   `json:"proficiency" validate:"oneof=expert advanced intermediate"`
	Category    string   `json:"category"`
}

// ProfileEducation is one education entry in the master profile
type ProfileEducation struct {
	ID          string   `json:"id"`
	Institution string   `json:"institution"`
	Degree      string   `json:"degree"`
	Field       string   `json:"field"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate,omitempty"`
	GPA         string   `json:"gpa,omitempty"`
	Highlights  []string `json:"highlights"`
}

// ProfileProject is one project in the master profile
type ProfileProject struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	URL         string   `json:"url,omitempty"`
	Tags        []string `json:"tags"`
	Highlights  []string `json:"highlights"`
}

// ProfileCertificate is one certification in the master profile
type ProfileCertificate struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Issuer string   `json:"issuer"`
	Date   string   `json:"date"`
	URL    string   `json:"url,omitempty"`
	Tags   []string `json:"tags"`
}

// Achievement is a standalone accomplishment not tied to one role
type Achievement struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// FindExperience returns the experience with the given ID
func (p *Profile) FindExperience(id string) (*ProfileExperience, bool) {
	for i := range p.Experience {
		if p.Experience[i].ID == id {
			return &p.Experience[i], true
		}
	}
	return nil, false
}

// FindProject looks a project up by ID, falling back to name
func (p *Profile) FindProject(ref string) (*ProfileProject, bool) {
	for i := range p.Projects {
		if p.Projects[i].ID == ref || p.Projects[i].Name == ref {
			return &p.Projects[i], true
		}
	}
	return nil, false
}

// FindCertification looks a certification up by ID, falling back to name
func (p *Profile) FindCertification(ref string) (*ProfileCertificate, bool) {
	for i := range p.Certifications {
		if p.Certifications[i].ID == ref || p.Certifications[i].Name == ref {
			return &p.Certifications[i], true
		}
	}
	return nil, false
}

// Warnings reports soft quality issues that do not make the profile invalid
func (p *Profile) Warnings() []string {
	var warnings []string
	for _, exp := range p.Experience {
		if len(exp.Bullets) == 0 {
			warnings = append(warnings, "experience \""+exp.Title+" @ "+exp.Company+"\" has no bullets")
		}
		for _, b := range exp.Bullets {
			if len(b.Tags) == 0 {
				warnings = append(warnings, "bullet in \""+exp.Title+" @ "+exp.Company+"\" has no tags: \""+truncate(b.Text, 50)+"...\"")
			}
		}
	}
	for _, s := range p.Skills {
		if len(s.Aliases) == 0 {
			warnings = append(warnings, "skill \""+s.Name+"\" has no aliases")
		}
	}
	return warnings
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
