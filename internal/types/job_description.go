// Package types provides type definitions for structured data used throughout the resu system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SeniorityLevel is the closed set of seniority values a parsed job description may carry
type SeniorityLevel string

// Seniority levels recognized by the parser
const (
	SeniorityIntern    SeniorityLevel = "intern"
	SeniorityJunior    SeniorityLevel = "junior"
	SeniorityMid       SeniorityLevel = "mid"
	SenioritySenior    SeniorityLevel = "senior"
	SeniorityStaff     SeniorityLevel = "staff"
	SeniorityPrincipal SeniorityLevel = "principal"
	SeniorityLead      SeniorityLevel = "lead"
	SeniorityManager   SeniorityLevel = "manager"
	SeniorityDirector  SeniorityLevel = "director"
	SeniorityUnknown   SeniorityLevel = "unknown"
)

// SeniorityLevels lists every valid seniority value in display order
var SeniorityLevels = []SeniorityLevel{
	SeniorityIntern, SeniorityJunior, SeniorityMid, SenioritySenior, SeniorityStaff,
	SeniorityPrincipal, SeniorityLead, SeniorityManager, SeniorityDirector, SeniorityUnknown,
}

// ParsedJobDescription is the structured form of a raw job description.
// It is produced once per pipeline run and never modified afterwards.
type ParsedJobDescription struct {
	CompanyName      string         `json:"companyName" validate:"required"`
	RoleTitle        string         `json:"roleTitle" validate:"required"`
	SeniorityLevel   SeniorityLevel `json:"seniorityLevel" validate:"required,oneof=intern junior mid senior staff principal lead manager director unknown"`
	RequiredSkills   []string       `json:"requiredSkills"`
	PreferredSkills  []string       `json:"preferredSkills"`
	Keywords         []string       `json:"keywords"`
	Responsibilities []string       `json:"responsibilities"`
	Qualifications   []string       `json:"qualifications"`
	NiceToHaves      []string       `json:"niceToHaves"`
	IndustryDomain   *string        `json:"industryDomain"`
	TeamSize         *string        `json:"teamSize"`
	TechStack        []string       `json:"techStack"`
}

// AllKeywords returns required skills, preferred skills, free keywords and tech stack, in that order
func (p *ParsedJobDescription) AllKeywords() []string {
	all := make([]string, 0, len(p.RequiredSkills)+len(p.PreferredSkills)+len(p.Keywords)+len(p.TechStack))
	all = append(all, p.RequiredSkills...)
	all = append(all, p.PreferredSkills...)
	all = append(all, p.Keywords...)
	all = append(all, p.TechStack...)
	return all
}
