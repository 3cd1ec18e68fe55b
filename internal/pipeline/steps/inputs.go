package steps

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resu/internal/types"
)

const (
	coverLetterBullets = 3
	coverLetterSkills  = 8
)

// ParseInput builds the parse step's user message. Company and role hints from
// the config are appended as notes.
func ParseInput(jdText string, cfg types.GenerationConfig) string {
	var sb strings.Builder
	sb.WriteString("Job Description:\n\n")
	sb.WriteString(jdText)
	if cfg.CompanyName != "" {
		sb.WriteString(fmt.Sprintf("\n\nNote: The company is %q.", cfg.CompanyName))
	}
	if cfg.RoleTitle != "" {
		sb.WriteString(fmt.Sprintf("\n\nNote: The role title is %q.", cfg.RoleTitle))
	}
	return sb.String()
}

type selectInput struct {
	Profile              *types.Profile              `json:"profile"`
	ParsedJobDescription *types.ParsedJobDescription `json:"parsedJobDescription"`
	UserPreferences      userPreferences             `json:"userPreferences"`
}

type userPreferences struct {
	SkillsToEmphasize []string `json:"skillsToEmphasize"`
	TargetPageLength  int      `json:"targetPageLength"`
}

// SelectInput builds the select step's user message
func SelectInput(profile *types.Profile, jd *types.ParsedJobDescription, cfg types.GenerationConfig) (string, error) {
	return encode(selectInput{
		Profile:              profile,
		ParsedJobDescription: jd,
		UserPreferences: userPreferences{
			SkillsToEmphasize: cfg.SkillsToEmphasize,
			TargetPageLength:  cfg.TargetPageLength,
		},
	})
}

type generateInput struct {
	Contact                types.ResumeContact         `json:"contact"`
	ProposedSummary        string                      `json:"proposedSummary"`
	SelectedExperiences    []generateExperience        `json:"selectedExperiences"`
	SelectedSkills         []types.ProfileSkill        `json:"selectedSkills"`
	Education              []types.ProfileEducation    `json:"education"`
	SelectedProjects       []types.ProfileProject      `json:"selectedProjects"`
	SelectedCertifications []types.ProfileCertificate  `json:"selectedCertifications"`
	ParsedJobDescription   *types.ParsedJobDescription `json:"parsedJobDescription"`
	TargetPageLength       int                         `json:"targetPageLength"`
	Tone                   types.Tone                  `json:"tone"`
}

type generateExperience struct {
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	Location        string   `json:"location,omitempty"`
	StartDate       string   `json:"startDate"`
	EndDate         string   `json:"endDate,omitempty"`
	SelectedBullets []string `json:"selectedBullets"`
}

// GenerateInput builds the generate step's user message from the included
// parts of the selection only. Education is always sent in full.
func GenerateInput(profile *types.Profile, jd *types.ParsedJobDescription, sel *types.RelevanceSelection, cfg types.GenerationConfig) (string, error) {
	input := generateInput{
		Contact:                profile.Contact,
		ProposedSummary:        sel.ProposedSummary,
		SelectedExperiences:    []generateExperience{},
		SelectedSkills:         []types.ProfileSkill{},
		Education:              profile.Education,
		SelectedProjects:       []types.ProfileProject{},
		SelectedCertifications: []types.ProfileCertificate{},
		ParsedJobDescription:   jd,
		TargetPageLength:       cfg.TargetPageLength,
		Tone:                   cfg.Tone,
	}
	if input.Education == nil {
		input.Education = []types.ProfileEducation{}
	}

	for _, se := range sel.IncludedExperiences() {
		exp, ok := profile.FindExperience(se.ExperienceID)
		if !ok {
			continue
		}
		input.SelectedExperiences = append(input.SelectedExperiences, generateExperience{
			Title:           exp.Title,
			Company:         exp.Company,
			Location:        exp.Location,
			StartDate:       exp.StartDate,
			EndDate:         exp.EndDate,
			SelectedBullets: se.BulletTexts(0),
		})
	}

	wanted := make(map[string]bool, len(sel.SelectedSkills))
	for _, name := range sel.SelectedSkills {
		wanted[name] = true
	}
	for _, skill := range profile.Skills {
		if wanted[skill.Name] {
			input.SelectedSkills = append(input.SelectedSkills, skill)
		}
	}

	for _, ref := range sel.SelectedProjects {
		if p, ok := profile.FindProject(ref); ok {
			input.SelectedProjects = append(input.SelectedProjects, *p)
		}
	}
	for _, ref := range sel.SelectedCertifications {
		if c, ok := profile.FindCertification(ref); ok {
			input.SelectedCertifications = append(input.SelectedCertifications, *c)
		}
	}

	return encode(input)
}

type coverLetterInput struct {
	CandidateName        string                  `json:"candidateName"`
	CompanyName          string                  `json:"companyName"`
	RoleTitle            string                  `json:"roleTitle"`
	ProposedSummary      string                  `json:"proposedSummary"`
	SelectedExperiences  []coverLetterExperience `json:"selectedExperiences"`
	KeySkills            []string                `json:"keySkills"`
	ParsedJobDescription coverLetterJobHighlight `json:"parsedJobDescription"`
	Tone                 types.Tone              `json:"tone"`
}

type coverLetterExperience struct {
	Title      string   `json:"title"`
	Company    string   `json:"company"`
	TopBullets []string `json:"topBullets"`
}

type coverLetterJobHighlight struct {
	RequiredSkills   []string `json:"requiredSkills"`
	Responsibilities []string `json:"responsibilities"`
	IndustryDomain   *string  `json:"industryDomain"`
}

// CoverLetterInput builds the cover-letter step's user message: the top
// bullets of each included experience and the first selected skills.
func CoverLetterInput(profile *types.Profile, jd *types.ParsedJobDescription, sel *types.RelevanceSelection, cfg types.GenerationConfig) (string, error) {
	input := coverLetterInput{
		CandidateName:       profile.Contact.Name,
		CompanyName:         jd.CompanyName,
		RoleTitle:           jd.RoleTitle,
		ProposedSummary:     sel.ProposedSummary,
		SelectedExperiences: []coverLetterExperience{},
		KeySkills:           firstN(sel.SelectedSkills, coverLetterSkills),
		ParsedJobDescription: coverLetterJobHighlight{
			RequiredSkills:   jd.RequiredSkills,
			Responsibilities: jd.Responsibilities,
			IndustryDomain:   jd.IndustryDomain,
		},
		Tone: cfg.Tone,
	}

	for _, se := range sel.IncludedExperiences() {
		exp := coverLetterExperience{TopBullets: se.BulletTexts(coverLetterBullets)}
		if p, ok := profile.FindExperience(se.ExperienceID); ok {
			exp.Title = p.Title
			exp.Company = p.Company
		}
		input.SelectedExperiences = append(input.SelectedExperiences, exp)
	}

	return encode(input)
}

func firstN(s []string, n int) []string {
	out := make([]string, 0, min(len(s), n))
	return append(out, s[:min(len(s), n)]...)
}

func encode(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode step input: %w", err)
	}
	return string(data), nil
}
