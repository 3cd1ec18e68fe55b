package types

// Defaults applied to a GenerationConfig
const (
	DefaultTemplateID       = "ats-classic"
	DefaultTargetPageLength = 1
	DefaultTone             = ToneProfessional
)

// GenerationConfig holds the user-provided options for a generation run
type GenerationConfig struct {
	CompanyName       string   `json:"companyName,omitempty"`
	RoleTitle         string   `json:"roleTitle,omitempty"`
	Tone              Tone     `json:"tone" validate:"omitempty,oneof=formal professional conversational"`
	SkillsToEmphasize []string `json:"skillsToEmphasize"`
	TargetPageLength  int      `json:"targetPageLength" validate:"omitempty,oneof=1 2"`
	TemplateID        string   `json:"templateId"`
}

// WithDefaults returns a copy of the config with unset fields filled in.
// A nil receiver yields the default config.
func (c *GenerationConfig) WithDefaults() GenerationConfig {
	var out GenerationConfig
	if c != nil {
		out = *c
	}
	if out.Tone == "" {
		out.Tone = DefaultTone
	}
	if out.SkillsToEmphasize == nil {
		out.SkillsToEmphasize = []string{}
	}
	if out.TargetPageLength == 0 {
		out.TargetPageLength = DefaultTargetPageLength
	}
	if out.TemplateID == "" {
		out.TemplateID = DefaultTemplateID
	}
	return out
}
