package types

// Tone is the writing register used for generated prose
type Tone string

// Supported tones
const (
	ToneFormal         Tone = "formal"
	ToneProfessional   Tone = "professional"
	ToneConversational Tone = "conversational"
)

// Tones lists every valid tone
var Tones = []Tone{ToneFormal, ToneProfessional, ToneConversational}

// CoverLetterData is the generated cover letter
type CoverLetterData struct {
	Opening        string   `json:"opening" validate:"required"`
	BodyParagraphs []string `json:"bodyParagraphs"`
	Closing        string   `json:"closing" validate:"required"`
	Tone           Tone     `json:"tone" validate:"oneof=formal professional conversational"`
}
