// Package steps provides the step definitions of the generation pipeline:
// which model tier, temperature and prompt each Completion Service call uses,
// and how each step's user message is built.
package steps

import (
	"fmt"
	"strconv"

	"github.com/jonathan/resu/internal/llm"
	"github.com/jonathan/resu/internal/prompts"
	"github.com/jonathan/resu/internal/types"
)

// Name identifies a pipeline step
type Name string

// Pipeline steps in execution order
const (
	Parse       Name = "parse"
	Select      Name = "select"
	Generate    Name = "generate"
	Score       Name = "score"
	CoverLetter Name = "cover-letter"
	Persist     Name = "persist"
)

// Order lists every step in execution order
var Order = []Name{Parse, Select, Generate, Score, CoverLetter, Persist}

// Definition defines how a step calls the Completion Service.
// Steps that make no call (Score, Persist) have an empty PromptKey.
type Definition struct {
	Name        Name
	Tier        llm.ModelTier
	Temperature float32
	PromptKey   string
	Output      func() llm.ExtractionSchema
}

// Registry holds all step definitions
var Registry = map[Name]Definition{
	Parse: {
		Name:        Parse,
		Tier:        llm.TierFast,
		Temperature: 0.1,
		PromptKey:   prompts.KeyParseJobDescription,
		Output:      llm.JobDescriptionSchema,
	},
	Select: {
		Name:        Select,
		Tier:        llm.TierSmart,
		Temperature: 0.3,
		PromptKey:   prompts.KeySelectRelevant,
		Output:      llm.RelevanceSelectionSchema,
	},
	Generate: {
		Name:        Generate,
		Tier:        llm.TierSmart,
		Temperature: 0.4,
		PromptKey:   prompts.KeyGenerateResume,
		Output:      llm.ResumeDataSchema,
	},
	Score: {
		Name: Score,
	},
	CoverLetter: {
		Name:        CoverLetter,
		Tier:        llm.TierSmart,
		Temperature: 0.5,
		PromptKey:   prompts.KeyGenerateCoverLetter,
		Output:      llm.CoverLetterSchema,
	},
	Persist: {
		Name: Persist,
	},
}

// Get returns the definition of a step
func Get(name Name) (Definition, error) {
	def, ok := Registry[name]
	if !ok {
		return Definition{}, fmt.Errorf("unknown step: %s", name)
	}
	return def, nil
}

// CallsModel reports whether the step makes a Completion Service call
func (d Definition) CallsModel() bool {
	return d.PromptKey != ""
}

// SystemPrompt renders the step's prompt for cfg and appends its output contract
func (d Definition) SystemPrompt(cfg types.GenerationConfig) (string, error) {
	if !d.CallsModel() {
		return "", fmt.Errorf("step %s has no prompt", d.Name)
	}

	prompt, err := prompts.Render(prompts.GenerationFile, d.PromptKey, map[string]string{
		"TargetPageLength": strconv.Itoa(cfg.TargetPageLength),
		"Tone":             string(cfg.Tone),
	})
	if err != nil {
		return "", err
	}
	return prompt + "\n\n" + llm.BuildOutputInstructions(d.Output()), nil
}

// Request builds the Completion Service request for the step
func (d Definition) Request(cfg types.GenerationConfig, userMessage string) (llm.Request, error) {
	system, err := d.SystemPrompt(cfg)
	if err != nil {
		return llm.Request{}, err
	}
	return llm.Request{
		Tier:             d.Tier,
		SystemPrompt:     system,
		UserMessage:      userMessage,
		StructuredOutput: true,
		Temperature:      llm.Temperature(d.Temperature),
	}, nil
}
