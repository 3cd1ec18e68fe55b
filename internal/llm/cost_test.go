package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateCost(t *testing.T) {
	tests := []struct {
		name  string
		model string
		usage Usage
		want  float64
	}{
		{"pro", "gemini-2.5-pro", Usage{PromptTokens: 1_000_000, CompletionTokens: 100_000}, 1.25 + 1.0},
		{"flash", "gemini-2.5-flash", Usage{PromptTokens: 2_000_000}, 0.60},
		{"unknown model uses fallback", "mystery-model", Usage{PromptTokens: 500_000, CompletionTokens: 500_000}, 1.0 + 5.0},
		{"no tokens", "gemini-2.5-pro", Usage{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, EstimateCost(tt.model, tt.usage), 1e-9)
		})
	}
}

func TestUsage_Total(t *testing.T) {
	assert.Equal(t, 150, Usage{PromptTokens: 100, CompletionTokens: 50}.Total())
}
