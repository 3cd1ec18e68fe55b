package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierFast))
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierSmart))
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierFast: "fallback-model",
		},
	}

	// Unknown tier should fallback to TierSmart, then TierFast
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
	assert.Equal(t, "fallback-model", config.GetModel(TierSmart))
}

func TestGetModel_EmptyConfig(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models:   map[ModelTier]string{},
	}

	assert.Equal(t, "", config.GetModel(TierSmart))
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig()
	newConfig := config.WithModel(TierSmart, "custom-model")

	// Original should be unchanged
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierSmart))

	assert.Equal(t, "custom-model", newConfig.GetModel(TierSmart))
	assert.Equal(t, "gemini-2.5-flash", newConfig.GetModel(TierFast))

	// Empty override keeps the existing model
	assert.Equal(t, "gemini-2.5-flash", config.WithModel(TierFast, "").GetModel(TierFast))
}

func TestModelTierConstants(t *testing.T) {
	assert.Equal(t, ModelTier("fast"), TierFast)
	assert.Equal(t, ModelTier("smart"), TierSmart)
}
