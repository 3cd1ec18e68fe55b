// Package llm provides the Completion Service: model tiers, provider configuration,
// cost estimation and the Gemini-backed client.
package llm

// ModelTier is the coarse cost/capability selector for a completion
type ModelTier string

const (
	// TierFast is for cheap extraction tasks such as job description parsing
	TierFast ModelTier = "fast"
	// TierSmart is for reasoning-heavy tasks: selection, résumé and cover letter writing
	TierSmart ModelTier = "smart"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierFast:  "gemini-2.5-flash",
			TierSmart: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok && model != "" {
		return model
	}
	// Fallback chain: try smart, then fast
	if model, ok := c.Models[TierSmart]; ok && model != "" {
		return model
	}
	if model, ok := c.Models[TierFast]; ok && model != "" {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier.
// An empty model leaves the tier unchanged.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider: c.Provider,
		Models:   make(map[ModelTier]string),
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	if model != "" {
		newConfig.Models[tier] = model
	}
	return newConfig
}
