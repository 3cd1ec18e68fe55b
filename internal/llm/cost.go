package llm

// Price is the USD cost per token for one model
type Price struct {
	Input  float64
	Output float64
}

const perMillion = 1.0 / 1_000_000

// Pricing lists known per-token prices. Unknown models use FallbackPrice.
var Pricing = map[string]Price{
	"gemini-2.5-pro":        {Input: 1.25 * perMillion, Output: 10 * perMillion},
	"gemini-2.5-flash":      {Input: 0.30 * perMillion, Output: 2.5 * perMillion},
	"gemini-2.5-flash-lite": {Input: 0.10 * perMillion, Output: 0.40 * perMillion},
}

// FallbackPrice is charged for models missing from Pricing
var FallbackPrice = Price{Input: 2 * perMillion, Output: 10 * perMillion}

// EstimateCost returns the estimated USD cost of a completion
func EstimateCost(model string, usage Usage) float64 {
	p, ok := Pricing[model]
	if !ok {
		p = FallbackPrice
	}
	return float64(usage.PromptTokens)*p.Input + float64(usage.CompletionTokens)*p.Output
}
