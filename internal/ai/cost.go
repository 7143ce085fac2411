package ai

import "context"

// Usage counts the tokens consumed by one API call.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// CostRecorder persists cumulative API spend.
type CostRecorder interface {
	AddAPICost(ctx context.Context, cost float64) error
}

// modelRates holds each model's published price in USD per million input and
// output tokens. Calls against unknown models record no cost.
var modelRates = map[string]struct{ input, output float64 }{
	"claude-3-5-haiku-20241022":  {0.80, 4.00},
	"claude-3-7-sonnet-20250219": {3.00, 15.00},
	"gemini-2.0-flash":           {0.10, 0.40},
	"gemini-2.5-pro":             {1.25, 10.00},
}

// CostOf prices a call's token usage for the given model.
func CostOf(model string, usage Usage) float64 {
	rates, ok := modelRates[model]
	if !ok {
		return 0
	}
	return float64(usage.InputTokens)*rates.input/1e6 +
		float64(usage.OutputTokens)*rates.output/1e6
}
