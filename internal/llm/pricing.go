package llm

import "math"

// modelPrice holds USD per single token. The table is fixed at build time;
// there is no live pricing lookup.
type modelPrice struct {
	Prompt     float64
	Completion float64
}

var prices = map[string]modelPrice{
	"gpt-4o-mini":   {Prompt: 0.15 / 1e6, Completion: 0.60 / 1e6},
	"gpt-4o":        {Prompt: 2.50 / 1e6, Completion: 10.00 / 1e6},
	"gpt-4.1-mini":  {Prompt: 0.40 / 1e6, Completion: 1.60 / 1e6},
	"gpt-3.5-turbo": {Prompt: 0.50 / 1e6, Completion: 1.50 / 1e6},
}

// EstimateCost returns the approximate USD cost of a call, rounded to six
// decimals. Unknown models cost zero rather than failing the request.
func EstimateCost(model string, promptTokens, completionTokens int) float64 {
	price, ok := prices[model]
	if !ok {
		return 0
	}
	cost := float64(promptTokens)*price.Prompt + float64(completionTokens)*price.Completion
	return math.Round(cost*1e6) / 1e6
}
