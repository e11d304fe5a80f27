package assistant

import (
	"github.com/cloudwego/eino/schema"

	logx "github.com/boutiqo/server/pkg/logger"
)

// pricing defines USD cost per 1M tokens for input/output.
type pricing struct {
	inputPerM  float64
	outputPerM float64
}

// Source: Gemini pricing (Standard; text tokens).
var defaultPricing = map[string]pricing{
	"gemini-2.5-flash":      {inputPerM: 0.30, outputPerM: 2.50},
	"gemini-2.5-flash-lite": {inputPerM: 0.10, outputPerM: 0.40},
}

// logUsage reports token usage and estimated cost of one model invocation.
func logUsage(modelName, sessionKey string, msg *schema.Message) {
	if msg == nil || msg.ResponseMeta == nil || msg.ResponseMeta.Usage == nil {
		return
	}
	usage := msg.ResponseMeta.Usage
	p := defaultPricing[modelName] // unknown models fall back to zero pricing
	inputCost := p.inputPerM * float64(usage.PromptTokens) / 1_000_000.0
	outputCost := p.outputPerM * float64(usage.CompletionTokens) / 1_000_000.0

	logx.Debug().
		Str("session_key", sessionKey).
		Str("model", modelName).
		Int("prompt_tokens", usage.PromptTokens).
		Int("completion_tokens", usage.CompletionTokens).
		Int("total_tokens", usage.TotalTokens).
		Float64("input_cost_usd", inputCost).
		Float64("output_cost_usd", outputCost).
		Float64("total_cost_usd", inputCost+outputCost).
		Msg("LLM usage")
}
