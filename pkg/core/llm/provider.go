// Package llm abstracts the text-generation backends used by the advisor.
package llm

import (
	"context"
	"os"
)

// Provider is the interface all text-generation backends implement.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
}

// FromEnv picks a provider based on LLM_PROVIDER. Defaults to Gemini.
func FromEnv() Provider {
	switch os.Getenv("LLM_PROVIDER") {
	case "deepseek":
		return &DeepSeekProvider{}
	default:
		return &GeminiProvider{}
	}
}
