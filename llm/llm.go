package llm

import (
	"context"

	"github.com/bitrise-io/genai-prompt-form/common"
)

// OptionType defines the type of option
type OptionType string

// Available option types
const (
	ModelNameOption  OptionType = "model"
	APITimeoutOption OptionType = "api_timeout"
	BaseURLOption    OptionType = "base_url"
	RetryOption      OptionType = "retry"
)

// Option represents a generic configuration option for any LLM provider
type Option struct {
	Type  OptionType
	Value any
}

// WithModel creates an option to set the model name
func WithModel(model string) Option {
	return Option{
		Type:  ModelNameOption,
		Value: model,
	}
}

// WithAPITimeout creates an option to set the API timeout in seconds, 0 means no deadline
func WithAPITimeout(timeout int) Option {
	return Option{
		Type:  APITimeoutOption,
		Value: timeout,
	}
}

// WithBaseURL creates an option to point the client at a different API endpoint
func WithBaseURL(baseURL string) Option {
	return Option{
		Type:  BaseURLOption,
		Value: baseURL,
	}
}

// WithRetry creates an option to configure HTTP retries
func WithRetry(config common.RetryConfig) Option {
	return Option{
		Type:  RetryOption,
		Value: config,
	}
}

// OptionsFromSettings converts the openai section of the settings file into options
func OptionsFromSettings(settings common.OpenAI) []Option {
	opts := []Option{
		WithAPITimeout(settings.APITimeout),
		WithRetry(settings.RetryConfig()),
	}
	if settings.Model != "" {
		opts = append(opts, WithModel(settings.Model))
	}
	if settings.BaseURL != "" {
		opts = append(opts, WithBaseURL(settings.BaseURL))
	}
	return opts
}

// Request represents the data needed to generate a prompt for the LLM
type Request struct {
	UserPrompt string
}

// Response represents the response from the LLM
type Response struct {
	Content string
	Error   error
}

// LLM defines the interface for language model prompting
type LLM interface {
	// Prompt sends a request to the language model and returns its response
	Prompt(ctx context.Context, req Request) Response
}
