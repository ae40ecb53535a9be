package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/bitrise-io/genai-prompt-form/logger"
	"github.com/bitrise-io/genai-prompt-form/model"
)

const (
	ProviderAzure  = "azure"
	ProviderOpenAI = "openai"
	ProviderGitHub = "github"

	DefaultProvider = ProviderAzure

	OpenAIAPIKeyEnv = "OPENAI_API_KEY"
)

// Providers is the allow-list of provider names, in display order
var Providers = []string{ProviderAzure, ProviderOpenAI, ProviderGitHub}

// ErrMissingAPIKey is returned when the openai provider is used without OPENAI_API_KEY.
// The text is shown to users verbatim, hence the trailing period.
var ErrMissingAPIKey = errors.New(OpenAIAPIKeyEnv + " not set in environment.")

// ResolveProvider normalizes a requested provider name. An empty name means the
// provider was not given and silently becomes the default; any other value
// outside the allow-list is logged and replaced by the default. It never fails.
func ResolveProvider(raw string) string {
	return resolveProvider(raw, raw != "")
}

// ResolveSubmittedProvider resolves a provider value that was explicitly
// submitted, so a blank value is reported like any other invalid one.
func ResolveSubmittedProvider(raw string) string {
	return resolveProvider(raw, true)
}

func resolveProvider(raw string, submitted bool) string {
	provider := strings.ToLower(strings.TrimSpace(raw))
	if slices.Contains(Providers, provider) {
		return provider
	}
	if submitted {
		logger.Warnf("Invalid provider '%s' requested. Defaulting to '%s'.", provider, DefaultProvider)
	}
	return DefaultProvider
}

// Factory builds a provider client on demand
type Factory func() (LLM, error)

// Registry maps provider names to the factories that build them
type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry registers the azure, openai and github providers. opts are
// applied to the openai client.
func DefaultRegistry(opts ...Option) *Registry {
	r := NewRegistry()
	r.Register(ProviderAzure, func() (LLM, error) {
		return NewPlaceholder(AzureLabel), nil
	})
	r.Register(ProviderGitHub, func() (LLM, error) {
		return NewPlaceholder(GitHubLabel), nil
	})
	r.Register(ProviderOpenAI, func() (LLM, error) {
		// Read on every call so a key exported after startup is picked up
		return NewOpenAI(os.Getenv(OpenAIAPIKeyEnv), opts...)
	})
	return r
}

// Register adds or replaces the factory for name
func (r *Registry) Register(name string, factory Factory) {
	r.factories[name] = factory
}

// NewLLM builds the client registered under providerName
func (r *Registry) NewLLM(providerName string) (LLM, error) {
	factory, ok := r.factories[providerName]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q", providerName)
	}
	return factory()
}

// Invoker turns a prompt into response text. It is the only place where
// provider failures are caught.
type Invoker struct {
	registry *Registry
}

func NewInvoker(registry *Registry) *Invoker {
	return &Invoker{registry: registry}
}

// Invoke never returns an error: failures are logged and come back as "Error: <reason>"
func (i *Invoker) Invoke(ctx context.Context, req model.PromptRequest) string {
	content, err := i.invoke(ctx, req)
	if err != nil {
		logger.Errorf("Error calling model: %v", err)
		return "Error: " + err.Error()
	}
	return content
}

func (i *Invoker) invoke(ctx context.Context, req model.PromptRequest) (content string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("provider %s panicked: %v", req.Provider, r)
		}
	}()

	client, err := i.registry.NewLLM(req.Provider)
	if err != nil {
		return "", err
	}

	resp := client.Prompt(ctx, Request{UserPrompt: req.Prompt})
	if resp.Error != nil {
		return "", resp.Error
	}
	return resp.Content, nil
}
