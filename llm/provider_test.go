package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bitrise-io/genai-prompt-form/logger"
	"github.com/bitrise-io/genai-prompt-form/model"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// MockLLM is a fake provider that records the request it was given
type MockLLM struct {
	ReturnContent string
	ReturnError   error
	Panic         bool
	Received      Request
	Calls         int
}

func (m *MockLLM) Prompt(_ context.Context, req Request) Response {
	m.Calls++
	m.Received = req
	if m.Panic {
		panic("boom")
	}
	return Response{Content: m.ReturnContent, Error: m.ReturnError}
}

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	t.Cleanup(logger.Replace(zap.New(core)))
	return logs
}

func TestResolveProvider_Valid(t *testing.T) {
	cases := map[string]string{
		"azure":     ProviderAzure,
		"openai":    ProviderOpenAI,
		"github":    ProviderGitHub,
		"OpenAI":    ProviderOpenAI,
		"GITHUB":    ProviderGitHub,
		" Azure ":   ProviderAzure,
		"":          ProviderAzure,
		"   ":       ProviderAzure,
		"anthropic": ProviderAzure,
		"foo":       ProviderAzure,
		"azure2":    ProviderAzure,
	}

	for input, expected := range cases {
		if got := ResolveProvider(input); got != expected {
			t.Errorf("Expected %q for input %q, got %q", expected, input, got)
		}
	}
}

func TestResolveProvider_WarnsOnInvalid(t *testing.T) {
	logs := observeLogs(t)

	if got := ResolveProvider("foo"); got != ProviderAzure {
		t.Fatalf("Expected azure, got %s", got)
	}

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	if len(warnings) != 1 {
		t.Fatalf("Expected 1 warning, got %d", len(warnings))
	}
	expected := "Invalid provider 'foo' requested. Defaulting to 'azure'."
	if warnings[0].Message != expected {
		t.Errorf("Expected warning %q, got %q", expected, warnings[0].Message)
	}
}

func TestResolveProvider_NoWarningForValidOrMissing(t *testing.T) {
	logs := observeLogs(t)

	ResolveProvider("openai")
	ResolveProvider("")

	if logs.FilterLevelExact(zapcore.WarnLevel).Len() != 0 {
		t.Error("Expected no warnings for valid or missing provider")
	}
}

func TestResolveProvider_WarnsOnBlankValue(t *testing.T) {
	logs := observeLogs(t)

	if got := ResolveProvider("   "); got != ProviderAzure {
		t.Errorf("Expected azure for a whitespace provider, got %s", got)
	}
	if got := ResolveSubmittedProvider(""); got != ProviderAzure {
		t.Errorf("Expected azure for a submitted empty provider, got %s", got)
	}

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	if len(warnings) != 2 {
		t.Fatalf("Expected 2 warnings, got %d", len(warnings))
	}
	expected := "Invalid provider '' requested. Defaulting to 'azure'."
	for _, w := range warnings {
		if w.Message != expected {
			t.Errorf("Expected warning %q, got %q", expected, w.Message)
		}
	}
}

func TestResolveSubmittedProvider_Valid(t *testing.T) {
	logs := observeLogs(t)

	if got := ResolveSubmittedProvider("GitHub"); got != ProviderGitHub {
		t.Errorf("Expected github, got %s", got)
	}
	if logs.Len() != 0 {
		t.Errorf("Expected no logs for a valid provider, got %d", logs.Len())
	}
}

func TestPlaceholderProviders(t *testing.T) {
	invoker := NewInvoker(DefaultRegistry())
	prompt := "Tell me a <joke> about \"Go\""

	azure := invoker.Invoke(context.Background(), model.PromptRequest{Prompt: prompt, Provider: ProviderAzure})
	if azure != "[Azure OpenAI] Response to: "+prompt {
		t.Errorf("Unexpected azure response: %s", azure)
	}

	github := invoker.Invoke(context.Background(), model.PromptRequest{Prompt: prompt, Provider: ProviderGitHub})
	if github != "[GitHub Models] Response to: "+prompt {
		t.Errorf("Unexpected github response: %s", github)
	}

	for _, resp := range []string{azure, github} {
		if !strings.Contains(resp, prompt) {
			t.Errorf("Expected response to contain the prompt verbatim, got %s", resp)
		}
	}
}

func TestInvoke_AzureHello(t *testing.T) {
	invoker := NewInvoker(DefaultRegistry())

	resp := invoker.Invoke(context.Background(), model.PromptRequest{Prompt: "Hello", Provider: ProviderAzure})
	if resp != "[Azure OpenAI] Response to: Hello" {
		t.Errorf("Expected '[Azure OpenAI] Response to: Hello', got %q", resp)
	}
}

func TestInvoke_OpenAIMissingKey(t *testing.T) {
	t.Setenv(OpenAIAPIKeyEnv, "")
	logs := observeLogs(t)

	invoker := NewInvoker(DefaultRegistry())
	resp := invoker.Invoke(context.Background(), model.PromptRequest{Prompt: "Hello", Provider: ProviderOpenAI})

	expected := "Error: OPENAI_API_KEY not set in environment."
	if resp != expected {
		t.Errorf("Expected %q, got %q", expected, resp)
	}

	errorsLogged := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	if len(errorsLogged) != 1 {
		t.Fatalf("Expected 1 error log, got %d", len(errorsLogged))
	}
	if !strings.HasPrefix(errorsLogged[0].Message, "Error calling model: ") {
		t.Errorf("Unexpected error log: %s", errorsLogged[0].Message)
	}
}

func TestRegistry_OpenAIMissingKeyIsSentinel(t *testing.T) {
	t.Setenv(OpenAIAPIKeyEnv, "")

	_, err := DefaultRegistry().NewLLM(ProviderOpenAI)
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("Expected ErrMissingAPIKey, got %v", err)
	}
}

func TestInvoke_UnknownProvider(t *testing.T) {
	observeLogs(t)
	invoker := NewInvoker(DefaultRegistry())

	resp := invoker.Invoke(context.Background(), model.PromptRequest{Prompt: "Hello", Provider: "foo"})
	if resp != `Error: unknown provider "foo"` {
		t.Errorf("Unexpected response for unknown provider: %q", resp)
	}
}

func TestInvoke_FakeProvider(t *testing.T) {
	fake := &MockLLM{ReturnContent: "fake answer"}
	registry := NewRegistry()
	registry.Register(ProviderOpenAI, func() (LLM, error) { return fake, nil })

	resp := NewInvoker(registry).Invoke(context.Background(), model.PromptRequest{Prompt: "Hi there", Provider: ProviderOpenAI})
	if resp != "fake answer" {
		t.Errorf("Expected 'fake answer', got %q", resp)
	}
	if fake.Calls != 1 {
		t.Errorf("Expected 1 call, got %d", fake.Calls)
	}
	if fake.Received.UserPrompt != "Hi there" {
		t.Errorf("Expected user prompt 'Hi there', got %q", fake.Received.UserPrompt)
	}
}

func TestInvoke_ProviderErrorIsConverted(t *testing.T) {
	observeLogs(t)
	registry := NewRegistry()
	registry.Register(ProviderOpenAI, func() (LLM, error) {
		return &MockLLM{ReturnContent: "partial", ReturnError: errors.New("connection reset")}, nil
	})

	resp := NewInvoker(registry).Invoke(context.Background(), model.PromptRequest{Prompt: "Hi", Provider: ProviderOpenAI})
	if resp != "Error: connection reset" {
		t.Errorf("Expected 'Error: connection reset', got %q", resp)
	}
}

func TestInvoke_FactoryErrorIsConverted(t *testing.T) {
	observeLogs(t)
	registry := NewRegistry()
	registry.Register(ProviderGitHub, func() (LLM, error) {
		return nil, errors.New("not configured")
	})

	resp := NewInvoker(registry).Invoke(context.Background(), model.PromptRequest{Prompt: "Hi", Provider: ProviderGitHub})
	if resp != "Error: not configured" {
		t.Errorf("Expected 'Error: not configured', got %q", resp)
	}
}

func TestInvoke_PanicIsRecovered(t *testing.T) {
	observeLogs(t)
	registry := NewRegistry()
	registry.Register(ProviderAzure, func() (LLM, error) { return &MockLLM{Panic: true}, nil })

	resp := NewInvoker(registry).Invoke(context.Background(), model.PromptRequest{Prompt: "Hi", Provider: ProviderAzure})
	if !strings.HasPrefix(resp, "Error: ") || !strings.Contains(resp, "boom") {
		t.Errorf("Expected recovered panic as error text, got %q", resp)
	}
}
