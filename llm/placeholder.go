package llm

import (
	"context"
	"fmt"
)

const (
	AzureLabel  = "Azure OpenAI"
	GitHubLabel = "GitHub Models"
)

// PlaceholderModel answers every prompt with a canned string, standing in for
// providers that have no live integration.
type PlaceholderModel struct {
	label string
}

func NewPlaceholder(label string) *PlaceholderModel {
	return &PlaceholderModel{label: label}
}

func (p *PlaceholderModel) Prompt(_ context.Context, req Request) Response {
	return Response{
		Content: fmt.Sprintf("[%s] Response to: %s", p.label, req.UserPrompt),
	}
}
