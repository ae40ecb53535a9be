package model

// PromptRequest is a single prompt submission; it lives for one request only
type PromptRequest struct {
	Prompt   string
	Provider string
}

// ProviderOption is one entry of the provider select box
type ProviderOption struct {
	Value    string
	Label    string
	Selected bool
}

// FormView holds everything the prompt form renders
type FormView struct {
	Prompt    string
	Provider  string
	Response  string // empty means no response block
	Providers []ProviderOption
}
