package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bitrise-io/genai-prompt-form/common"
	"github.com/bitrise-io/genai-prompt-form/logger"
	"github.com/sashabaranov/go-openai"
)

const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAIModel implements the LLM interface using OpenAI's API
type OpenAIModel struct {
	client     *openai.Client
	modelName  string
	apiTimeout int // in seconds, 0 disables the deadline
}

// NewOpenAI creates a new OpenAI client
func NewOpenAI(apiKey string, opts ...Option) (*OpenAIModel, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	model := &OpenAIModel{
		modelName: DefaultOpenAIModel,
	}
	retryConfig := common.DefaultRetryConfig()
	baseURL := ""

	// Apply options
	for _, opt := range opts {
		switch opt.Type {
		case ModelNameOption:
			if modelName, ok := opt.Value.(string); ok && modelName != "" {
				model.modelName = modelName
			}
		case APITimeoutOption:
			if timeout, ok := opt.Value.(int); ok {
				model.apiTimeout = timeout
			}
		case BaseURLOption:
			if url, ok := opt.Value.(string); ok {
				baseURL = url
			}
		case RetryOption:
			if rc, ok := opt.Value.(common.RetryConfig); ok {
				retryConfig = rc
			}
		}
	}

	retryClient := common.NewRetryableClient(retryConfig)

	config := openai.DefaultConfig(apiKey)
	config.HTTPClient = retryClient.StandardClient()
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	model.client = openai.NewClientWithConfig(config)

	logger.Debugf("OpenAI client initialized with model: %s, timeout: %d seconds",
		model.modelName, model.apiTimeout)

	return model, nil
}

// Prompt sends the user prompt to OpenAI as a single user message and returns the first choice
func (o *OpenAIModel) Prompt(ctx context.Context, req Request) Response {
	if o.apiTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(o.apiTimeout)*time.Second)
		defer cancel()
	}

	chatReq := openai.ChatCompletionRequest{
		Model: o.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.UserPrompt,
			},
		},
	}

	logger.Infof("Sending request to OpenAI with model %s", o.modelName)

	resp, err := o.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return Response{
			Error: fmt.Errorf("failed to create chat completion: %w", err),
		}
	}

	if len(resp.Choices) == 0 {
		return Response{
			Error: errors.New("OpenAI response contained no choices"),
		}
	}

	return Response{
		Content: resp.Choices[0].Message.Content,
	}
}
