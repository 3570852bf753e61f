package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fin-analyst/vars"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

var ErrRequest = errors.New("chat completion request failed")

// RequestError wraps any failure of the completion call: transport, auth,
// service-side or an unusable response.
type RequestError struct {
	Model string
	Err   error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("Error calling Groq API (%s): %v", e.Model, e.Err)
}

func (e *RequestError) Unwrap() []error {
	return []error{ErrRequest, e.Err}
}

// NewGroqChatModel Groq 提供 OpenAI 兼容接口，直接复用 openai 组件
func NewGroqChatModel(ctx context.Context, cfg vars.LLMConfig) (model.BaseChatModel, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, vars.ErrMissingCredential
	}
	modelName := cfg.Model
	if modelName == "" {
		modelName = vars.MIXTRAL
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = vars.GroqBaseURL
	}

	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  cfg.APIKey,
		BaseURL: baseURL,
		Model:   modelName,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("create groq chat model failed: %w", err)
	}
	return chatModel, nil
}

// Complete 单次同步调用，不重试、不流式
func Complete(ctx context.Context, chatModel model.BaseChatModel, modelName string, messages []*schema.Message) (string, error) {
	resp, err := chatModel.Generate(ctx, messages)
	if err != nil {
		return "", &RequestError{Model: modelName, Err: err}
	}
	if resp == nil || strings.TrimSpace(resp.Content) == "" {
		return "", &RequestError{Model: modelName, Err: errors.New("empty response from model")}
	}
	return resp.Content, nil
}
