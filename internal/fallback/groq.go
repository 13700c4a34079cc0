package fallback

import (
	"context"
	"errors"

	"github.com/anukol/sitechat/internal/config"
	"github.com/anukol/sitechat/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// groqCompleter runs chat completions against Groq's OpenAI-compatible API.
type groqCompleter struct {
	client openai.Client
	model  string
	logger *logger_i.Logger
}

func NewGroqCompleter(apikey string) Completer {
	logger := logger_i.NewLogger("llm_groq")
	if apikey == "" {
		logger.Error("No Groq API key configured")
		return nil
	}

	client := openai.NewClient(
		option.WithAPIKey(apikey),
		option.WithBaseURL(config.GroqBaseURL),
		option.WithMaxRetries(config.LLMMaxRetries),
	)
	logger.Info("Groq client created", "model", config.GroqModelName)

	return &groqCompleter{
		client: client,
		model:  config.GroqModelName,
		logger: logger,
	}
}

func (g *groqCompleter) Complete(ctx context.Context, system string, user string) (string, error) {
	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		g.logger.Error("Groq completion failed", "error", err)
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("no choices in completion")
	}
	return completion.Choices[0].Message.Content, nil
}
