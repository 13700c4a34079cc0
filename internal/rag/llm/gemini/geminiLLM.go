package gemini

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/anukol/sitechat/internal/config"
	"github.com/anukol/sitechat/internal/domain/chatModel"
	"github.com/anukol/sitechat/internal/rag/llm"
	"github.com/anukol/sitechat/pkg/logger_i"
	"google.golang.org/genai"
)

type llmClient struct {
	client    *genai.Client
	modelName string
}

var logger *logger_i.Logger
var geminiClient *llmClient
var once sync.Once

func GetGeminiClient(ctx context.Context, modelName string, apikey string) llm.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_gemini")
		newGeminiClient(ctx, modelName, apikey)
	})

	if geminiClient == nil {
		return nil
	}
	return &llmClient{client: geminiClient.client, modelName: geminiClient.modelName}
}

func newGeminiClient(ctx context.Context, modelName string, apikey string) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		logger.Error("Error creating Gemini client:", "error", err)
	}
	if c != nil {
		geminiClient = &llmClient{client: c, modelName: modelName}
		logger.Info("Gemini client created", "model", modelName)
		go closeClient(ctx, geminiClient)
	}
}

func (c *llmClient) Generate(ctx context.Context, question string, matches []string, history []chatModel.ConversationTurn) (string, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	systemInstruction := &genai.Content{
		Parts: []*genai.Part{
			{Text: config.SystemInstruction},
		},
	}

	userPrompt := buildPrompt(question, matches, history)

	temperature := config.ModelTemperature
	result, err := c.client.Models.GenerateContent(
		ctx,
		c.modelName,
		genai.Text(userPrompt),
		&genai.GenerateContentConfig{
			SystemInstruction: systemInstruction,
			Temperature:       &temperature,
		},
	)
	if err != nil {
		log.Error("Gemini generation failed", "error", err)
		return "", err
	}
	return result.Text(), nil
}

// buildPrompt stuffs retrieved chunks and recent turns into one prompt. The
// chunks may overlap each other near boundaries; the model is expected to
// tolerate the repetition.
func buildPrompt(question string, matches []string, history []chatModel.ConversationTurn) string {
	var builder strings.Builder

	builder.WriteString("Website content:\n")
	builder.WriteString(strings.Join(matches, "\n---\n"))

	if len(history) > 0 {
		builder.WriteString("\n\nChat history:\n")
		for _, turn := range history {
			builder.WriteString(fmt.Sprintf("%s: %s\n", turn.Role, turn.Content))
		}
	}

	builder.WriteString("\nUser question: ")
	builder.WriteString(question)
	return builder.String()
}

func closeClient(ctx context.Context, llm *llmClient) {
	<-ctx.Done()
	logger.Info("Closing Gemini client")
	llm.client = nil
	llm.modelName = ""
}
