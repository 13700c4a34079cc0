package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/anukol/sitechat/internal/chat"
	"github.com/anukol/sitechat/internal/config"
	"github.com/anukol/sitechat/internal/crawler"
	"github.com/anukol/sitechat/internal/data/store"
	"github.com/anukol/sitechat/internal/domain/chatModel"
	"github.com/anukol/sitechat/internal/escalation"
	"github.com/anukol/sitechat/internal/fallback"
	"github.com/anukol/sitechat/internal/mcpserver"
	"github.com/anukol/sitechat/internal/rag/answer"
	"github.com/anukol/sitechat/internal/rag/embedding/googleEmbedding"
	"github.com/anukol/sitechat/internal/rag/index"
	"github.com/anukol/sitechat/internal/rag/llm/gemini"
	"github.com/anukol/sitechat/internal/rag/retriever"
	"github.com/anukol/sitechat/internal/rag/vectorDB/qdrantDB"
	"github.com/anukol/sitechat/internal/session"
	"github.com/anukol/sitechat/pkg/logger_i"
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("mcp-main")

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	var history chatModel.HistoryStore
	if redisHistory := store.GetRedisHistoryStore(serviceContext); redisHistory != nil {
		history = redisHistory
	} else {
		logger.Error("Redis store is offline, falling back to in-memory history")
		history = store.InitInMemoryHistoryStore()
	}

	vectorDB := qdrantDB.GetQdrantClient(serviceContext)
	embeddingService := googleEmbedding.GetGoogleEmbeddingClient(serviceContext, config.GoogleEmbeddingModel, config.GoogleAPIKey())
	llmProvider := gemini.GetGeminiClient(serviceContext, config.GeminiModelName, config.GoogleAPIKey())

	if vectorDB == nil || embeddingService == nil || llmProvider == nil {
		logger.Error("One or more external services failed to initialize. Shutting down.")
		return
	}

	siteCrawler, err := crawler.New(config.AllowedRootURL)
	if err != nil {
		logger.Error("Invalid root URL", "error", err)
		return
	}

	knowledgeIndex := index.New(siteCrawler, embeddingService, vectorDB)
	controller := escalation.NewController(
		retriever.New(knowledgeIndex),
		answer.NewGenerator(llmProvider),
		fallback.NewPipeline(fallback.NewGroqCompleter(config.GroqAPIKey())),
		history,
	).WithCache(knowledgeIndex)

	chatService := chat.NewService(session.NewManager(history), controller, knowledgeIndex, siteCrawler)

	runCtx, stop := signal.NotifyContext(serviceContext, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := mcpserver.NewServer(chatService).Run(runCtx); err != nil {
		logger.Error("MCP server stopped", "error", err)
		os.Exit(1)
	}
}
