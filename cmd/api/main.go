package main

import (
	"context"
	"flag"
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
	"github.com/anukol/sitechat/internal/handlers"
	"github.com/anukol/sitechat/internal/rag/answer"
	"github.com/anukol/sitechat/internal/rag/embedding/googleEmbedding"
	"github.com/anukol/sitechat/internal/rag/index"
	"github.com/anukol/sitechat/internal/rag/llm/gemini"
	"github.com/anukol/sitechat/internal/rag/retriever"
	"github.com/anukol/sitechat/internal/rag/vectorDB/qdrantDB"
	"github.com/anukol/sitechat/internal/server"
	"github.com/anukol/sitechat/internal/session"
	"github.com/anukol/sitechat/pkg/logger_i"
)

var listenAddr string

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//conversation history, in-memory when redis is offline
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
		logger.Debug("Available services : ", "VectorDB", vectorDB != nil, "EmbeddingService", embeddingService != nil, "LLMProvider", llmProvider != nil)
		return
	}

	siteCrawler, err := crawler.New(config.AllowedRootURL)
	if err != nil {
		logger.Error("Invalid root URL", "error", err)
		return
	}

	knowledgeIndex := index.New(siteCrawler, embeddingService, vectorDB)
	answerGenerator := answer.NewGenerator(llmProvider)
	researchPipeline := fallback.NewPipeline(fallback.NewGroqCompleter(config.GroqAPIKey()))

	controller := escalation.NewController(
		retriever.New(knowledgeIndex),
		answerGenerator,
		researchPipeline,
		history,
	).WithCache(knowledgeIndex)

	sessions := session.NewManager(history)
	chatService := chat.NewService(sessions, controller, knowledgeIndex, siteCrawler)

	handlers.InitChatHandlers(chatService)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
