package config

import (
	"log/slog"
	"os"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//the one site this service answers about - everything else is out of scope
	AllowedRootURL = "https://www.travellofoodie.com/"

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 150 * time.Second //fallback pipeline responses can be slow
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//crawling
	CrawlConcurrency = 4
	PageFetchTimeout = 15 * time.Second

	//chunking
	ChunkSize    = 1000 //characters
	ChunkOverlap = 100

	//retrieval
	RetrievalK = 5

	//vectorDB
	KnowledgeCollection    = "site-knowledge"
	AnswerCacheCollection  = "answer-cache"
	CacheSimilarityCutoff  = 0.97
	QdrantHost             = "localhost"
	QdrantGrpcPort         = 6334
	QdrantUseTLS           = false
	QdrantPoolSize         = 1
	QdrantKeepAliveTimeout = 30 * time.Second

	EmbeddingOutputDimensionality int32 = 1536

	//llm - answering
	GeminiModelName              = "gemini-2.5-flash-lite-preview-09-2025"
	GoogleEmbeddingModel         = "gemini-embedding-001"
	ModelTemperature     float32 = 0.0
	GenerationTimeout            = 30 * time.Second

	//llm - fallback research pipeline (Groq's OpenAI-compatible endpoint)
	GroqBaseURL     = "https://api.groq.com/openai/v1"
	GroqModelName   = "llama-3.1-8b-instant"
	FallbackTimeout = 2 * time.Minute
	LLMMaxRetries   = 2

	RefusalPhrase = "I couldn't find the information to this question on the website"

	SystemInstruction = "You are an intelligent assistant with access to the content of one specific website. " +
		"Greet customers politely and answer their questions strictly based on the supplied website content. " +
		"Do not use any outside knowledge at all. If the answer is not in the supplied content, reply exactly: '" +
		RefusalPhrase + "'"

	//conversation
	HistoryWindow = 10 //turns carried into generation

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	RedisPassword     = ""
	RedisHistoryStore = 0

	RedisHistoryTTL = 24 * time.Hour
)

// deployment-varying values
func GoogleAPIKey() string { return os.Getenv("GOOGLE_API_KEY") }
func GroqAPIKey() string   { return os.Getenv("GROQ_API_KEY") }
