package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	NoAuthBypass = true //flip for deployments with a real token
	AuthToken    = ""

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//embeddings
	EmbeddingOutputDimensionality int32 = 1536
	VectorCollectionName                = "corpus-chunks"
	GeminiModelName                     = "gemini-2.5-flash-lite-preview-09-2025"
	GoogleEmbeddingModel                = "gemini-embedding-001"

	ModelTemperature float32 = 0.7
	ModelContext             = "You are a document assistant. Answer only from the supplied passages and cite the source path of every passage you use. If the passages do not contain the answer, say so."

	//splitter
	MaxChunkSize = 1000 //characters
	ChunkOverlap = 150

	//loader
	FileHashBufferSize = 32 * 1024
	PageExtractTimeout = 10 * time.Second
	MaxUploadSize      = 32 << 20 //32mb

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 10 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	//vectorDB
	CacheSimilarityCutoff  = 0.97
	QdrantHost             = ""
	QdrantGrpcPort         = 6334
	QdrantUseTLS           = false
	QdrantPoolSize         = 1
	QdrantKeepAliveTimeout = 30 * time.Second

	//redis
	redisHost     = "127.0.0.1"
	redisPort     = "6379"
	RedisAddr     = redisHost + ":" + redisPort
	RedisPassword = ""

	//redis has 16 DB we can use
	RedisJobStore      = 0
	RedisDocumentStore = 1

	//redis timeouts
	RedisJobStoreTTL = 24 * time.Hour
	//ingested document records outlive jobs, dedup needs them
	RedisDocumentStoreTTL = 0
)

// DefaultSupportedFormats is the extension set the loader accepts unless a
// deployment overrides it. Lowercase, no leading dot.
var DefaultSupportedFormats = []string{"pdf", "txt", "md", "markdown"}
