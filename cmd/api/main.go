package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/akolanti/CorpusAPI/internal/config"
	"github.com/akolanti/CorpusAPI/internal/data/store"
	jobmodel "github.com/akolanti/CorpusAPI/internal/domain/jobModel"
	"github.com/akolanti/CorpusAPI/internal/handlers"
	"github.com/akolanti/CorpusAPI/internal/job"
	"github.com/akolanti/CorpusAPI/internal/loader"
	"github.com/akolanti/CorpusAPI/internal/rag"
	"github.com/akolanti/CorpusAPI/internal/rag/embedding/googleEmbedding"
	"github.com/akolanti/CorpusAPI/internal/rag/llm/gemini"
	"github.com/akolanti/CorpusAPI/internal/rag/vectorDB/qdrantDB"
	"github.com/akolanti/CorpusAPI/internal/server"
	"github.com/akolanti/CorpusAPI/internal/worker"
	"github.com/akolanti/CorpusAPI/pkg/logger_i"
	"github.com/joho/godotenv"
)

var (
	listenAddr        string
	settingsPath      string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//secrets come from the environment, .env is a dev convenience
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found")
	}

	//config
	flag.StringVar(&listenAddr, "listen-addr", "", "server listen address")
	flag.StringVar(&settingsPath, "config", "config.yaml", "path to the yaml settings file")
	flag.Parse()

	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		logger.Error("Could not load settings file", "path", settingsPath, "error", err)
		return
	}
	if listenAddr == "" {
		listenAddr = settings.ListenAddr
	}

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//init job service and stores
	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
		JobStore:          store.GetRedisJobStore(serviceContext, settings.Redis.Addr, settings.Redis.Password),
		DocumentStore:     store.GetRedisDocumentStore(serviceContext, settings.Redis.Addr, settings.Redis.Password),
	}
	logger.Info("Starting job service")

	if serviceConfig.JobStore == nil || serviceConfig.DocumentStore == nil {
		logger.Error("Redis stores are offline")
		serviceConfig.JobStore = store.InitInMemoryJobStore()
		serviceConfig.DocumentStore = store.InitInMemoryDocumentStore()
	}
	service := job.InitJobService(serviceConfig)

	apiKey := os.Getenv("GEMINI_API_KEY")

	vectorDB := qdrantDB.GetQuadrantClient(serviceContext, settings.Qdrant.Host, settings.Qdrant.Port, settings.Qdrant.UseTLS)
	embeddingService := googleEmbedding.GetGoogleEmbeddingClient(serviceContext, config.GoogleEmbeddingModel, apiKey)
	llmProvider := gemini.GetGeminiClient(serviceContext, config.GeminiModelName, apiKey)

	if vectorDB == nil || embeddingService == nil || llmProvider == nil {
		logger.Error("One or more external services failed to initialize. Shutting down.")
		logger.Debug("Available services : ", "VectorDB", vectorDB != nil, "EmbeddingService", embeddingService != nil, "LLMProvider", llmProvider != nil)
		return
	}

	corpusLoader := loader.NewLoader(settings.Loader.SupportedFormats...)
	ragService := rag.NewService(vectorDB, llmProvider, embeddingService, serviceConfig.DocumentStore, corpusLoader,
		settings.Splitter.ChunkSize, settings.Splitter.Overlap)

	handlers.InitJobHandler(service)

	//init worker pool
	worker.InitServices(service, ragService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
