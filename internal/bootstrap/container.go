package bootstrap

import (
	"log"
	"os"
	"path/filepath"

	"ai-support-chat-be/internal/config"
	"ai-support-chat-be/internal/controller"
	"ai-support-chat-be/internal/pkg/logger"
	"ai-support-chat-be/internal/repository/implementation"
	"ai-support-chat-be/internal/repository/memory"
	"ai-support-chat-be/internal/service"
	"ai-support-chat-be/pkg/analytics"
	"ai-support-chat-be/pkg/embedding"
	"ai-support-chat-be/pkg/llm/factory"
	"ai-support-chat-be/pkg/rag/generate"
	"ai-support-chat-be/pkg/rag/pipeline"
	"ai-support-chat-be/pkg/rag/refine"
	"ai-support-chat-be/pkg/rag/retrieve"
	"ai-support-chat-be/pkg/rag/search"
	"ai-support-chat-be/pkg/rag/validate"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController      controller.IChatController
	AnalyticsController controller.IAnalyticsController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

// newRAGLogger writes pipeline traces to a dedicated file so the main log
// stays readable.
func newRAGLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "rag_pipeline.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[RAG] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	ragLogger := newRAGLogger()

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.EmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	} else {
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Keys.OpenAI, "", cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.EmbeddingModel)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.OpenAI,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Repositories
	sessionRepo := memory.NewSessionRepository()
	chunkRepo := implementation.NewDocumentChunkRepository(db)

	// 5. Pipeline assembly
	searchOrchestrator := search.NewOrchestrator(embeddingProvider, chunkRepo, ragLogger)
	ragPipeline := pipeline.New(
		retrieve.NewRetriever(searchOrchestrator, nil, ragLogger),
		generate.NewGenerator(llmProvider, ragLogger),
		validate.NewValidator(),
		refine.NewRefiner(llmProvider, ragLogger),
		ragLogger,
	)

	// 6. Services
	collector := analytics.NewCollector()
	chatService := service.NewChatService(ragPipeline, sessionRepo, pubSub, cfg.Keys.AnalyticsTopic)
	consumerService := service.NewConsumerService(pubSub, cfg.Keys.AnalyticsTopic, collector)

	sysLogger.Info("bootstrap", "Container initialized", nil)

	// 7. Controllers
	return &Container{
		ChatController:      controller.NewChatController(chatService),
		AnalyticsController: controller.NewAnalyticsController(collector),

		ConsumerService: consumerService,
	}
}
