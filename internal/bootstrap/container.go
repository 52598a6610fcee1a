package bootstrap

import (
	"log"

	"ai-producer-be/internal/config"
	"ai-producer-be/internal/controller"
	"ai-producer-be/internal/pkg/logger"
	"ai-producer-be/internal/repository/unitofwork"
	"ai-producer-be/internal/service"
	"ai-producer-be/pkg/embedding"
	"ai-producer-be/pkg/llm/factory"

	pktNats "ai-producer-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController      controller.IAuthController
	ChatController      controller.IChatController
	KnowledgeController controller.IKnowledgeController
	StrategyController  controller.IStrategyController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "openai" {
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Ai.EmbeddingBaseURL, cfg.Ai.EmbeddingAPIKey, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.EmbeddingModel)
	} else {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.EmbeddingBaseURL, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.LLMBaseURL,
		cfg.Ai.LLMAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// 5. Services
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.IngestTopicName,
		uowFactory,
		embeddingProvider,
		sysLogger,
	)

	authService := service.NewAuthService(uowFactory, cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	chatService := service.NewChatService(
		uowFactory,
		llmProvider,
		embeddingProvider,
		cfg.Rag,
		natsPub,
		sysLogger,
	)
	knowledgeService := service.NewKnowledgeService(
		pubSub,
		cfg.App.IngestTopicName,
		uowFactory,
		cfg.Rag.ChunkSize,
		cfg.Rag.ChunkOverlap,
		natsPub,
		sysLogger,
	)
	strategyService := service.NewStrategyService(uowFactory, natsPub, sysLogger)

	// 6. Controllers
	return &Container{
		AuthController:      controller.NewAuthController(authService),
		ChatController:      controller.NewChatController(chatService),
		KnowledgeController: controller.NewKnowledgeController(knowledgeService),
		StrategyController:  controller.NewStrategyController(strategyService),

		ConsumerService: consumerService,
	}
}
