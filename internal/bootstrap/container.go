package bootstrap

import (
	"log"

	"responsagility-be/internal/config"
	"responsagility-be/internal/controller"
	"responsagility-be/internal/pkg/logger"
	"responsagility-be/internal/pkg/serverutils"
	"responsagility-be/internal/repository/unitofwork"
	"responsagility-be/internal/service"
	"responsagility-be/pkg/llm/factory"
	"responsagility-be/pkg/mirror"

	pktNats "responsagility-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	PracticeController controller.IPracticeController
	ClientController   controller.IClientController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. LLM + synthesizer
	llmBaseURL := cfg.Ai.OllamaBaseURL
	if cfg.Ai.LLMProvider == "openai" {
		llmBaseURL = cfg.Ai.OpenAIBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL,
		cfg.Ai.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	synthesizer := mirror.NewSynthesizer(llmProvider)

	// 3.5 Infrastructure
	// NATS is best-effort; the request path runs without it.
	var eventBus service.EventPublisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		eventBus = natsPub
	}

	// 4. Services
	publisherService := service.NewPublisherService(cfg.App.MirrorReadyTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.MirrorReadyTopic,
		uowFactory,
		eventBus,
		sysLogger,
	)

	practiceService := service.NewPracticeService(uowFactory, synthesizer, publisherService)
	clientService := service.NewClientService(uowFactory)

	// 5. Auth
	verifier, err := serverutils.NewAuthVerifier(cfg.Auth.IssuerURL, cfg.Auth.Audience)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize auth verifier: %v", err)
	}

	return &Container{
		PracticeController: controller.NewPracticeController(practiceService, verifier),
		ClientController:   controller.NewClientController(clientService, verifier),

		ConsumerService: consumerService,
		Logger:          sysLogger,
	}
}
