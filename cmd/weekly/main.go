package main

import (
	"context"
	"log"
	"time"

	"responsagility-be/internal/config"
	"responsagility-be/internal/pkg/logger"
	"responsagility-be/internal/pkg/mailer"
	"responsagility-be/internal/repository/unitofwork"
	"responsagility-be/internal/service"
	"responsagility-be/pkg/database"
	"responsagility-be/pkg/llm/factory"
	"responsagility-be/pkg/lock"
	"responsagility-be/pkg/mirror"
	pktNats "responsagility-be/pkg/nats"

	"github.com/fatih/color"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const runLockKey = "responsagility:weekly-run-lock"

// Invoked by an external scheduler (cron). Exits non-zero when the run itself
// fails; individual client failures are reported but do not fail the run.
func main() {
	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	weeklyService, sysLogger := buildWeeklyService(gormDB, cfg)
	defer sysLogger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	// Overlap guard. When Redis is down the run proceeds without the lock;
	// the per-week unique index still prevents duplicate summaries.
	runLock := newRunLock(cfg.App.RedisURL)
	if runLock != nil {
		acquired, err := runLock.Acquire(ctx)
		if err != nil {
			log.Printf("[WARN] Run lock unavailable, proceeding without it: %v", err)
		} else if !acquired {
			color.Yellow("Another weekly run is already in progress, exiting.")
			return
		} else {
			defer runLock.Release(context.Background())
		}
	}

	started := time.Now()
	report, err := weeklyService.Run(ctx, time.Now())
	if err != nil {
		color.Red("Weekly run failed: %v", err)
		log.Fatalf("weekly run: %v", err)
	}

	color.Green("Weekly run complete for %s to %s in %s", report.WeekStart, report.WeekEnd, time.Since(started).Round(time.Millisecond))
	color.Green("  generated: %d  skipped: %d", report.Generated, report.Skipped)
	for clientId, clientErr := range report.Failures {
		color.Red("  failed: %s: %v", clientId, clientErr)
	}
}

// buildWeeklyService wires the batch's dependencies directly. The full HTTP
// container is not used here; the batch has no routes and must not depend on
// the identity provider being reachable.
func buildWeeklyService(gormDB *gorm.DB, cfg *config.Config) (service.IWeeklyService, logger.ILogger) {
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.Email,
		)
	} else {
		log.Printf("[WARN] SMTP not configured, coach emails disabled")
	}

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

	var eventBus service.EventPublisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		eventBus = natsPub
	}

	synthesizer := mirror.NewSynthesizer(llmProvider)
	return service.NewWeeklyService(uowFactory, synthesizer, emailService, eventBus, sysLogger), sysLogger
}

func newRunLock(redisURL string) *lock.RunLock {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: redisURL}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Redis unreachable, weekly run proceeds unlocked: %v", err)
		return nil
	}
	return lock.NewRunLock(rdb, runLockKey, time.Hour)
}
