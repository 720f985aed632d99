package service

import (
	"context"
	"fmt"
	"time"

	"responsagility-be/internal/entity"
	"responsagility-be/internal/pkg/logger"
	"responsagility-be/internal/pkg/mailer"
	"responsagility-be/internal/repository/specification"
	"responsagility-be/internal/repository/unitofwork"
	"responsagility-be/pkg/events"
	"responsagility-be/pkg/mirror"

	"github.com/google/uuid"
)

// WeeklySynthesizer is the slice of mirror.Synthesizer the batch needs.
type WeeklySynthesizer interface {
	SynthesizeWeekly(ctx context.Context, reflections []mirror.WeeklyReflection) (string, error)
}

// WeeklyRunReport summarizes one batch run.
type WeeklyRunReport struct {
	WeekStart string
	WeekEnd   string
	Generated int
	Skipped   int
	Failures  map[uuid.UUID]error
}

type IWeeklyService interface {
	Run(ctx context.Context, now time.Time) (*WeeklyRunReport, error)
}

type weeklyService struct {
	uowFactory  unitofwork.RepositoryFactory
	synthesizer WeeklySynthesizer
	emailSvc    mailer.IEmailService
	eventBus    EventPublisher
	log         logger.ILogger
}

func NewWeeklyService(
	uowFactory unitofwork.RepositoryFactory,
	synthesizer WeeklySynthesizer,
	emailSvc mailer.IEmailService,
	eventBus EventPublisher,
	log logger.ILogger,
) IWeeklyService {
	return &weeklyService{
		uowFactory:  uowFactory,
		synthesizer: synthesizer,
		emailSvc:    emailSvc,
		eventBus:    eventBus,
		log:         log,
	}
}

// WeekRange returns the Monday-start week containing now, as inclusive
// YYYY-MM-DD boundaries.
func WeekRange(now time.Time) (weekStart, weekEnd string) {
	day := int(now.Weekday())
	if day == 0 {
		day = 7 // Sunday belongs to the week that started the previous Monday
	}
	start := now.AddDate(0, 0, -(day - 1))
	end := start.AddDate(0, 0, 6)
	return start.Format("2006-01-02"), end.Format("2006-01-02")
}

// Run processes every active client once for the current week. One client's
// failure never aborts the others; failures are collected and reported at
// the end.
func (s *weeklyService) Run(ctx context.Context, now time.Time) (*WeeklyRunReport, error) {
	weekStart, weekEnd := WeekRange(now)

	report := &WeeklyRunReport{
		WeekStart: weekStart,
		WeekEnd:   weekEnd,
		Failures:  make(map[uuid.UUID]error),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	clients, err := uow.ClientRepository().FindAll(ctx, specification.ActiveClients{})
	if err != nil {
		return nil, fmt.Errorf("list active clients: %w", err)
	}

	for _, client := range clients {
		generated, err := s.processClient(ctx, client, weekStart, weekEnd)
		if err != nil {
			report.Failures[client.Id] = err
			s.log.Error("weekly", "Client processing failed", map[string]interface{}{
				"client_id": client.Id.String(),
				"error":     err.Error(),
			})
			continue
		}
		if generated {
			report.Generated++
		} else {
			report.Skipped++
		}
	}

	s.log.Info("weekly", "Weekly run finished", map[string]interface{}{
		"week_start": weekStart,
		"week_end":   weekEnd,
		"generated":  report.Generated,
		"skipped":    report.Skipped,
		"failed":     len(report.Failures),
	})

	return report, nil
}

func (s *weeklyService) processClient(ctx context.Context, client *entity.Client, weekStart, weekEnd string) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Idempotent re-run guard: one summary per (client, week).
	existing, err := uow.WeeklySummaryRepository().FindOne(ctx,
		specification.ClientOwnedBy{ClientID: client.Id},
		specification.ByWeek{WeekStart: weekStart, WeekEnd: weekEnd},
	)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	reflections, err := uow.ReflectionRepository().FindAll(ctx,
		specification.ClientOwnedBy{ClientID: client.Id},
		specification.ReflectionDateBetween{From: weekStart, To: weekEnd},
		specification.OrderBy{Field: "reflection_date"},
	)
	if err != nil {
		return false, err
	}
	if len(reflections) == 0 {
		return false, nil
	}

	weekInput := make([]mirror.WeeklyReflection, len(reflections))
	dates := make([]string, len(reflections))
	for i, r := range reflections {
		weekInput[i] = mirror.WeeklyReflection{
			Date:    r.ReflectionDate,
			React:   r.React,
			Respond: r.Respond,
			Notice:  r.Notice,
			Learn:   r.Learn,
		}
		dates[i] = r.ReflectionDate
	}

	summaryText, err := s.synthesizer.SynthesizeWeekly(ctx, weekInput)
	if err != nil {
		return false, fmt.Errorf("synthesize weekly summary: %w", err)
	}

	summary := entity.WeeklySummary{
		Id:              uuid.New(),
		ClientId:        client.Id,
		WeekStart:       weekStart,
		WeekEnd:         weekEnd,
		SummaryText:     summaryText,
		ReflectionCount: len(reflections),
		IncludedDates:   dates,
		CreatedAt:       time.Now(),
	}
	if err := uow.WeeklySummaryRepository().Create(ctx, &summary); err != nil {
		return false, err
	}

	s.notifyCoach(client, weekStart, weekEnd, summaryText)

	if s.eventBus != nil {
		event := events.NewWeeklySummaryCreatedEvent(client.Id.String(), weekStart, weekEnd, len(reflections))
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.log.Warn("weekly", "Failed to publish weekly.summary.created", map[string]interface{}{
				"client_id": client.Id.String(),
				"error":     err.Error(),
			})
		}
	}

	return true, nil
}

// notifyCoach emails the summary to the client's coach when one is on file.
// Delivery problems are logged, never propagated; the summary row is the
// source of truth.
func (s *weeklyService) notifyCoach(client *entity.Client, weekStart, weekEnd, summaryText string) {
	if s.emailSvc == nil || client.CoachEmail == nil || *client.CoachEmail == "" {
		return
	}

	coachName := ""
	if client.CoachName != nil {
		coachName = *client.CoachName
	}

	if err := s.emailSvc.SendWeeklySummary(*client.CoachEmail, coachName, weekStart, weekEnd, summaryText); err != nil {
		s.log.Warn("weekly", "Failed to send coach email", map[string]interface{}{
			"client_id": client.Id.String(),
			"error":     err.Error(),
		})
	}
}
