package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"responsagility-be/internal/dto"
	"responsagility-be/internal/entity"
	"responsagility-be/internal/pkg/serverutils"
	"responsagility-be/internal/repository/specification"
	"responsagility-be/internal/repository/unitofwork"
	"responsagility-be/pkg/mirror"
	"responsagility-be/pkg/reflection"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

// DailySynthesizer is the slice of mirror.Synthesizer the practice flow needs.
type DailySynthesizer interface {
	SynthesizeDaily(ctx context.Context, input mirror.DailyInput) (string, error)
}

type IPracticeService interface {
	SubmitAnswer(ctx context.Context, clientId uuid.UUID, email string, req *dto.PracticeAnswerRequest) (*dto.PracticeAnswerResponse, error)
	GetReflection(ctx context.Context, clientId uuid.UUID, date string) (*dto.ReflectionDetailResponse, error)
	ListReflectionDates(ctx context.Context, clientId uuid.UUID) (*dto.ReflectionDatesResponse, error)
}

type practiceService struct {
	uowFactory       unitofwork.RepositoryFactory
	synthesizer      DailySynthesizer
	publisherService IPublisherService
	datesCache       *cache.Cache
}

func NewPracticeService(
	uowFactory unitofwork.RepositoryFactory,
	synthesizer DailySynthesizer,
	publisherService IPublisherService,
) IPracticeService {
	return &practiceService{
		uowFactory:       uowFactory,
		synthesizer:      synthesizer,
		publisherService: publisherService,
		datesCache:       cache.New(5*time.Minute, 10*time.Minute),
	}
}

// SubmitAnswer drives one step of the daily flow. The persistence sequence
// (answer, then step, then mirror) is intentionally not one transaction; the
// completeness re-check below compensates for partial failures on earlier
// requests.
func (s *practiceService) SubmitAnswer(ctx context.Context, clientId uuid.UUID, email string, req *dto.PracticeAnswerRequest) (*dto.PracticeAnswerResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := s.ensureClient(ctx, uow, clientId, email); err != nil {
		return nil, err
	}

	record, err := s.loadOrCreateReflection(ctx, uow, clientId, req.Date)
	if err != nil {
		return nil, err
	}

	// Already completed: return the stored mirror without re-synthesis.
	if record.Step == reflection.StepReview && record.DailyMirror != nil {
		return &dto.PracticeAnswerResponse{
			Type: dto.AnswerTypeCompleted,
			Text: *record.DailyMirror,
		}, nil
	}

	currentStep := record.Step
	flowResult := reflection.Advance(reflection.State{
		ClientID: clientId.String(),
		Date:     req.Date,
		Step:     currentStep,
	}, req.UserInput)
	nextStep := flowResult.NextState.Step

	// The answer belongs to the question just answered, not the next one.
	if nextStep != currentStep {
		if err := uow.ReflectionRepository().UpdateAnswer(ctx, record.Id, currentStep, req.UserInput); err != nil {
			return nil, err
		}
		if err := uow.ReflectionRepository().UpdateStep(ctx, record.Id, nextStep); err != nil {
			return nil, err
		}
	}

	if nextStep == reflection.StepReview {
		return s.completeReflection(ctx, uow, clientId, record.Id, req.Date)
	}

	return &dto.PracticeAnswerResponse{
		Type: dto.AnswerTypeQuestion,
		Text: flowResult.NextPrompt,
	}, nil
}

// completeReflection re-fetches the record so the just-persisted answer is
// included, verifies all four answers, and either synthesizes the mirror or
// routes the client back to the earliest missing step.
func (s *practiceService) completeReflection(ctx context.Context, uow unitofwork.UnitOfWork, clientId, recordId uuid.UUID, date string) (*dto.PracticeAnswerResponse, error) {
	record, err := uow.ReflectionRepository().FindOne(ctx, specification.ByID{ID: recordId})
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, errors.New("reflection record vanished during completion")
	}

	if missing := record.FirstMissingStep(); missing != reflection.StepReview {
		// A partial failure on an earlier request left a gap. Route the
		// client back into the flow instead of synthesizing from
		// incomplete answers.
		if err := uow.ReflectionRepository().UpdateStep(ctx, recordId, missing); err != nil {
			return nil, err
		}
		return &dto.PracticeAnswerResponse{
			Type: dto.AnswerTypeQuestion,
			Text: reflection.Prompts[missing],
		}, nil
	}

	mirrorText, err := s.synthesizer.SynthesizeDaily(ctx, mirror.DailyInput{
		React:   record.React,
		Respond: record.Respond,
		Notice:  record.Notice,
		Learn:   record.Learn,
	})
	if err != nil {
		return nil, err
	}

	if err := uow.ReflectionRepository().SetMirror(ctx, recordId, mirrorText); err != nil {
		return nil, err
	}

	s.publishMirrorReady(ctx, clientId, date)

	return &dto.PracticeAnswerResponse{
		Type: dto.AnswerTypeMirror,
		Text: mirrorText,
	}, nil
}

func (s *practiceService) publishMirrorReady(ctx context.Context, clientId uuid.UUID, date string) {
	if s.publisherService == nil {
		return
	}
	msg := dto.PublishMirrorReadyMessage{
		ClientId: clientId,
		Date:     date,
	}
	msgJson, _ := json.Marshal(msg)
	// Best effort: the mirror is already persisted, a lost event only delays
	// the client-activity stamp.
	_ = s.publisherService.Publish(ctx, msgJson)
}

// ensureClient provisions the clients row for the token subject on first
// contact. A concurrent create is treated as already-provisioned.
func (s *practiceService) ensureClient(ctx context.Context, uow unitofwork.UnitOfWork, clientId uuid.UUID, email string) error {
	existing, err := uow.ClientRepository().FindOne(ctx, specification.ByID{ID: clientId})
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	client := entity.Client{
		Id:        clientId,
		Email:     email,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if err := uow.ClientRepository().Create(ctx, &client); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return err
	}
	return nil
}

// loadOrCreateReflection fetches the day's record, creating one at step
// react when missing. A duplicate-key error means another request created it
// first; fetch-and-continue rather than fail.
func (s *practiceService) loadOrCreateReflection(ctx context.Context, uow unitofwork.UnitOfWork, clientId uuid.UUID, date string) (*entity.DailyReflection, error) {
	record, err := uow.ReflectionRepository().FindOne(ctx,
		specification.ClientOwnedBy{ClientID: clientId},
		specification.ByReflectionDate{Date: date},
	)
	if err != nil {
		return nil, err
	}
	if record != nil {
		return record, nil
	}

	record = &entity.DailyReflection{
		Id:             uuid.New(),
		ClientId:       clientId,
		ReflectionDate: date,
		Step:           reflection.StepReact,
		CreatedAt:      time.Now(),
	}
	if err := uow.ReflectionRepository().Create(ctx, record); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return uow.ReflectionRepository().FindOne(ctx,
				specification.ClientOwnedBy{ClientID: clientId},
				specification.ByReflectionDate{Date: date},
			)
		}
		return nil, err
	}

	// A new date exists for this client now.
	s.datesCache.Delete(clientId.String())

	return record, nil
}

func (s *practiceService) GetReflection(ctx context.Context, clientId uuid.UUID, date string) (*dto.ReflectionDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	record, err := uow.ReflectionRepository().FindOne(ctx,
		specification.ClientOwnedBy{ClientID: clientId},
		specification.ByReflectionDate{Date: date},
	)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, serverutils.NewNotFoundError("Reflection not found")
	}

	return &dto.ReflectionDetailResponse{
		Date:    record.ReflectionDate,
		React:   record.React,
		Respond: record.Respond,
		Notice:  record.Notice,
		Learn:   record.Learn,
		Mirror:  record.DailyMirror,
	}, nil
}

func (s *practiceService) ListReflectionDates(ctx context.Context, clientId uuid.UUID) (*dto.ReflectionDatesResponse, error) {
	cacheKey := clientId.String()
	if cached, found := s.datesCache.Get(cacheKey); found {
		return cached.(*dto.ReflectionDatesResponse), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	records, err := uow.ReflectionRepository().FindAll(ctx,
		specification.ClientOwnedBy{ClientID: clientId},
		specification.OrderBy{Field: "reflection_date"},
	)
	if err != nil {
		return nil, err
	}

	dates := make([]string, len(records))
	for i, r := range records {
		dates[i] = r.ReflectionDate
	}

	res := &dto.ReflectionDatesResponse{Dates: dates}
	s.datesCache.Set(cacheKey, res, cache.DefaultExpiration)
	return res, nil
}
