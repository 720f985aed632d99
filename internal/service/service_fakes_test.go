package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"responsagility-be/internal/entity"
	"responsagility-be/internal/repository/contract"
	"responsagility-be/internal/repository/specification"
	"responsagility-be/internal/repository/unitofwork"
	"responsagility-be/pkg/events"
	"responsagility-be/pkg/mirror"
	"responsagility-be/pkg/reflection"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory fakes for the repository layer. Specifications are matched by
// concrete type instead of running SQL, which is enough for the filters the
// services actually use.

type fakeStore struct {
	mu          sync.Mutex
	clients     map[uuid.UUID]*entity.Client
	reflections map[uuid.UUID]*entity.DailyReflection
	summaries   map[uuid.UUID]*entity.WeeklySummary
}

// getClient reads a client under the store lock; for tests that poll state
// written by a consumer goroutine.
func (s *fakeStore) getClient(id uuid.UUID) *entity.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, found := s.clients[id]
	if !found {
		return nil
	}
	cp := *c
	return &cp
}

func (s *fakeStore) clientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		clients:     make(map[uuid.UUID]*entity.Client),
		reflections: make(map[uuid.UUID]*entity.DailyReflection),
		summaries:   make(map[uuid.UUID]*entity.WeeklySummary),
	}
}

type fakeFactory struct {
	store *fakeStore

	// Error injection knobs.
	reflectionCreateErr error
	updateAnswerErr     error
	clientFindErr       map[uuid.UUID]error
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{factory: f}
}

type fakeUow struct {
	factory *fakeFactory
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) ClientRepository() contract.ClientRepository {
	return &fakeClientRepo{factory: u.factory}
}

func (u *fakeUow) ReflectionRepository() contract.ReflectionRepository {
	return &fakeReflectionRepo{factory: u.factory}
}

func (u *fakeUow) WeeklySummaryRepository() contract.WeeklySummaryRepository {
	return &fakeSummaryRepo{factory: u.factory}
}

type fakeClientRepo struct {
	factory *fakeFactory
}

func (r *fakeClientRepo) Create(ctx context.Context, client *entity.Client) error {
	r.factory.store.mu.Lock()
	defer r.factory.store.mu.Unlock()
	if _, exists := r.factory.store.clients[client.Id]; exists {
		return gorm.ErrDuplicatedKey
	}
	cp := *client
	r.factory.store.clients[client.Id] = &cp
	return nil
}

func (r *fakeClientRepo) Update(ctx context.Context, client *entity.Client) error {
	r.factory.store.mu.Lock()
	defer r.factory.store.mu.Unlock()
	cp := *client
	r.factory.store.clients[client.Id] = &cp
	return nil
}

func (r *fakeClientRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Client, error) {
	r.factory.store.mu.Lock()
	defer r.factory.store.mu.Unlock()
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			if err := r.factory.clientFindErr[byID.ID]; err != nil {
				return nil, err
			}
			if c, found := r.factory.store.clients[byID.ID]; found {
				cp := *c
				return &cp, nil
			}
			return nil, nil
		}
	}
	return nil, nil
}

func (r *fakeClientRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Client, error) {
	activeOnly := false
	for _, spec := range specs {
		if _, ok := spec.(specification.ActiveClients); ok {
			activeOnly = true
		}
	}
	r.factory.store.mu.Lock()
	defer r.factory.store.mu.Unlock()
	var out []*entity.Client
	for _, c := range r.factory.store.clients {
		if activeOnly && !c.Active {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeClientRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeReflectionRepo struct {
	factory *fakeFactory
}

func (r *fakeReflectionRepo) Create(ctx context.Context, rec *entity.DailyReflection) error {
	if r.factory.reflectionCreateErr != nil {
		return r.factory.reflectionCreateErr
	}
	for _, existing := range r.factory.store.reflections {
		if existing.ClientId == rec.ClientId && existing.ReflectionDate == rec.ReflectionDate {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *rec
	r.factory.store.reflections[rec.Id] = &cp
	return nil
}

func (r *fakeReflectionRepo) UpdateAnswer(ctx context.Context, id uuid.UUID, step reflection.Step, value string) error {
	if r.factory.updateAnswerErr != nil {
		return r.factory.updateAnswerErr
	}
	rec, found := r.factory.store.reflections[id]
	if !found {
		return errors.New("not found")
	}
	rec.SetAnswer(step, value)
	return nil
}

func (r *fakeReflectionRepo) UpdateStep(ctx context.Context, id uuid.UUID, step reflection.Step) error {
	rec, found := r.factory.store.reflections[id]
	if !found {
		return errors.New("not found")
	}
	rec.Step = step
	return nil
}

func (r *fakeReflectionRepo) SetMirror(ctx context.Context, id uuid.UUID, text string) error {
	rec, found := r.factory.store.reflections[id]
	if !found {
		return errors.New("not found")
	}
	rec.DailyMirror = &text
	return nil
}

func (r *fakeReflectionRepo) matches(rec *entity.DailyReflection, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if rec.Id != s.ID {
				return false
			}
		case specification.ClientOwnedBy:
			if rec.ClientId != s.ClientID {
				return false
			}
		case specification.ByReflectionDate:
			if rec.ReflectionDate != s.Date {
				return false
			}
		case specification.ReflectionDateBetween:
			if rec.ReflectionDate < s.From || rec.ReflectionDate > s.To {
				return false
			}
		}
	}
	return true
}

func (r *fakeReflectionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DailyReflection, error) {
	for _, rec := range r.factory.store.reflections {
		if r.matches(rec, specs) {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeReflectionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DailyReflection, error) {
	var out []*entity.DailyReflection
	for _, rec := range r.factory.store.reflections {
		if r.matches(rec, specs) {
			cp := *rec
			out = append(out, &cp)
		}
	}
	// Stable order for assertions.
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].ReflectionDate < out[i].ReflectionDate {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (r *fakeReflectionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeSummaryRepo struct {
	factory *fakeFactory
}

func (r *fakeSummaryRepo) Create(ctx context.Context, summary *entity.WeeklySummary) error {
	for _, existing := range r.factory.store.summaries {
		if existing.ClientId == summary.ClientId && existing.WeekStart == summary.WeekStart && existing.WeekEnd == summary.WeekEnd {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *summary
	r.factory.store.summaries[summary.Id] = &cp
	return nil
}

func (r *fakeSummaryRepo) matches(rec *entity.WeeklySummary, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ClientOwnedBy:
			if rec.ClientId != s.ClientID {
				return false
			}
		case specification.ByWeek:
			if rec.WeekStart != s.WeekStart || rec.WeekEnd != s.WeekEnd {
				return false
			}
		}
	}
	return true
}

func (r *fakeSummaryRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WeeklySummary, error) {
	for _, rec := range r.factory.store.summaries {
		if r.matches(rec, specs) {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSummaryRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.WeeklySummary, error) {
	var out []*entity.WeeklySummary
	for _, rec := range r.factory.store.summaries {
		if r.matches(rec, specs) {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSummaryRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

// Synthesizer fakes.

type fakeDailySynthesizer struct {
	calls   int
	lastIn  mirror.DailyInput
	result  string
	failErr error
}

func (f *fakeDailySynthesizer) SynthesizeDaily(ctx context.Context, input mirror.DailyInput) (string, error) {
	f.calls++
	f.lastIn = input
	if f.failErr != nil {
		return "", f.failErr
	}
	if f.result != "" {
		return f.result, nil
	}
	return "You noticed a pattern today.", nil
}

type fakeWeeklySynthesizer struct {
	calls    int
	lastWeek []mirror.WeeklyReflection
	failFor  map[string]error // keyed by first reflection date
}

func (f *fakeWeeklySynthesizer) SynthesizeWeekly(ctx context.Context, reflections []mirror.WeeklyReflection) (string, error) {
	f.calls++
	f.lastWeek = reflections
	if len(reflections) > 0 {
		if err := f.failFor[reflections[0].Date]; err != nil {
			return "", err
		}
	}
	dates := make([]string, len(reflections))
	for i, r := range reflections {
		dates[i] = r.Date
	}
	return "Weekly summary over " + strings.Join(dates, ","), nil
}

// Outbound fakes.

type fakePublisher struct {
	published [][]byte
}

func (f *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	f.published = append(f.published, payload)
	return nil
}

type fakeEventBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (f *fakeEventBus) Publish(ctx context.Context, event events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeEventBus) snapshot() []events.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]events.Event(nil), f.events...)
}

type fakeEmail struct {
	sent []fakeEmailCall
	err  error
}

type fakeEmailCall struct {
	to, coachName, weekStart, weekEnd, summary string
}

func (f *fakeEmail) SendWeeklySummary(toEmail, coachName, weekStart, weekEnd, summaryText string) error {
	f.sent = append(f.sent, fakeEmailCall{toEmail, coachName, weekStart, weekEnd, summaryText})
	return f.err
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
