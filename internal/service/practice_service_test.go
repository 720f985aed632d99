package service

import (
	"context"
	"errors"
	"testing"

	"responsagility-be/internal/dto"
	"responsagility-be/internal/pkg/serverutils"
	"responsagility-be/pkg/reflection"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPracticeFixture() (*fakeFactory, *fakeDailySynthesizer, *fakePublisher, IPracticeService) {
	factory := &fakeFactory{store: newFakeStore()}
	synth := &fakeDailySynthesizer{}
	pub := &fakePublisher{}
	svc := NewPracticeService(factory, synth, pub)
	return factory, synth, pub, svc
}

func submit(t *testing.T, svc IPracticeService, clientId uuid.UUID, date, input string) *dto.PracticeAnswerResponse {
	t.Helper()
	res, err := svc.SubmitAnswer(context.Background(), clientId, "client@example.com", &dto.PracticeAnswerRequest{
		Date:      date,
		UserInput: input,
	})
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func TestSubmitAnswer_FirstAnswerPersistsAndAsksNext(t *testing.T) {
	factory, synth, _, svc := newPracticeFixture()
	clientId := uuid.New()

	res := submit(t, svc, clientId, "2026-03-02", "I snapped at a colleague in standup")

	assert.Equal(t, dto.AnswerTypeQuestion, res.Type)
	assert.Equal(t, reflection.Prompts[reflection.StepRespond], res.Text)
	assert.Zero(t, synth.calls)

	// Client row was provisioned and the answer landed under react.
	require.Contains(t, factory.store.clients, clientId)
	assert.Equal(t, "client@example.com", factory.store.clients[clientId].Email)

	require.Len(t, factory.store.reflections, 1)
	for _, rec := range factory.store.reflections {
		assert.Equal(t, "I snapped at a colleague in standup", rec.React)
		assert.Equal(t, reflection.StepRespond, rec.Step)
	}
}

func TestSubmitAnswer_FullFlowProducesMirror(t *testing.T) {
	factory, synth, pub, svc := newPracticeFixture()
	clientId := uuid.New()
	date := "2026-03-02"
	synth.result = "Today you moved from reaction toward awareness."

	submit(t, svc, clientId, date, "reacted in traffic")
	submit(t, svc, clientId, date, "paused before replying to the email")
	submit(t, svc, clientId, date, "tight chest before reacting")
	res := submit(t, svc, clientId, date, "my triggers follow a pattern")

	assert.Equal(t, dto.AnswerTypeMirror, res.Type)
	assert.Equal(t, "Today you moved from reaction toward awareness.", res.Text)

	require.Equal(t, 1, synth.calls)
	assert.Equal(t, "reacted in traffic", synth.lastIn.React)
	assert.Equal(t, "paused before replying to the email", synth.lastIn.Respond)
	assert.Equal(t, "tight chest before reacting", synth.lastIn.Notice)
	assert.Equal(t, "my triggers follow a pattern", synth.lastIn.Learn)

	for _, rec := range factory.store.reflections {
		assert.Equal(t, reflection.StepReview, rec.Step)
		require.NotNil(t, rec.DailyMirror)
		assert.Equal(t, "Today you moved from reaction toward awareness.", *rec.DailyMirror)
	}

	// Mirror ready event went out once.
	assert.Len(t, pub.published, 1)
}

func TestSubmitAnswer_CompletedDayReturnsStoredMirror(t *testing.T) {
	_, synth, pub, svc := newPracticeFixture()
	clientId := uuid.New()
	date := "2026-03-02"

	submit(t, svc, clientId, date, "a")
	submit(t, svc, clientId, date, "b")
	submit(t, svc, clientId, date, "c")
	first := submit(t, svc, clientId, date, "d")
	require.Equal(t, dto.AnswerTypeMirror, first.Type)

	again := submit(t, svc, clientId, date, "anything at all")

	assert.Equal(t, dto.AnswerTypeCompleted, again.Type)
	assert.Equal(t, first.Text, again.Text)
	// No re-synthesis, no second event.
	assert.Equal(t, 1, synth.calls)
	assert.Len(t, pub.published, 1)
}

func TestSubmitAnswer_BlankInputRepeatsCurrentPrompt(t *testing.T) {
	factory, synth, _, svc := newPracticeFixture()
	clientId := uuid.New()
	date := "2026-03-02"

	submit(t, svc, clientId, date, "reacted at dinner")
	res := submit(t, svc, clientId, date, "   ")

	assert.Equal(t, dto.AnswerTypeQuestion, res.Type)
	assert.Equal(t, reflection.Prompts[reflection.StepRespond], res.Text)
	assert.Zero(t, synth.calls)

	// The blank input must not overwrite the stored answer.
	for _, rec := range factory.store.reflections {
		assert.Equal(t, "reacted at dinner", rec.React)
		assert.Equal(t, reflection.StepRespond, rec.Step)
	}
}

func TestSubmitAnswer_SelfHealsMissingAnswerAtReview(t *testing.T) {
	factory, synth, _, svc := newPracticeFixture()
	clientId := uuid.New()
	date := "2026-03-02"

	submit(t, svc, clientId, date, "react answer")
	submit(t, svc, clientId, date, "respond answer")

	// Simulate a partial failure on an earlier request: the step advanced to
	// learn but the notice answer never landed.
	for id, rec := range factory.store.reflections {
		rec.Notice = ""
		rec.Step = reflection.StepLearn
		factory.store.reflections[id] = rec
	}

	res := submit(t, svc, clientId, date, "learn answer")

	assert.Equal(t, dto.AnswerTypeQuestion, res.Type)
	assert.Equal(t, reflection.Prompts[reflection.StepNotice], res.Text)
	assert.Zero(t, synth.calls)

	for _, rec := range factory.store.reflections {
		assert.Equal(t, reflection.StepNotice, rec.Step)
		assert.Equal(t, "learn answer", rec.Learn)
		assert.Nil(t, rec.DailyMirror)
	}
}

func TestSubmitAnswer_ReviewStepWithoutMirrorRecovers(t *testing.T) {
	factory, synth, _, svc := newPracticeFixture()
	clientId := uuid.New()
	date := "2026-03-02"
	synth.result = "Recovered mirror."

	submit(t, svc, clientId, date, "a")
	submit(t, svc, clientId, date, "b")
	submit(t, svc, clientId, date, "c")

	// Simulate a crash between the learn answer landing and the mirror being
	// synthesized: all answers present, step review, no mirror.
	for id, rec := range factory.store.reflections {
		rec.Learn = "d"
		rec.Step = reflection.StepReview
		factory.store.reflections[id] = rec
	}

	res := submit(t, svc, clientId, date, "YES")

	assert.Equal(t, dto.AnswerTypeMirror, res.Type)
	assert.Equal(t, "Recovered mirror.", res.Text)
	assert.Equal(t, 1, synth.calls)
}

func TestSubmitAnswer_SynthesizerFailureLeavesMirrorUnset(t *testing.T) {
	factory, synth, pub, svc := newPracticeFixture()
	clientId := uuid.New()
	date := "2026-03-02"
	synth.failErr = errors.New("model unavailable")

	submit(t, svc, clientId, date, "a")
	submit(t, svc, clientId, date, "b")
	submit(t, svc, clientId, date, "c")

	_, err := svc.SubmitAnswer(context.Background(), clientId, "client@example.com", &dto.PracticeAnswerRequest{
		Date:      date,
		UserInput: "d",
	})
	require.Error(t, err)

	// Answers and step survive; the next request re-enters completion.
	for _, rec := range factory.store.reflections {
		assert.Equal(t, reflection.StepReview, rec.Step)
		assert.Equal(t, "d", rec.Learn)
		assert.Nil(t, rec.DailyMirror)
	}
	assert.Empty(t, pub.published)
}

func TestGetReflection_NotFound(t *testing.T) {
	_, _, _, svc := newPracticeFixture()

	_, err := svc.GetReflection(context.Background(), uuid.New(), "2026-03-02")

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestGetReflection_ReturnsStoredAnswers(t *testing.T) {
	_, synth, _, svc := newPracticeFixture()
	clientId := uuid.New()
	date := "2026-03-02"
	synth.result = "mirror text"

	submit(t, svc, clientId, date, "a")
	submit(t, svc, clientId, date, "b")
	submit(t, svc, clientId, date, "c")
	submit(t, svc, clientId, date, "d")

	res, err := svc.GetReflection(context.Background(), clientId, date)
	require.NoError(t, err)

	assert.Equal(t, date, res.Date)
	assert.Equal(t, "a", res.React)
	assert.Equal(t, "d", res.Learn)
	require.NotNil(t, res.Mirror)
	assert.Equal(t, "mirror text", *res.Mirror)
}

func TestListReflectionDates_SortedAndScoped(t *testing.T) {
	_, _, _, svc := newPracticeFixture()
	clientId := uuid.New()
	other := uuid.New()

	submit(t, svc, clientId, "2026-03-04", "x")
	submit(t, svc, clientId, "2026-03-02", "x")
	submit(t, svc, other, "2026-03-03", "x")

	res, err := svc.ListReflectionDates(context.Background(), clientId)
	require.NoError(t, err)

	assert.Equal(t, []string{"2026-03-02", "2026-03-04"}, res.Dates)
}
