package calculator_test

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examranking/rankcalc/internal/calculator"
	apperrors "github.com/examranking/rankcalc/internal/errors"
	"github.com/examranking/rankcalc/internal/models"
	"github.com/examranking/rankcalc/internal/result"
)

type memRecorder struct {
	mu    sync.Mutex
	calcs []models.Calculation
}

func (m *memRecorder) InsertCalculation(ctx context.Context, c models.Calculation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calcs = append(m.calcs, c)
	return nil
}

func (m *memRecorder) all() []models.Calculation {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Calculation, len(m.calcs))
	copy(out, m.calcs)
	return out
}

func newFlow(delay time.Duration) (*calculator.Flow, *memRecorder) {
	rec := &memRecorder{}
	gen := result.NewWithSource(rand.New(rand.NewSource(1)))
	return calculator.New(gen, rec, delay), rec
}

func urlInput() calculator.Input {
	return calculator.Input{
		Type:     calculator.InputTypeURL,
		URL:      "https://example.com/r",
		ExamSlug: "jee-main",
		ExamName: "JEE Main",
		Category: "General",
	}
}

func TestSubmit_URLInputSucceeds(t *testing.T) {
	flow, rec := newFlow(0)

	require.Equal(t, calculator.StateIdle, flow.Snapshot().State)

	res, err := flow.Submit(context.Background(), urlInput())
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 300, res.TotalMarks)
	assert.Equal(t, "General", res.Category)

	snap := flow.Snapshot()
	assert.Equal(t, calculator.StateSucceeded, snap.State)
	assert.Equal(t, "jee-main", snap.ExamSlug)
	require.NotNil(t, snap.Result)
	assert.Equal(t, *res, *snap.Result)
	assert.Len(t, snap.Leaderboard, 10)
	assert.Empty(t, snap.ErrMessage)

	calcs := rec.all()
	require.Len(t, calcs, 1)
	assert.Equal(t, "jee-main", calcs[0].ExamSlug)
	assert.Equal(t, models.CalculationCompleted, calcs[0].Status)
	assert.NotEmpty(t, calcs[0].ID)
}

func TestSubmit_FileInputSucceeds(t *testing.T) {
	flow, _ := newFlow(0)

	res, err := flow.Submit(context.Background(), calculator.Input{
		Type:     calculator.InputTypeFile,
		FileName: "scorecard.pdf",
		ExamSlug: "ssc-cgl",
		ExamName: "SSC CGL",
		Category: "EWS",
	})
	require.NoError(t, err)
	assert.Equal(t, "EWS", res.Category)
}

func TestSubmit_ValidationRejectsBadInput(t *testing.T) {
	flow, rec := newFlow(0)

	tests := []struct {
		name  string
		input calculator.Input
	}{
		{name: "empty url", input: calculator.Input{Type: calculator.InputTypeURL, ExamSlug: "gate"}},
		{name: "malformed url", input: calculator.Input{Type: calculator.InputTypeURL, URL: "not a url", ExamSlug: "gate"}},
		{name: "no file selected", input: calculator.Input{Type: calculator.InputTypeFile, ExamSlug: "gate"}},
		{name: "unknown input type", input: calculator.Input{Type: "carrier-pigeon", ExamSlug: "gate"}},
		{name: "missing exam", input: calculator.Input{Type: calculator.InputTypeURL, URL: "https://example.com/r"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := flow.Submit(context.Background(), tt.input)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidation))
		})
	}

	// Invalid input never leaves Idle and records nothing.
	assert.Equal(t, calculator.StateIdle, flow.Snapshot().State)
	assert.Empty(t, rec.all())
}

func TestSubmit_SecondSubmissionWhileInFlightIsRejected(t *testing.T) {
	flow, _ := newFlow(100 * time.Millisecond)

	started := make(chan struct{})
	errCh := make(chan error, 1)
	go func() {
		close(started)
		_, err := flow.Submit(context.Background(), urlInput())
		errCh <- err
	}()

	<-started
	// Wait for the first submission to reach Submitting.
	require.Eventually(t, func() bool {
		return flow.Snapshot().State == calculator.StateSubmitting
	}, time.Second, time.Millisecond)

	_, err := flow.Submit(context.Background(), urlInput())
	assert.ErrorIs(t, err, calculator.ErrSubmissionInFlight)

	require.NoError(t, <-errCh)
	assert.Equal(t, calculator.StateSucceeded, flow.Snapshot().State)
}

func TestSubmit_CancelledSubmissionFailsAndKeepsPriorResult(t *testing.T) {
	flow, _ := newFlow(200 * time.Millisecond)

	_, err := flow.Submit(context.Background(), urlInput())
	require.NoError(t, err)
	priorResult := flow.Snapshot().Result
	require.NotNil(t, priorResult)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = flow.Submit(ctx, urlInput())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeSubmissionFailure))

	snap := flow.Snapshot()
	assert.Equal(t, calculator.StateFailed, snap.State)
	assert.NotEmpty(t, snap.ErrMessage)
	require.NotNil(t, snap.Result, "a failure must not clear the previous result")
	assert.Equal(t, *priorResult, *snap.Result)
}

func TestSubmit_StaleCompletionDoesNotOverwriteNewerState(t *testing.T) {
	flow, _ := newFlow(100 * time.Millisecond)

	// First submission is cancelled while its worker is still running.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := flow.Submit(ctx, urlInput())
	require.Error(t, err)
	require.Equal(t, calculator.StateFailed, flow.Snapshot().State)

	// Give the superseded worker time to finish; its completion must be
	// dropped by the sequence guard.
	time.Sleep(200 * time.Millisecond)
	snap := flow.Snapshot()
	assert.Equal(t, calculator.StateFailed, snap.State)
	assert.Nil(t, snap.Result)
}

func TestSubmit_ResubmissionAfterFailureSucceeds(t *testing.T) {
	flow, rec := newFlow(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	_, err := flow.Submit(ctx, urlInput())
	require.Error(t, err)

	res, err := flow.Submit(context.Background(), urlInput())
	require.NoError(t, err)
	require.NotNil(t, res)

	snap := flow.Snapshot()
	assert.Equal(t, calculator.StateSucceeded, snap.State)
	assert.Empty(t, snap.ErrMessage)

	// One failed row, one completed row.
	statuses := make(map[string]int)
	for _, c := range rec.all() {
		statuses[c.Status]++
	}
	assert.Equal(t, 1, statuses[models.CalculationFailed])
	assert.Equal(t, 1, statuses[models.CalculationCompleted])
}

func TestDismissError(t *testing.T) {
	flow, _ := newFlow(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	_, err := flow.Submit(ctx, urlInput())
	require.Error(t, err)
	require.Equal(t, calculator.StateFailed, flow.Snapshot().State)

	flow.DismissError()
	snap := flow.Snapshot()
	assert.Empty(t, snap.ErrMessage)
	assert.Equal(t, calculator.StateIdle, snap.State)
}
