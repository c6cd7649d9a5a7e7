// Package calculator orchestrates one submission at a time: input
// validation, the simulated processing delay, the mock generator, and the
// visible result state.
package calculator

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/examranking/rankcalc/internal/errors"
	"github.com/examranking/rankcalc/internal/logger"
	"github.com/examranking/rankcalc/internal/models"
)

// State of the submission machine.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Input types accepted by the calculator form.
const (
	InputTypeURL  = "url"
	InputTypeFile = "file"
)

// ErrSubmissionInFlight is returned when a submission arrives while an
// earlier one is still processing. The submit control is disabled in that
// state, so hitting this is a hard reject, not a retry case.
var ErrSubmissionInFlight = errors.New("a submission is already in progress")

// Input is one calculator submission.
type Input struct {
	Type     string // InputTypeURL or InputTypeFile
	URL      string
	FileName string
	ExamSlug string
	ExamName string
	Category string
}

// Generator produces the mock result and leaderboard.
type Generator interface {
	Generate(examSlug, category string) models.ExamResult
	Leaderboard() []models.LeaderboardEntry
}

// Recorder persists calculation history rows. *db.DB satisfies it.
type Recorder interface {
	InsertCalculation(ctx context.Context, c models.Calculation) error
}

// Snapshot is the visible state rendered by the results panel. A failed
// submission keeps the previous result on screen next to the error.
type Snapshot struct {
	State       State
	ExamSlug    string
	Result      *models.ExamResult
	Leaderboard []models.LeaderboardEntry
	ErrMessage  string
}

// Flow runs the submission state machine:
//
//	Idle -> Submitting -> {Succeeded, Failed} -> (next submit) Submitting
//
// One submission is in flight at most. Each submission carries a sequence
// number; only the completion with the latest sequence may update the
// visible snapshot, so a superseded submission that finishes late is
// dropped instead of clobbering newer state.
type Flow struct {
	mu       sync.Mutex
	state    State
	seq      uint64
	examSlug string
	result   *models.ExamResult
	board    []models.LeaderboardEntry
	errMsg   string

	gen      Generator
	recorder Recorder
	delay    time.Duration
}

// New creates an idle Flow. The delay simulates backend processing and may
// be zero.
func New(gen Generator, recorder Recorder, delay time.Duration) *Flow {
	return &Flow{
		state:    StateIdle,
		gen:      gen,
		recorder: recorder,
		delay:    delay,
	}
}

type outcome struct {
	result models.ExamResult
	board  []models.LeaderboardEntry
}

// Submit validates the input, transitions to Submitting, waits out the
// simulated delay and applies the generated result. It blocks until the
// submission resolves or ctx is cancelled.
func (f *Flow) Submit(ctx context.Context, input Input) (*models.ExamResult, error) {
	log := logger.FromContext(ctx).WithPrefix("calculator")

	if err := validate(input); err != nil {
		return nil, err
	}

	f.mu.Lock()
	if f.state == StateSubmitting {
		f.mu.Unlock()
		log.Warn("submission rejected, one already in flight: exam=%s", input.ExamSlug)
		return nil, ErrSubmissionInFlight
	}
	f.seq++
	seq := f.seq
	f.state = StateSubmitting
	f.mu.Unlock()

	log.Info("submission started: exam=%s, input=%s", input.ExamSlug, input.Type)

	type completion struct {
		out     outcome
		applied bool
	}

	// The worker runs the full delay regardless of cancellation, the way
	// an unabortable backend call would. Its completion goes through the
	// sequence guard, so if this submission was superseded by the time it
	// finishes, the result is dropped rather than applied.
	done := make(chan completion, 1)
	go func() {
		if f.delay > 0 {
			time.Sleep(f.delay)
		}
		out := outcome{
			result: f.gen.Generate(input.ExamSlug, input.Category),
			board:  f.gen.Leaderboard(),
		}
		done <- completion{out: out, applied: f.applySuccess(seq, input, out)}
	}()

	select {
	case c := <-done:
		if !c.applied {
			log.Debug("stale submission completed, dropped: exam=%s", input.ExamSlug)
			return nil, apperrors.NewSubmissionFailureError(errors.New("submission superseded"))
		}
		log.Info("submission succeeded: exam=%s, rank=%d", input.ExamSlug, c.out.result.Rank)
		return &c.out.result, nil
	case <-ctx.Done():
		f.applyFailure(seq, input, "submission was interrupted, please try again")
		log.Warn("submission interrupted: exam=%s: %v", input.ExamSlug, ctx.Err())
		return nil, apperrors.NewSubmissionFailureError(ctx.Err())
	}
}

// applySuccess installs the outcome if seq is still current. It reports
// whether the snapshot was updated.
func (f *Flow) applySuccess(seq uint64, input Input, out outcome) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if seq != f.seq {
		return false
	}
	f.state = StateSucceeded
	f.examSlug = input.ExamSlug
	f.result = &out.result
	f.board = out.board
	f.errMsg = ""

	f.record(input, out.result, models.CalculationCompleted)
	return true
}

// applyFailure marks the flow Failed, keeping any previously displayed
// result in place, and invalidates the in-flight sequence so a late
// completion of this submission cannot resurface.
func (f *Flow) applyFailure(seq uint64, input Input, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if seq != f.seq {
		return
	}
	f.seq++
	f.state = StateFailed
	f.examSlug = input.ExamSlug
	f.errMsg = message

	f.record(input, models.ExamResult{}, models.CalculationFailed)
}

func (f *Flow) record(input Input, r models.ExamResult, status string) {
	if f.recorder == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := f.recorder.InsertCalculation(ctx, models.Calculation{
		ID:         uuid.NewString(),
		ExamSlug:   input.ExamSlug,
		ExamName:   input.ExamName,
		Category:   input.Category,
		Rank:       r.Rank,
		Score:      r.Score,
		Percentage: r.Percentage,
		Status:     status,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		logger.Default().WithPrefix("calculator").Warn("failed to record calculation: %v", err)
	}
}

// DismissError clears a displayed failure message without touching the
// last successful result.
func (f *Flow) DismissError() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateFailed {
		f.errMsg = ""
		if f.result != nil {
			f.state = StateSucceeded
		} else {
			f.state = StateIdle
		}
	}
}

// Snapshot returns a copy of the visible state.
func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	snap := Snapshot{
		State:      f.state,
		ExamSlug:   f.examSlug,
		ErrMessage: f.errMsg,
	}
	if f.result != nil {
		r := *f.result
		snap.Result = &r
	}
	if f.board != nil {
		snap.Leaderboard = make([]models.LeaderboardEntry, len(f.board))
		copy(snap.Leaderboard, f.board)
	}
	return snap
}

func validate(input Input) error {
	switch input.Type {
	case InputTypeURL:
		if input.URL == "" {
			return apperrors.NewValidationError("url", "cannot be empty")
		}
		if _, err := url.ParseRequestURI(input.URL); err != nil {
			return apperrors.NewValidationError("url", "must be a valid URL")
		}
	case InputTypeFile:
		if input.FileName == "" {
			return apperrors.NewValidationError("file", "no file selected")
		}
	default:
		return apperrors.NewValidationError("inputType", "must be url or file")
	}
	if input.ExamSlug == "" {
		return apperrors.NewValidationError("exam", "cannot be empty")
	}
	return nil
}
