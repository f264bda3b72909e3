package assistant

import (
	"context"
	"math"
	"time"

	"github.com/studylab/studyassistgo/pkg/errors"
	"github.com/studylab/studyassistgo/pkg/models"
)

// DefaultPollInterval is the default wait between run status checks
const DefaultPollInterval = 1 * time.Second

// ThreadService is the collaborator surface the turn runner drives. *Client
// satisfies it; tests substitute a fake.
type ThreadService interface {
	CreateMessage(ctx context.Context, threadID string, role models.Role, text string) (*models.Message, error)
	CreateRun(ctx context.Context, threadID, assistantID string) (*models.Run, error)
	GetRun(ctx context.Context, threadID, runID string) (*models.Run, error)
	ListMessages(ctx context.Context, threadID string) ([]models.Message, error)
}

// DelayStrategy decides how long to suspend before the next status poll.
// attempt is 1-based.
type DelayStrategy interface {
	NextDelay(attempt int) time.Duration
}

// FixedDelay waits the same interval before every poll
type FixedDelay time.Duration

// NextDelay implements DelayStrategy
func (d FixedDelay) NextDelay(int) time.Duration {
	return time.Duration(d)
}

// ExponentialBackoff grows the poll interval geometrically up to MaxDelay
type ExponentialBackoff struct {
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Factor       float64
}

// NextDelay implements DelayStrategy
func (b ExponentialBackoff) NextDelay(attempt int) time.Duration {
	delay := float64(b.InitialDelay) * math.Pow(b.Factor, float64(attempt-1))
	if delay > float64(b.MaxDelay) {
		delay = float64(b.MaxDelay)
	}
	return time.Duration(delay)
}

// TurnRunner drives one question/answer turn over a remote asynchronous run:
// post the user message, start a run, poll it to a terminal status, then
// extract the normalized answer from the thread's messages.
//
// A runner holds no mutable state across calls; concurrent Ask calls against
// distinct threads are independent. Interleaved runs on the same thread are
// not coordinated here.
type TurnRunner struct {
	service    ThreadService
	delay      DelayStrategy
	waitBudget time.Duration
	logger     Logger
}

// RunnerOption configures a TurnRunner
type RunnerOption func(*TurnRunner)

// WithDelayStrategy replaces the fixed-interval poll delay
func WithDelayStrategy(d DelayStrategy) RunnerOption {
	return func(r *TurnRunner) {
		r.delay = d
	}
}

// WithWaitBudget bounds the total time Ask waits for a run to reach a
// terminal status. Zero means wait indefinitely. On exhaustion Ask returns
// errors.ErrTimeout and leaves the remote run untouched.
func WithWaitBudget(d time.Duration) RunnerOption {
	return func(r *TurnRunner) {
		r.waitBudget = d
	}
}

// WithLogger sets the logger used for poll transitions
func WithLogger(l Logger) RunnerOption {
	return func(r *TurnRunner) {
		r.logger = l
	}
}

// NewTurnRunner creates a runner over the given collaborator service
func NewTurnRunner(service ThreadService, opts ...RunnerOption) *TurnRunner {
	r := &TurnRunner{
		service: service,
		delay:   FixedDelay(DefaultPollInterval),
		logger:  NopLogger(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Ask runs one question/answer turn. Errors are terminal for the call: no
// retry happens at this layer, and a failed or abandoned run is never
// cancelled remotely. The caller may simply Ask again, which starts a fresh
// message/run pair.
func (r *TurnRunner) Ask(ctx context.Context, threadID, assistantID, question string) (*models.Answer, error) {
	if _, err := r.service.CreateMessage(ctx, threadID, models.RoleUser, question); err != nil {
		return nil, &errors.TransportError{Step: "post message", Err: err}
	}

	run, err := r.service.CreateRun(ctx, threadID, assistantID)
	if err != nil {
		return nil, &errors.TransportError{Step: "start run", Err: err}
	}
	r.logger.Debug("run started", "thread_id", threadID, "run_id", run.ID, "status", string(run.Status))

	run, err = r.waitForRun(ctx, threadID, run)
	if err != nil {
		return nil, err
	}

	switch run.Status {
	case models.RunStatusCompleted:
		messages, err := r.service.ListMessages(ctx, threadID)
		if err != nil {
			return nil, &errors.TransportError{Step: "list messages", Err: err}
		}
		return ExtractAnswer(messages)

	case models.RunStatusFailed:
		return nil, &errors.RunFailedError{Detail: failureDetail(run.LastError)}

	default: // cancelled, expired
		return nil, &errors.RunTerminatedError{Status: string(run.Status)}
	}
}

// waitForRun polls until the run's status is terminal. The run returned by
// CreateRun counts as the initial observation; the loop suspends before each
// subsequent fetch and stops at the first terminal status it sees.
func (r *TurnRunner) waitForRun(ctx context.Context, threadID string, run *models.Run) (*models.Run, error) {
	var deadline time.Time
	if r.waitBudget > 0 {
		deadline = time.Now().Add(r.waitBudget)
	}

	for attempt := 1; !run.Status.Terminal(); attempt++ {
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			return nil, errors.ErrTimeout
		}

		wait := r.delay.NextDelay(attempt)
		if !deadline.IsZero() {
			if remaining := time.Until(deadline); remaining < wait {
				wait = remaining
			}
		}

		select {
		case <-ctx.Done():
			return nil, &errors.TransportError{Step: "poll run", Err: ctx.Err()}
		case <-time.After(wait):
		}

		next, err := r.service.GetRun(ctx, threadID, run.ID)
		if err != nil {
			return nil, &errors.TransportError{Step: "poll run", Err: err}
		}

		if next.Status != run.Status {
			r.logger.Debug("run status changed", "run_id", next.ID, "status", string(next.Status))
		}
		run = next
	}

	return run, nil
}

func failureDetail(lastError *models.RunError) string {
	if lastError == nil {
		return ""
	}
	if lastError.Message != "" {
		return lastError.Message
	}
	return lastError.Code
}
