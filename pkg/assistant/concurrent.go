package assistant

import (
	"context"
	"sync"

	"github.com/studylab/studyassistgo/pkg/models"
)

// Question pairs one prompt with the thread and assistant it runs against
type Question struct {
	ThreadID    string
	AssistantID string
	Text        string
}

// AskResult represents the result of one concurrent Ask call
type AskResult struct {
	Answer *models.Answer
	Error  error
	Index  int
}

// ConcurrentRunner fans independent Ask calls out over a bounded number of
// goroutines. Questions against the same thread are not serialized; callers
// needing at-most-one-run-per-thread must do so themselves.
type ConcurrentRunner struct {
	runner         *TurnRunner
	maxConcurrency int
	semaphore      chan struct{}
}

// NewConcurrentRunner creates a new concurrent runner
func NewConcurrentRunner(runner *TurnRunner, maxConcurrency int) *ConcurrentRunner {
	if maxConcurrency <= 0 {
		maxConcurrency = 4 // Default concurrency
	}

	return &ConcurrentRunner{
		runner:         runner,
		maxConcurrency: maxConcurrency,
		semaphore:      make(chan struct{}, maxConcurrency),
	}
}

// AskAll executes the questions concurrently, preserving input order in the
// result slice.
func (c *ConcurrentRunner) AskAll(ctx context.Context, questions []Question) []AskResult {
	results := make([]AskResult, len(questions))
	var wg sync.WaitGroup

	for i, q := range questions {
		wg.Add(1)
		go func(index int, question Question) {
			defer wg.Done()

			// Acquire semaphore
			select {
			case c.semaphore <- struct{}{}:
				defer func() { <-c.semaphore }()
			case <-ctx.Done():
				results[index] = AskResult{
					Error: ctx.Err(),
					Index: index,
				}
				return
			}

			answer, err := c.runner.Ask(ctx, question.ThreadID, question.AssistantID, question.Text)
			results[index] = AskResult{
				Answer: answer,
				Error:  err,
				Index:  index,
			}
		}(i, q)
	}

	wg.Wait()
	return results
}
