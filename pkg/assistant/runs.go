package assistant

import (
	"context"
	"fmt"

	"github.com/studylab/studyassistgo/pkg/models"
)

type createRunRequest struct {
	AssistantID string `json:"assistant_id"`
}

// CreateRun starts a new asynchronous run of an assistant over a thread. The
// returned run carries its initial status.
func (c *Client) CreateRun(ctx context.Context, threadID, assistantID string) (*models.Run, error) {
	endpoint := fmt.Sprintf("/threads/%s/runs", threadID)

	resp, err := c.doRequest(ctx, "POST", endpoint, createRunRequest{AssistantID: assistantID})
	if err != nil {
		return nil, err
	}

	var run models.Run
	if err := decodeInto(resp, &run); err != nil {
		return nil, err
	}

	return &run, nil
}

// GetRun fetches the current state of a run
func (c *Client) GetRun(ctx context.Context, threadID, runID string) (*models.Run, error) {
	endpoint := fmt.Sprintf("/threads/%s/runs/%s", threadID, runID)

	resp, err := c.doRequest(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	var run models.Run
	if err := decodeInto(resp, &run); err != nil {
		return nil, err
	}

	return &run, nil
}
