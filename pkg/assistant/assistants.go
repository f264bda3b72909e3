package assistant

import (
	"context"

	"github.com/studylab/studyassistgo/pkg/models"
)

// CreateAssistant creates a new persistent assistant
func (c *Client) CreateAssistant(ctx context.Context, req models.CreateAssistantRequest) (*models.Assistant, error) {
	resp, err := c.doRequest(ctx, "POST", "/assistants", req)
	if err != nil {
		return nil, err
	}

	var a models.Assistant
	if err := decodeInto(resp, &a); err != nil {
		return nil, err
	}

	return &a, nil
}

// GetAssistant retrieves an existing assistant
func (c *Client) GetAssistant(ctx context.Context, assistantID string) (*models.Assistant, error) {
	resp, err := c.doRequest(ctx, "GET", "/assistants/"+assistantID, nil)
	if err != nil {
		return nil, err
	}

	var a models.Assistant
	if err := decodeInto(resp, &a); err != nil {
		return nil, err
	}

	return &a, nil
}

// DeleteAssistant deletes an assistant
func (c *Client) DeleteAssistant(ctx context.Context, assistantID string) (*models.DeletionStatus, error) {
	resp, err := c.doRequest(ctx, "DELETE", "/assistants/"+assistantID, nil)
	if err != nil {
		return nil, err
	}

	var status models.DeletionStatus
	if err := decodeInto(resp, &status); err != nil {
		return nil, err
	}

	return &status, nil
}
