package assistant

import (
	"context"
	"fmt"

	"github.com/studylab/studyassistgo/pkg/models"
)

// CreateThread creates a new empty conversation thread
func (c *Client) CreateThread(ctx context.Context) (*models.Thread, error) {
	resp, err := c.doRequest(ctx, "POST", "/threads", struct{}{})
	if err != nil {
		return nil, err
	}

	var thread models.Thread
	if err := decodeInto(resp, &thread); err != nil {
		return nil, err
	}

	return &thread, nil
}

type createMessageRequest struct {
	Role    models.Role `json:"role"`
	Content string      `json:"content"`
}

// CreateMessage appends a message to a thread
func (c *Client) CreateMessage(ctx context.Context, threadID string, role models.Role, text string) (*models.Message, error) {
	endpoint := fmt.Sprintf("/threads/%s/messages", threadID)

	resp, err := c.doRequest(ctx, "POST", endpoint, createMessageRequest{Role: role, Content: text})
	if err != nil {
		return nil, err
	}

	var msg models.Message
	if err := decodeInto(resp, &msg); err != nil {
		return nil, err
	}

	return &msg, nil
}

// listMessagesPageSize is the page size requested from the messages endpoint
const listMessagesPageSize = 100

// ListMessages returns all messages of a thread in chronological (ascending)
// order, following the pagination cursor until the listing is exhausted.
func (c *Client) ListMessages(ctx context.Context, threadID string) ([]models.Message, error) {
	var messages []models.Message
	after := ""

	for {
		endpoint := fmt.Sprintf("/threads/%s/messages?order=asc&limit=%d", threadID, listMessagesPageSize)
		if after != "" {
			endpoint += "&after=" + after
		}

		resp, err := c.doRequest(ctx, "GET", endpoint, nil)
		if err != nil {
			return nil, err
		}

		var list models.MessageList
		if err := decodeInto(resp, &list); err != nil {
			return nil, err
		}

		messages = append(messages, list.Data...)
		if !list.HasMore || list.LastID == "" {
			return messages, nil
		}
		after = list.LastID
	}
}
