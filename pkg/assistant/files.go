package assistant

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/studylab/studyassistgo/pkg/models"
)

// UploadFile uploads a file for assistant retrieval. The purpose is fixed to
// "assistants"; the vector-store attachment happens separately.
func (c *Client) UploadFile(ctx context.Context, filename string, content io.Reader) (*models.FileObject, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("purpose", models.FilePurposeAssistants); err != nil {
		return nil, fmt.Errorf("failed to write purpose field: %w", err)
	}

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("failed to copy file content: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/files", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}
	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		return nil, c.parseError(resp)
	}

	var file models.FileObject
	if err := decodeInto(resp, &file); err != nil {
		return nil, err
	}

	return &file, nil
}

// ListFiles lists uploaded files
func (c *Client) ListFiles(ctx context.Context) ([]models.FileObject, error) {
	resp, err := c.doRequest(ctx, "GET", "/files", nil)
	if err != nil {
		return nil, err
	}

	var list models.FileList
	if err := decodeInto(resp, &list); err != nil {
		return nil, err
	}

	return list.Data, nil
}

// DeleteFile deletes an uploaded file
func (c *Client) DeleteFile(ctx context.Context, fileID string) (*models.DeletionStatus, error) {
	resp, err := c.doRequest(ctx, "DELETE", "/files/"+fileID, nil)
	if err != nil {
		return nil, err
	}

	var status models.DeletionStatus
	if err := decodeInto(resp, &status); err != nil {
		return nil, err
	}

	return &status, nil
}

// CreateVectorStore creates a vector store over the given files
func (c *Client) CreateVectorStore(ctx context.Context, name string, fileIDs []string) (*models.VectorStore, error) {
	resp, err := c.doRequest(ctx, "POST", "/vector_stores", models.CreateVectorStoreRequest{
		Name:    name,
		FileIDs: fileIDs,
	})
	if err != nil {
		return nil, err
	}

	var store models.VectorStore
	if err := decodeInto(resp, &store); err != nil {
		return nil, err
	}

	return &store, nil
}

// DeleteVectorStore deletes a vector store
func (c *Client) DeleteVectorStore(ctx context.Context, storeID string) (*models.DeletionStatus, error) {
	resp, err := c.doRequest(ctx, "DELETE", "/vector_stores/"+storeID, nil)
	if err != nil {
		return nil, err
	}

	var status models.DeletionStatus
	if err := decodeInto(resp, &status); err != nil {
		return nil, err
	}

	return &status, nil
}
