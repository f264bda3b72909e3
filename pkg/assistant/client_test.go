package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/studylab/studyassistgo/pkg/errors"
	"github.com/studylab/studyassistgo/pkg/models"
)

func TestNewClient(t *testing.T) {
	client := NewClient("test-api-key")
	assert.NotNil(t, client)
	assert.Equal(t, "test-api-key", client.apiKey)
	assert.Equal(t, DefaultBaseURL, client.baseURL)
}

func TestClientOptions(t *testing.T) {
	client := NewClient("test-api-key",
		WithBaseURL("https://custom.api.com/v1"),
		WithTimeout(5*time.Second),
		WithUserAgent("MyApp/1.0"),
	)

	assert.Equal(t, "https://custom.api.com/v1", client.baseURL)
	assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
	assert.Equal(t, "MyApp/1.0", client.userAgent)
}

func TestCreateThread(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/threads", r.URL.Path)
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))
		assert.Equal(t, "assistants=v2", r.Header.Get("OpenAI-Beta"))

		json.NewEncoder(w).Encode(models.Thread{ID: "thread-123", Object: "thread"})
	}))
	defer server.Close()

	client := NewClient("test-api-key", WithBaseURL(server.URL))

	thread, err := client.CreateThread(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "thread-123", thread.ID)
}

func TestCreateMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/threads/thread-123/messages", r.URL.Path)

		var req createMessageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, models.RoleUser, req.Role)
		assert.Equal(t, "What is a derivative?", req.Content)

		json.NewEncoder(w).Encode(models.Message{
			ID:       "msg-1",
			ThreadID: "thread-123",
			Role:     req.Role,
			Content:  []models.ContentBlock{models.NewTextBlock(req.Content)},
		})
	}))
	defer server.Close()

	client := NewClient("test-api-key", WithBaseURL(server.URL))

	msg, err := client.CreateMessage(context.Background(), "thread-123", models.RoleUser, "What is a derivative?")
	require.NoError(t, err)
	assert.Equal(t, "msg-1", msg.ID)
	assert.Equal(t, models.RoleUser, msg.Role)
}

func TestListMessagesAscending(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/threads/thread-123/messages", r.URL.Path)
		assert.Equal(t, "asc", r.URL.Query().Get("order"))

		json.NewEncoder(w).Encode(models.MessageList{
			Object: "list",
			Data: []models.Message{
				{ID: "msg-1", Role: models.RoleUser},
				{ID: "msg-2", Role: models.RoleAssistant},
			},
		})
	}))
	defer server.Close()

	client := NewClient("test-api-key", WithBaseURL(server.URL))

	messages, err := client.ListMessages(context.Background(), "thread-123")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "msg-1", messages[0].ID)
	assert.Equal(t, "msg-2", messages[1].ID)
}

func TestListMessagesFollowsPagination(t *testing.T) {
	// 102 messages served in 100-message pages; the newest is the only
	// assistant reply.
	const total = 102
	all := make([]models.Message, total)
	for i := range all {
		all[i] = models.Message{
			ID:      fmt.Sprintf("msg-%03d", i),
			Role:    models.RoleUser,
			Content: []models.ContentBlock{models.NewTextBlock(fmt.Sprintf("question %d", i))},
		}
	}
	all[total-1].Role = models.RoleAssistant
	all[total-1].Content = []models.ContentBlock{models.NewTextBlock("final answer")}

	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "/threads/thread-123/messages", r.URL.Path)
		assert.Equal(t, "asc", r.URL.Query().Get("order"))

		start := 0
		if after := r.URL.Query().Get("after"); after != "" {
			for i, m := range all {
				if m.ID == after {
					start = i + 1
					break
				}
			}
		}
		end := start + listMessagesPageSize
		if end > total {
			end = total
		}

		page := models.MessageList{
			Object:  "list",
			Data:    all[start:end],
			HasMore: end < total,
		}
		if end > start {
			page.FirstID = all[start].ID
			page.LastID = all[end-1].ID
		}
		json.NewEncoder(w).Encode(page)
	}))
	defer server.Close()

	client := NewClient("test-api-key", WithBaseURL(server.URL))

	messages, err := client.ListMessages(context.Background(), "thread-123")
	require.NoError(t, err)
	require.Len(t, messages, total)
	assert.Equal(t, 2, requests)
	assert.Equal(t, "msg-000", messages[0].ID)
	assert.Equal(t, "msg-101", messages[total-1].ID)

	// The reply on the second page is reachable by extraction.
	answer, err := ExtractAnswer(messages)
	require.NoError(t, err)
	assert.Equal(t, "final answer", answer.Text)
}

func TestCreateAndGetRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == "POST" && r.URL.Path == "/threads/thread-123/runs":
			var req createRunRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "asst-1", req.AssistantID)
			json.NewEncoder(w).Encode(models.Run{
				ID:          "run-1",
				ThreadID:    "thread-123",
				AssistantID: req.AssistantID,
				Status:      models.RunStatusQueued,
			})
		case r.Method == "GET" && r.URL.Path == "/threads/thread-123/runs/run-1":
			json.NewEncoder(w).Encode(models.Run{
				ID:       "run-1",
				ThreadID: "thread-123",
				Status:   models.RunStatusCompleted,
			})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient("test-api-key", WithBaseURL(server.URL))

	run, err := client.CreateRun(context.Background(), "thread-123", "asst-1")
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusQueued, run.Status)

	run, err = client.GetRun(context.Background(), "thread-123", "run-1")
	require.NoError(t, err)
	assert.Equal(t, models.RunStatusCompleted, run.Status)
}

func TestUploadFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/files", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, models.FilePurposeAssistants, r.FormValue("purpose"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "calc.pdf", header.Filename)

		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "pdf bytes", string(content))

		json.NewEncoder(w).Encode(models.FileObject{
			ID:       "file-1",
			Filename: header.Filename,
			Purpose:  models.FilePurposeAssistants,
		})
	}))
	defer server.Close()

	client := NewClient("test-api-key", WithBaseURL(server.URL))

	file, err := client.UploadFile(context.Background(), "calc.pdf", strings.NewReader("pdf bytes"))
	require.NoError(t, err)
	assert.Equal(t, "file-1", file.ID)
}

func TestCreateAssistantWithVectorStore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/assistants", r.URL.Path)

		var req models.CreateAssistantRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Tools, 1)
		assert.Equal(t, models.ToolTypeFileSearch, req.Tools[0].Type)
		require.NotNil(t, req.ToolResources)
		assert.Equal(t, []string{"vs-1"}, req.ToolResources.FileSearch.VectorStoreIDs)

		json.NewEncoder(w).Encode(models.Assistant{ID: "asst-1", Model: req.Model, Name: req.Name})
	}))
	defer server.Close()

	client := NewClient("test-api-key", WithBaseURL(server.URL))

	a, err := client.CreateAssistant(context.Background(), models.CreateAssistantRequest{
		Model: "gpt-4o-mini",
		Name:  "Study Q&A Assistant",
		Tools: []models.Tool{{Type: models.ToolTypeFileSearch}},
		ToolResources: &models.ToolResources{
			FileSearch: &models.FileSearchResources{VectorStoreIDs: []string{"vs-1"}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "asst-1", a.ID)
}

func TestDeleteResources(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "DELETE", r.Method)
		json.NewEncoder(w).Encode(models.DeletionStatus{ID: strings.TrimPrefix(r.URL.Path, "/"), Deleted: true})
	}))
	defer server.Close()

	client := NewClient("test-api-key", WithBaseURL(server.URL))

	status, err := client.DeleteAssistant(context.Background(), "asst-1")
	require.NoError(t, err)
	assert.True(t, status.Deleted)

	status, err = client.DeleteVectorStore(context.Background(), "vs-1")
	require.NoError(t, err)
	assert.True(t, status.Deleted)

	status, err = client.DeleteFile(context.Background(), "file-1")
	require.NoError(t, err)
	assert.True(t, status.Deleted)
}

func TestErrorHandling(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		errType    string
		errCode    string
		message    string
		check      func(t *testing.T, apiErr *apierrors.APIError)
	}{
		{
			name:       "Unauthorized",
			statusCode: 401,
			errType:    "invalid_request_error",
			errCode:    "invalid_api_key",
			message:    "Incorrect API key provided",
			check: func(t *testing.T, apiErr *apierrors.APIError) {
				assert.True(t, apiErr.IsAuthError())
			},
		},
		{
			name:       "Not found",
			statusCode: 404,
			errType:    "invalid_request_error",
			message:    "No thread found",
			check: func(t *testing.T, apiErr *apierrors.APIError) {
				assert.True(t, apiErr.IsNotFound())
			},
		},
		{
			name:       "Rate limited",
			statusCode: 429,
			errType:    "rate_limit_error",
			message:    "Rate limit reached",
			check: func(t *testing.T, apiErr *apierrors.APIError) {
				assert.True(t, apiErr.IsRateLimited())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.statusCode)

				var errResp apierrors.ErrorResponse
				errResp.Error.Message = tt.message
				errResp.Error.Type = tt.errType
				errResp.Error.Code = tt.errCode
				json.NewEncoder(w).Encode(errResp)
			}))
			defer server.Close()

			client := NewClient("test-api-key", WithBaseURL(server.URL))

			_, err := client.CreateThread(context.Background())
			require.Error(t, err)

			var apiErr *apierrors.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.statusCode, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message)
			tt.check(t, apiErr)
		})
	}
}
