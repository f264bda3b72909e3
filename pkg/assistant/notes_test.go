package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studylab/studyassistgo/pkg/models"
)

func validNotes(count int) models.NotesDocument {
	var doc models.NotesDocument
	for i := 1; i <= count; i++ {
		doc.Notes = append(doc.Notes, models.Note{
			ID:      i,
			Heading: fmt.Sprintf("Concept %d", i),
			Summary: fmt.Sprintf("A short summary of study concept number %d.", i),
		})
	}
	return doc
}

func notesCompletionBody(t *testing.T, doc models.NotesDocument) []byte {
	t.Helper()
	content, err := json.Marshal(doc)
	require.NoError(t, err)

	body, err := json.Marshal(map[string]interface{}{
		"id":     "chatcmpl-1",
		"object": "chat.completion",
		"choices": []map[string]interface{}{
			{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": string(content)},
				"finish_reason": "stop",
			},
		},
	})
	require.NoError(t, err)
	return body
}

func TestGenerateNotes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)

		var req notesCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		assert.Equal(t, "json_object", req.ResponseFormat.Type)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Contains(t, req.Messages[0].Content, `"notes"`)
		assert.Contains(t, req.Messages[1].Content, "calculus")

		w.Write(notesCompletionBody(t, validNotes(10)))
	}))
	defer server.Close()

	client := NewClient("test-api-key", WithBaseURL(server.URL))

	doc, err := client.GenerateNotes(context.Background(), NotesRequest{
		Model:   "gpt-4o-mini",
		Context: "Available study materials: calculus",
	})
	require.NoError(t, err)
	require.Len(t, doc.Notes, 10)
	assert.Equal(t, 1, doc.Notes[0].ID)
}

func TestGenerateNotesTemperature(t *testing.T) {
	zero := 0.0
	tests := []struct {
		name        string
		temperature *float64
		expected    float64
	}{
		{
			name:        "Unset uses default",
			temperature: nil,
			expected:    DefaultNotesTemperature,
		},
		{
			name:        "Explicit zero is honored",
			temperature: &zero,
			expected:    0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var req notesCompletionRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, tt.expected, req.Temperature)

				w.Write(notesCompletionBody(t, validNotes(10)))
			}))
			defer server.Close()

			client := NewClient("test-api-key", WithBaseURL(server.URL))

			_, err := client.GenerateNotes(context.Background(), NotesRequest{
				Model:       "gpt-4o-mini",
				Temperature: tt.temperature,
			})
			require.NoError(t, err)
		})
	}
}

func TestGenerateNotesRejectsInvalidDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(notesCompletionBody(t, validNotes(9)))
	}))
	defer server.Close()

	client := NewClient("test-api-key", WithBaseURL(server.URL))

	_, err := client.GenerateNotes(context.Background(), NotesRequest{Model: "gpt-4o-mini"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestGenerateNotesRejectsMalformedContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := json.Marshal(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "not json"}},
			},
		})
		w.Write(body)
	}))
	defer server.Close()

	client := NewClient("test-api-key", WithBaseURL(server.URL))

	_, err := client.GenerateNotes(context.Background(), NotesRequest{Model: "gpt-4o-mini"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse notes document")
}

func TestGenerateNotesEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	client := NewClient("test-api-key", WithBaseURL(server.URL))

	_, err := client.GenerateNotes(context.Background(), NotesRequest{Model: "gpt-4o-mini"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no content")
}

func TestNotesSchema(t *testing.T) {
	schema, err := NotesSchema()
	require.NoError(t, err)

	s := string(schema)
	assert.True(t, strings.Contains(s, `"notes"`))
	assert.True(t, strings.Contains(s, `"heading"`))
	assert.True(t, strings.Contains(s, `"page_ref"`))
}
