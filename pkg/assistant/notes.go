package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/invopop/jsonschema"
	"github.com/tidwall/gjson"

	"github.com/studylab/studyassistgo/pkg/models"
)

// NotesRequest configures structured study-notes generation
type NotesRequest struct {
	// Model is the chat completion model to use
	Model string

	// Context describes the available study materials
	Context string

	// Temperature for the completion; nil uses DefaultNotesTemperature.
	// An explicit zero requests deterministic sampling.
	Temperature *float64
}

// DefaultNotesTemperature is the default sampling temperature for notes
const DefaultNotesTemperature = 0.7

const notesSystemPrompt = `You are a study summarizer. Your task is to generate exactly 10 unique, high-quality study notes that will help students prepare for an exam.

Requirements:
- Generate EXACTLY 10 notes, no more, no less
- Each note should cover a different key concept
- Summaries must be concise but informative (10-150 characters)
- Include page references when possible
- Focus on the most important concepts for exam preparation
- Make notes distinct and non-overlapping

Respond with valid JSON matching this exact schema:
%s`

const notesUserPrompt = `Based on the study materials, generate exactly 10 exam preparation notes.

Study materials context: %s

Focus on the key concepts students typically need to know for the exam, and generate exactly 10 unique notes in the required JSON format.`

// NotesSchema returns the JSON schema the notes document must satisfy,
// generated from the Go type. The schema is embedded in the system prompt.
func NotesSchema() ([]byte, error) {
	r := &jsonschema.Reflector{DoNotReference: true}
	schema := r.Reflect(&models.NotesDocument{})

	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notes schema: %w", err)
	}
	return out, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type notesCompletionRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
	Temperature    float64        `json:"temperature"`
}

// GenerateNotes runs a schema-constrained chat completion and returns the
// validated notes document.
func (c *Client) GenerateNotes(ctx context.Context, req NotesRequest) (*models.NotesDocument, error) {
	schema, err := NotesSchema()
	if err != nil {
		return nil, err
	}

	temperature := DefaultNotesTemperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	payload := notesCompletionRequest{
		Model: req.Model,
		Messages: []chatMessage{
			{Role: "system", Content: fmt.Sprintf(notesSystemPrompt, schema)},
			{Role: "user", Content: fmt.Sprintf(notesUserPrompt, req.Context)},
		},
		ResponseFormat: responseFormat{Type: "json_object"},
		Temperature:    temperature,
	}

	resp, err := c.doRequest(ctx, "POST", "/chat/completions", payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	content := gjson.GetBytes(body, "choices.0.message.content")
	if !content.Exists() || content.String() == "" {
		return nil, fmt.Errorf("completion returned no content")
	}

	var doc models.NotesDocument
	if err := json.Unmarshal([]byte(content.String()), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse notes document: %w", err)
	}

	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("generated notes failed validation: %w", err)
	}

	return &doc, nil
}
