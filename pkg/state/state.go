// Package state persists the identifiers and documents the CLI needs across
// invocations as small JSON files next to the working directory.
package state

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/studylab/studyassistgo/pkg/models"
)

// File names used under the state directory
const (
	AssistantFile   = "assistant_id.json"
	VectorStoreFile = "vector_store_id.json"
	NotesFile       = "exam_notes.json"
)

type assistantRecord struct {
	AssistantID string `json:"assistant_id"`
}

type vectorStoreRecord struct {
	VectorStoreID string `json:"vector_store_id"`
}

// NotesRecord is the persisted form of a generated notes document
type NotesRecord struct {
	Notes       []models.Note `json:"notes"`
	GeneratedAt string        `json:"generated_at"`
	TotalNotes  int           `json:"total_notes"`
}

// SaveAssistantID persists the assistant identifier
func SaveAssistantID(dir, assistantID string) error {
	return writeJSON(filepath.Join(dir, AssistantFile), assistantRecord{AssistantID: assistantID})
}

// LoadAssistantID returns the persisted assistant identifier, or "" when no
// record exists.
func LoadAssistantID(dir string) (string, error) {
	var rec assistantRecord
	if err := readJSON(filepath.Join(dir, AssistantFile), &rec); err != nil {
		return "", err
	}
	return rec.AssistantID, nil
}

// SaveVectorStoreID persists the vector store identifier
func SaveVectorStoreID(dir, vectorStoreID string) error {
	return writeJSON(filepath.Join(dir, VectorStoreFile), vectorStoreRecord{VectorStoreID: vectorStoreID})
}

// LoadVectorStoreID returns the persisted vector store identifier, or ""
// when no record exists.
func LoadVectorStoreID(dir string) (string, error) {
	var rec vectorStoreRecord
	if err := readJSON(filepath.Join(dir, VectorStoreFile), &rec); err != nil {
		return "", err
	}
	return rec.VectorStoreID, nil
}

// SaveNotes persists a generated notes document
func SaveNotes(dir string, doc *models.NotesDocument) error {
	rec := NotesRecord{
		Notes:       doc.Notes,
		GeneratedAt: time.Now().Format("2006-01-02"),
		TotalNotes:  len(doc.Notes),
	}
	return writeJSON(filepath.Join(dir, NotesFile), rec)
}

// Remove deletes the named state files, ignoring ones that do not exist.
// It returns the names actually removed.
func Remove(dir string, names ...string) ([]string, error) {
	var removed []string
	for _, name := range names {
		err := os.Remove(filepath.Join(dir, name))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return removed, err
		}
		removed = append(removed, name)
	}
	return removed, nil
}

func writeJSON(path string, v interface{}) error {
	b, err := json.MarshalIndent(v, "", " ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func readJSON(path string, v interface{}) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return json.Unmarshal(b, v)
}
