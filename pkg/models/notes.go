package models

import (
	"fmt"
	"unicode/utf8"
)

// Limits enforced on generated study notes
const (
	NotesCount    = 10
	HeadingMaxLen = 100
	SummaryMinLen = 10
	SummaryMaxLen = 150
)

// Note is a single generated study note
type Note struct {
	ID      int    `json:"id" jsonschema:"minimum=1,maximum=10,description=Note ID from 1 to 10"`
	Heading string `json:"heading" jsonschema:"minLength=1,maxLength=100,description=Concise note title"`
	Summary string `json:"summary" jsonschema:"minLength=10,maxLength=150,description=Brief summary of the concept"`
	PageRef *int   `json:"page_ref,omitempty" jsonschema:"description=Page number in source PDF if available"`
}

// Validate checks a single note against the schema limits
func (n Note) Validate() error {
	if n.ID < 1 || n.ID > NotesCount {
		return fmt.Errorf("note id %d out of range 1..%d", n.ID, NotesCount)
	}
	if hl := utf8.RuneCountInString(n.Heading); hl < 1 || hl > HeadingMaxLen {
		return fmt.Errorf("note %d: heading length %d out of range 1..%d", n.ID, hl, HeadingMaxLen)
	}
	if sl := utf8.RuneCountInString(n.Summary); sl < SummaryMinLen || sl > SummaryMaxLen {
		return fmt.Errorf("note %d: summary length %d out of range %d..%d", n.ID, sl, SummaryMinLen, SummaryMaxLen)
	}
	return nil
}

// NotesDocument is the full generated study notes response
type NotesDocument struct {
	Notes []Note `json:"notes" jsonschema:"minItems=10,maxItems=10,description=Exactly 10 study notes"`
}

// Validate checks the document holds exactly NotesCount valid notes
func (d NotesDocument) Validate() error {
	if len(d.Notes) != NotesCount {
		return fmt.Errorf("expected exactly %d notes, got %d", NotesCount, len(d.Notes))
	}
	for _, n := range d.Notes {
		if err := n.Validate(); err != nil {
			return err
		}
	}
	return nil
}
