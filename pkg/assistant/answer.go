package assistant

import (
	"fmt"
	"strings"

	"github.com/studylab/studyassistgo/pkg/errors"
	"github.com/studylab/studyassistgo/pkg/models"
)

// ExtractAnswer scans a chronological message list newest-first for an
// assistant reply and normalizes it into an Answer. It is a pure function of
// its input: re-running it on the same list yields an identical result.
func ExtractAnswer(messages []models.Message) (*models.Answer, error) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == models.RoleAssistant {
			return formatMessage(messages[i]), nil
		}
	}
	return nil, errors.ErrNoAssistantReply
}

// formatMessage joins the message's text blocks with newlines, assigning each
// file citation a sequential 1-based index and replacing its source span with
// a " [Citation {n}]" marker inside the owning block's text. Citation indices
// keep counting across blocks.
func formatMessage(msg models.Message) *models.Answer {
	var parts []string
	var citations []models.Citation

	for _, block := range msg.Content {
		if block.Type != models.ContentBlockTypeText || block.Text == nil {
			continue
		}

		text := block.Text.Value
		for _, ann := range block.Text.Annotations {
			if ann.Type != models.AnnotationTypeFileCitation || ann.FileCitation == nil {
				continue
			}

			index := len(citations) + 1
			citations = append(citations, models.Citation{
				Index:  index,
				FileID: ann.FileCitation.FileID,
				Quote:  ann.FileCitation.Quote,
			})

			// A span that does not occur exactly once in the block cannot be
			// replaced unambiguously; the citation is still recorded.
			if ann.Text == "" || strings.Count(text, ann.Text) != 1 {
				continue
			}
			text = strings.Replace(text, ann.Text, fmt.Sprintf(" [Citation %d]", index), 1)
		}

		parts = append(parts, text)
	}

	return &models.Answer{
		Text:      strings.Join(parts, "\n"),
		Citations: citations,
	}
}
