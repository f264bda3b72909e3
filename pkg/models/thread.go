package models

// Role represents the author of a message in a thread
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Thread represents a conversation thread owned by the remote service
type Thread struct {
	ID        string            `json:"id"`
	Object    string            `json:"object"`
	CreatedAt int64             `json:"created_at"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Message represents a single message in a thread
type Message struct {
	ID        string         `json:"id"`
	Object    string         `json:"object"`
	ThreadID  string         `json:"thread_id"`
	Role      Role           `json:"role"`
	Content   []ContentBlock `json:"content"`
	CreatedAt int64          `json:"created_at"`
}

// ContentBlockType represents the type of a message content block
type ContentBlockType string

const (
	ContentBlockTypeText      ContentBlockType = "text"
	ContentBlockTypeImageFile ContentBlockType = "image_file"
)

// ContentBlock is a tagged content variant. Only the text variant is
// interpreted; unrecognized types are carried but ignored.
type ContentBlock struct {
	Type ContentBlockType `json:"type"`
	Text *TextBlock       `json:"text,omitempty"`
}

// TextBlock holds a text value and the annotations anchored in it
type TextBlock struct {
	Value       string       `json:"value"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

// AnnotationType represents the type of a text annotation
type AnnotationType string

const (
	AnnotationTypeFileCitation AnnotationType = "file_citation"
	AnnotationTypeFilePath     AnnotationType = "file_path"
)

// Annotation is a tagged annotation variant. Text is the literal span the
// annotation occupies in the owning block's value.
type Annotation struct {
	Type         AnnotationType `json:"type"`
	Text         string         `json:"text"`
	StartIndex   int            `json:"start_index"`
	EndIndex     int            `json:"end_index"`
	FileCitation *FileCitation  `json:"file_citation,omitempty"`
}

// FileCitation points at the knowledge-base file a span was grounded on
type FileCitation struct {
	FileID string `json:"file_id"`
	Quote  string `json:"quote,omitempty"`
}

// MessageList represents a paginated message listing
type MessageList struct {
	Object  string    `json:"object"`
	Data    []Message `json:"data"`
	FirstID string    `json:"first_id,omitempty"`
	LastID  string    `json:"last_id,omitempty"`
	HasMore bool      `json:"has_more"`
}

// NewTextBlock builds a plain text content block
func NewTextBlock(value string, annotations ...Annotation) ContentBlock {
	return ContentBlock{
		Type: ContentBlockTypeText,
		Text: &TextBlock{Value: value, Annotations: annotations},
	}
}
