package models

// Answer is the normalized result of one question/answer turn. It is a pure
// projection of the final message list and is never mutated after
// construction.
type Answer struct {
	Text      string     `json:"text"`
	Citations []Citation `json:"citations,omitempty"`
}

// Citation is one file-citation reference in an answer. Index is 1-based and
// sequential in order of first appearance in the message.
type Citation struct {
	Index  int    `json:"index"`
	FileID string `json:"file_id"`
	Quote  string `json:"quote,omitempty"`
}
