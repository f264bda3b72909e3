package models

// FilePurposeAssistants marks uploads intended for assistant retrieval
const FilePurposeAssistants = "assistants"

// FileObject represents an uploaded file
type FileObject struct {
	ID        string `json:"id"`
	Object    string `json:"object"`
	Bytes     int64  `json:"bytes"`
	CreatedAt int64  `json:"created_at"`
	Filename  string `json:"filename"`
	Purpose   string `json:"purpose"`
}

// FileList represents a file listing
type FileList struct {
	Object string       `json:"object"`
	Data   []FileObject `json:"data"`
}

// VectorStore represents a vector store built from uploaded files
type VectorStore struct {
	ID        string `json:"id"`
	Object    string `json:"object"`
	Name      string `json:"name,omitempty"`
	CreatedAt int64  `json:"created_at"`
	Status    string `json:"status,omitempty"`
}

// CreateVectorStoreRequest represents a request to create a vector store
type CreateVectorStoreRequest struct {
	Name    string   `json:"name,omitempty"`
	FileIDs []string `json:"file_ids,omitempty"`
}
