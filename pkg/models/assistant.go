package models

// Assistant represents a persistent assistant bound to a knowledge base
type Assistant struct {
	ID            string         `json:"id"`
	Object        string         `json:"object"`
	CreatedAt     int64          `json:"created_at"`
	Name          string         `json:"name,omitempty"`
	Instructions  string         `json:"instructions,omitempty"`
	Model         string         `json:"model"`
	Tools         []Tool         `json:"tools,omitempty"`
	ToolResources *ToolResources `json:"tool_resources,omitempty"`
}

// Tool enables a capability on an assistant
type Tool struct {
	Type string `json:"type"`
}

// ToolTypeFileSearch is the retrieval tool assistants use to ground answers
// in uploaded documents.
const ToolTypeFileSearch = "file_search"

// ToolResources binds tool-specific resources to an assistant
type ToolResources struct {
	FileSearch *FileSearchResources `json:"file_search,omitempty"`
}

// FileSearchResources names the vector stores the file_search tool reads
type FileSearchResources struct {
	VectorStoreIDs []string `json:"vector_store_ids,omitempty"`
}

// CreateAssistantRequest represents a request to create an assistant
type CreateAssistantRequest struct {
	Model         string         `json:"model"`
	Name          string         `json:"name,omitempty"`
	Instructions  string         `json:"instructions,omitempty"`
	Tools         []Tool         `json:"tools,omitempty"`
	ToolResources *ToolResources `json:"tool_resources,omitempty"`
}

// DeletionStatus represents the result of deleting a remote resource
type DeletionStatus struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}
