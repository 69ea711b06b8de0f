package api

import "time"

// Collection is a named group of documents on the backend.
type Collection struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	DocumentCount int       `json:"document_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Document is an ingested document. CollectionID is empty for documents not
// yet assigned to a collection.
type Document struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Filename     string    `json:"filename"`
	CollectionID string    `json:"collection_id,omitempty"`
	ChunkCount   int       `json:"chunk_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// Proposal is a proposal document whose sections are generated one at a time
// through the streaming endpoint.
type Proposal struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	ClientName string            `json:"client_name,omitempty"`
	Status     string            `json:"status,omitempty"`
	Sections   []ProposalSection `json:"sections,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// ProposalSection is the stored (non-streaming) view of a section.
type ProposalSection struct {
	Key     string `json:"key"`
	Title   string `json:"title"`
	Content string `json:"content,omitempty"`
}
