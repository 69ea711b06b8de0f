package proposal

import (
	"time"

	"github.com/datadiver/diver/pkg/sse"
)

// Section is one proposal section being drafted. While generation streams,
// Content grows append-only and Citations are replaced wholesale per sources
// event, mirroring how chat messages accumulate. Timeline collects the
// retrieval progress events of the generating stream in arrival order; they
// never touch Content.
type Section struct {
	Key       string
	Title     string
	Content   string
	Streaming bool
	Citations []sse.Source
	Timeline  []RetrievalUpdate
	Meta      Meta
}

// RetrievalUpdate is one entry of a section's generation progress timeline.
type RetrievalUpdate struct {
	Kind    string
	Step    string
	Message string
	Query   string
	Results int
	At      time.Time
}

// Meta is finalized on the terminal event of a generation stream.
type Meta struct {
	GeneratedAt    time.Time
	ProcessingTime time.Duration
	WordCount      int
}

// ContextMode selects which corpus the generator retrieves from.
const (
	ContextModeAll         = "all"
	ContextModeCollections = "collections"
	ContextModeDocuments   = "documents"
)

// Metadata scopes a generation request to part of the document corpus. The
// backend expects these exact camelCase keys.
type Metadata struct {
	ContextMode         string   `json:"contextMode"`
	SelectedCollections []string `json:"selectedCollections,omitempty"`
	SelectedDocuments   []string `json:"selectedDocuments,omitempty"`
}

// GenerateRequest is the body of a section generation request.
type GenerateRequest struct {
	SectionTitle        string   `json:"section_title"`
	SectionInstructions string   `json:"section_instructions,omitempty"`
	Metadata            Metadata `json:"metadata"`
	SearchType          string   `json:"search_type,omitempty"`
}
