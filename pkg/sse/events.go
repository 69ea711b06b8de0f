package sse

// Event type discriminators emitted by the DataDiver streaming endpoints.
// The chat stream uses "text" for content, the proposal generator uses "text"
// or "delta"; all three spellings are accepted everywhere.
const (
	TypeText             = "text"
	TypeContent          = "content"
	TypeDelta            = "delta"
	TypeTools            = "tools"
	TypeSources          = "sources"
	TypeSession          = "session"
	TypeRetrieval        = "retrieval"
	TypeRetrievalStep    = "retrieval_step"
	TypeRetrievalSummary = "retrieval_summary"
	TypeEnd              = "end"
	TypeError            = "error"
)

// Event is one decoded record from a stream. The backend sends a JSON object
// with a "type" field plus type-specific payload fields; fields that do not
// apply to the event's type are left at their zero value. Records with an
// unrecognized type still decode successfully so callers can ignore them
// without aborting the stream.
type Event struct {
	Type string `json:"type"`

	// text / content / delta payload
	Content string `json:"content,omitempty"`
	Delta   string `json:"delta,omitempty"`

	// tools payload
	Tools []ToolCall `json:"tools,omitempty"`

	// sources payload
	Sources []Source `json:"sources,omitempty"`

	// session payload
	SessionID string `json:"session_id,omitempty"`

	// retrieval* payload
	Message string `json:"message,omitempty"`
	Step    string `json:"step,omitempty"`
	Query   string `json:"query,omitempty"`
	Results int    `json:"results,omitempty"`

	// error payload
	Error string `json:"error,omitempty"`
}

// ToolCall describes one backend tool invocation reported by a tools event.
// Tools are reported as a completed batch, not incrementally.
type ToolCall struct {
	ToolName   string         `json:"tool_name"`
	Args       map[string]any `json:"args,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
}

// Source is one retrieved document chunk attached to an answer.
// RelevanceScore is a fraction in [0, 1].
type Source struct {
	Filename       string  `json:"filename"`
	ChunkID        string  `json:"chunk_id"`
	RelevanceScore float64 `json:"relevance_score"`
	DocumentTitle  string  `json:"document_title,omitempty"`
	Preview        string  `json:"preview,omitempty"`
}

// Text returns the incremental content fragment of a text-like event,
// whichever of the two field spellings the backend used.
func (e Event) Text() string {
	if e.Content != "" {
		return e.Content
	}
	return e.Delta
}

// IsContent reports whether the event carries an incremental content fragment.
func (e Event) IsContent() bool {
	return e.Type == TypeText || e.Type == TypeContent || e.Type == TypeDelta
}

// IsRetrieval reports whether the event belongs to the retrieval progress
// side channel. Retrieval events never mutate message content.
func (e Event) IsRetrieval() bool {
	switch e.Type {
	case TypeRetrieval, TypeRetrievalStep, TypeRetrievalSummary:
		return true
	}
	return false
}

// IsTerminal reports whether the event ends the stream for its target.
func (e Event) IsTerminal() bool {
	return e.Type == TypeEnd || e.Type == TypeError
}

// ErrorText returns the backend-provided error string of an error event,
// falling back to the message field when the error field is empty.
func (e Event) ErrorText() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}
