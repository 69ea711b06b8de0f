package chat

import (
	"time"

	"github.com/datadiver/diver/pkg/logger"
	"github.com/datadiver/diver/pkg/sse"
)

// DefaultErrorContent stands in when the backend reports an error without
// any text of its own.
const DefaultErrorContent = "Something went wrong while generating a response. Please try again."

// RetrievalUpdate is one entry of the retrieval progress timeline. Retrieval
// events are a side channel: they describe what the backend is doing between
// content fragments and never touch message content.
type RetrievalUpdate struct {
	Kind    string
	Step    string
	Message string
	Query   string
	Results int
	At      time.Time
}

// Accumulator applies stream events to a single target message. Content
// mutations are append-only and applied in arrival order against the
// target's current value; tools and sources are replaced wholesale per event
// (last write wins). Once terminal, further events are dropped.
//
// An Accumulator belongs to one stream invocation and is driven from the
// single goroutine reading that stream.
type Accumulator struct {
	target   *Message
	session  *Session
	timeline []RetrievalUpdate
	appended []*Message
	started  time.Time
	terminal bool
}

// reducer mutates accumulator state for one event type.
type reducer func(*Accumulator, sse.Event)

var reducers = map[string]reducer{
	sse.TypeText:             applyContent,
	sse.TypeContent:          applyContent,
	sse.TypeDelta:            applyContent,
	sse.TypeTools:            applyTools,
	sse.TypeSources:          applySources,
	sse.TypeSession:          applySession,
	sse.TypeRetrieval:        applyRetrieval,
	sse.TypeRetrievalStep:    applyRetrieval,
	sse.TypeRetrievalSummary: applyRetrieval,
	sse.TypeEnd:              applyEnd,
	sse.TypeError:            applyError,
}

// NewAccumulator creates an accumulator streaming into target. session may
// be nil when the stream carries no session events (proposal generation).
func NewAccumulator(target *Message, session *Session) *Accumulator {
	target.Streaming = true
	return &Accumulator{
		target:  target,
		session: session,
		started: time.Now(),
	}
}

// Apply dispatches one event. Events with an unknown type, and any event
// arriving after the terminal transition, are ignored.
func (a *Accumulator) Apply(ev sse.Event) {
	log := logger.WithComponent("chat_stream")
	if a.terminal {
		log.Debug("ignoring event after terminal state", "type", ev.Type)
		return
	}
	r, ok := reducers[ev.Type]
	if !ok {
		log.Debug("ignoring unknown event type", "type", ev.Type)
		return
	}
	r(a, ev)
}

// Finish forces the terminal transition when the stream ends without an end
// event: transport close, cancellation, or backend truncation. Partial
// content is preserved, never rolled back. Idempotent.
func (a *Accumulator) Finish() {
	if a.terminal {
		return
	}
	a.terminal = true
	a.target.Streaming = false
}

// Terminal reports whether the target has stopped accepting mutations.
func (a *Accumulator) Terminal() bool {
	return a.terminal
}

// Target returns the message being streamed into.
func (a *Accumulator) Target() *Message {
	return a.target
}

// Timeline returns the retrieval progress entries in arrival order.
func (a *Accumulator) Timeline() []RetrievalUpdate {
	return a.timeline
}

// Appended returns messages created during the stream beyond the target —
// currently only the terminal assistant message carrying a backend error
// that arrived after partial content.
func (a *Accumulator) Appended() []*Message {
	return a.appended
}

func applyContent(a *Accumulator, ev sse.Event) {
	// Append to the current value, never a stale snapshot; several deltas
	// may arrive before any observer catches up.
	a.target.Content += ev.Text()
}

func applyTools(a *Accumulator, ev sse.Event) {
	a.target.ToolsUsed = ev.Tools
}

func applySources(a *Accumulator, ev sse.Event) {
	a.target.Sources = ev.Sources
}

func applySession(a *Accumulator, ev sse.Event) {
	if a.session != nil {
		a.session.SetID(ev.SessionID)
	}
}

func applyRetrieval(a *Accumulator, ev sse.Event) {
	a.timeline = append(a.timeline, RetrievalUpdate{
		Kind:    ev.Type,
		Step:    ev.Step,
		Message: ev.Message,
		Query:   ev.Query,
		Results: ev.Results,
		At:      time.Now(),
	})
}

func applyEnd(a *Accumulator, ev sse.Event) {
	a.terminal = true
	a.target.Streaming = false
	a.target.Metadata = Metadata{
		ProcessingTime: time.Since(a.started),
		TokenCount:     CountTokens(a.target.Content),
	}
}

func applyError(a *Accumulator, ev sse.Event) {
	text := ev.ErrorText()
	if text == "" {
		text = DefaultErrorContent
	}

	a.terminal = true
	a.target.Streaming = false

	if a.target.Content == "" {
		// Nothing streamed yet; the error text becomes the answer.
		a.target.Content = text
		return
	}

	// Partial content stays intact; the error rides on a new terminal
	// assistant message.
	errMsg := NewAssistantMessage(text)
	a.appended = append(a.appended, errMsg)
}
