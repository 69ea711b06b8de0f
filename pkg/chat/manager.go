package chat

import (
	"context"
	"sync"

	"github.com/datadiver/diver/pkg/logger"
	"github.com/datadiver/diver/pkg/sse"
)

// FallbackErrorMessage replaces the assistant response when the stream cannot
// be established or dies before delivering anything.
const FallbackErrorMessage = "Sorry, I couldn't reach the DataDiver backend. Please check your connection and try again."

// UpdateFunc is called after each event mutates the streaming message, with
// the message in its post-event state. It runs on the stream goroutine.
type UpdateFunc func(*Message, sse.Event)

// Result is what one completed exchange produced.
type Result struct {
	Target   *Message
	Timeline []RetrievalUpdate
}

// Manager owns the conversation state for one chat surface: the message
// list, the backend session, and the single-active-stream invariant. The TUI
// and headless runner both drive it.
type Manager struct {
	streamer *StreamingClient
	session  *Session

	mu   sync.Mutex
	conv Conversation
}

func NewManager(streamer *StreamingClient) *Manager {
	return &Manager{
		streamer: streamer,
		session:  NewSession(),
		conv:     NewConversation(),
	}
}

// Messages returns a snapshot of the conversation's message list. The
// *Message records themselves are live; a streaming one keeps changing.
func (m *Manager) Messages() []*Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return GetMessages(m.conv)
}

// Session exposes the backend session for status display.
func (m *Manager) Session() *Session {
	return m.session
}

// Clear drops the conversation and the backend session; the next send starts
// fresh.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conv = NewConversation()
	m.session.Clear()
}

// AddSystemMessage appends a locally generated message, e.g. the greeting.
func (m *Manager) AddSystemMessage(content string) *Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg := NewSystemMessage(content)
	m.conv = AddMessage(m.conv, msg)
	return msg
}

// Send runs one exchange: appends the user message and an empty streaming
// assistant message, then applies stream events to it until the terminal
// event, end of stream, or cancellation. onUpdate (optional) fires after
// every applied event.
//
// Whatever happens, the target leaves Send with Streaming == false. If the
// stream cannot be opened, or dies before producing any content, the target
// carries FallbackErrorMessage and the underlying error is returned.
// Cancellation keeps whatever content had arrived and returns ctx.Err().
func (m *Manager) Send(ctx context.Context, text string, onUpdate UpdateFunc) (*Result, error) {
	log := logger.WithComponent("chat")

	if err := m.session.Begin(); err != nil {
		return nil, err
	}
	defer m.session.End()

	target := NewStreamingMessage()
	m.mu.Lock()
	m.conv = AddMessage(m.conv, NewUserMessage(text))
	m.conv = AddMessage(m.conv, target)
	m.mu.Unlock()

	events, err := m.streamer.StreamMessage(ctx, text, m.session)
	if err != nil {
		log.Error("failed to open chat stream", "error", err)
		target.Content = FallbackErrorMessage
		target.Streaming = false
		return &Result{Target: target}, err
	}

	acc := NewAccumulator(target, m.session)
	for ev := range events {
		acc.Apply(ev)
		if onUpdate != nil {
			onUpdate(target, ev)
		}
	}

	// The channel closed: terminal event, clean end of input, transport
	// failure, or cancellation. Terminal state is forced either way so the
	// message never stays marked streaming.
	acc.Finish()

	if appended := acc.Appended(); len(appended) > 0 {
		m.mu.Lock()
		for _, msg := range appended {
			m.conv = AddMessage(m.conv, msg)
		}
		m.mu.Unlock()
	}

	if err := ctx.Err(); err != nil {
		log.Info("chat stream cancelled", "received_chars", len(target.Content))
		return &Result{Target: target, Timeline: acc.Timeline()}, err
	}

	if target.Content == "" {
		log.Warn("chat stream ended without content")
		target.Content = FallbackErrorMessage
	}

	return &Result{Target: target, Timeline: acc.Timeline()}, nil
}
