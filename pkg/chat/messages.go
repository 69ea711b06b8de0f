package chat

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/datadiver/diver/pkg/sse"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is one chat message. While an assistant message is streaming it is
// mutated in place by the accumulator: Content grows append-only, ToolsUsed
// and Sources are replaced wholesale as their events arrive. Once Streaming
// flips false the message is never written again; a new request always
// creates a new message.
type Message struct {
	ID        string
	Role      string
	Content   string
	Streaming bool
	ToolsUsed []sse.ToolCall
	Sources   []sse.Source
	Metadata  Metadata
	Timestamp time.Time
}

// Metadata is finalized when the stream reaches its terminal event.
// TokenCount is an approximation: the whitespace-delimited word count of the
// final content.
type Metadata struct {
	ProcessingTime time.Duration
	TokenCount     int
}

func NewUserMessage(content string) *Message {
	return &Message{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Content:   strings.TrimSpace(content),
		Timestamp: time.Now(),
	}
}

func NewAssistantMessage(content string) *Message {
	return &Message{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewStreamingMessage creates the empty assistant message a stream will fill.
func NewStreamingMessage() *Message {
	return &Message{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Streaming: true,
		Timestamp: time.Now(),
	}
}

func NewSystemMessage(content string) *Message {
	return &Message{
		ID:        uuid.NewString(),
		Role:      RoleSystem,
		Content:   content,
		Timestamp: time.Now(),
	}
}

func (m *Message) IsUser() bool      { return m.Role == RoleUser }
func (m *Message) IsAssistant() bool { return m.Role == RoleAssistant }
func (m *Message) IsSystem() bool    { return m.Role == RoleSystem }

func (m *Message) IsEmpty() bool {
	return strings.TrimSpace(m.Content) == ""
}

// CountTokens approximates a token count as the number of
// whitespace-delimited words.
func CountTokens(content string) int {
	return len(strings.Fields(content))
}

// MatchLabel renders a relevance fraction as the rounded percentage shown
// next to a source, e.g. 0.87 -> "87% match".
func MatchLabel(relevance float64) string {
	return strconv.Itoa(int(math.Round(relevance*100))) + "% match"
}
