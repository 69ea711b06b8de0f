package tui

import (
	"github.com/datadiver/diver/pkg/chat"
)

// MessageDisplay is the scrolling message pane. It renders the live message
// pointers from the chat manager; a streaming message keeps changing under
// it, which is fine because every draw re-reads the current state.
type MessageDisplay struct {
	Messages []*chat.Message
	Width    int
	Height   int
	Scroll   int
	// AutoScroll pins the view to the newest content until the user scrolls
	// up.
	AutoScroll bool
}

func NewMessageDisplay(width, height int) MessageDisplay {
	return MessageDisplay{
		Messages:   []*chat.Message{},
		Width:      width,
		Height:     height,
		AutoScroll: true,
	}
}

func (md MessageDisplay) WithMessages(messages []*chat.Message) MessageDisplay {
	updated := md
	updated.Messages = messages
	return updated
}

func (md MessageDisplay) WithSize(width, height int) MessageDisplay {
	updated := md
	updated.Width = width
	updated.Height = height
	return updated
}

func (md MessageDisplay) WithScroll(scroll int) MessageDisplay {
	updated := md
	if scroll < 0 {
		scroll = 0
	}
	updated.Scroll = scroll
	updated.AutoScroll = false
	return updated
}

func (md MessageDisplay) WithAutoScroll() MessageDisplay {
	updated := md
	updated.AutoScroll = true
	return updated
}

type InputField struct {
	Content string
	Cursor  int
	Width   int
}

func NewInputField(width int) InputField {
	return InputField{Width: width}
}

func (inf InputField) WithContent(content string) InputField {
	cursor := inf.Cursor
	if cursor > len(content) {
		cursor = len(content)
	}
	return InputField{Content: content, Cursor: cursor, Width: inf.Width}
}

func (inf InputField) WithCursor(cursor int) InputField {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(inf.Content) {
		cursor = len(inf.Content)
	}
	return InputField{Content: inf.Content, Cursor: cursor, Width: inf.Width}
}

func (inf InputField) WithWidth(width int) InputField {
	return InputField{Content: inf.Content, Cursor: inf.Cursor, Width: width}
}

func (inf InputField) InsertRune(r rune) InputField {
	left := inf.Content[:inf.Cursor]
	right := inf.Content[inf.Cursor:]
	return InputField{
		Content: left + string(r) + right,
		Cursor:  inf.Cursor + len(string(r)),
		Width:   inf.Width,
	}
}

func (inf InputField) DeleteBackward() InputField {
	if inf.Cursor == 0 {
		return inf
	}
	left := inf.Content[:inf.Cursor-1]
	right := inf.Content[inf.Cursor:]
	return InputField{Content: left + right, Cursor: inf.Cursor - 1, Width: inf.Width}
}

func (inf InputField) Clear() InputField {
	return InputField{Width: inf.Width}
}

// StatusBar shows backend reachability, the active session, and what the
// client is doing.
type StatusBar struct {
	BackendURL       string
	BackendAvailable bool
	SessionID        string
	Status           string
	Width            int
}

func NewStatusBar(width int) StatusBar {
	return StatusBar{
		Status:           "Ready",
		Width:            width,
		BackendAvailable: true,
	}
}

func (sb StatusBar) WithBackend(url string, available bool) StatusBar {
	updated := sb
	updated.BackendURL = url
	updated.BackendAvailable = available
	return updated
}

func (sb StatusBar) WithSession(id string) StatusBar {
	updated := sb
	updated.SessionID = id
	return updated
}

func (sb StatusBar) WithStatus(status string) StatusBar {
	updated := sb
	updated.Status = status
	return updated
}

func (sb StatusBar) WithWidth(width int) StatusBar {
	updated := sb
	updated.Width = width
	return updated
}
