package chat

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/datadiver/diver/pkg/api"
	"github.com/datadiver/diver/pkg/logger"
	"github.com/datadiver/diver/pkg/sse"
)

// eventBufferSize absorbs bursts of small deltas so the reader goroutine is
// not lockstepped with the consumer's render loop.
const eventBufferSize = 64

// StreamRequest is the chat stream request body. SessionID is omitted on the
// first exchange; afterwards it carries the id captured from the session
// event so the backend keeps conversational context.
type StreamRequest struct {
	Message    string  `json:"message"`
	SessionID  *string `json:"session_id,omitempty"`
	SearchType string  `json:"search_type,omitempty"`
}

// StreamingClient streams chat responses from the backend.
type StreamingClient struct {
	client     *api.Client
	searchType string
}

// NewStreamingClient wraps an API client for the chat stream endpoint.
// searchType may be empty to use the backend default.
func NewStreamingClient(client *api.Client, searchType string) *StreamingClient {
	return &StreamingClient{client: client, searchType: searchType}
}

// StreamMessage opens a chat stream for message and returns a channel of
// decoded events. The channel is closed when the stream ends, errors, or ctx
// is cancelled; a terminal end or error event is always the last delivery
// when the backend sends one. Connection errors are returned synchronously.
func (sc *StreamingClient) StreamMessage(ctx context.Context, message string, session *Session) (<-chan sse.Event, error) {
	req := StreamRequest{
		Message:    message,
		SearchType: sc.searchType,
	}
	if session != nil {
		if id := session.ID(); id != "" {
			req.SessionID = &id
		}
	}

	body, err := sc.client.Stream(ctx, http.MethodPost, "/chat/stream", req)
	if err != nil {
		return nil, err
	}

	events := make(chan sse.Event, eventBufferSize)
	go sc.readStream(ctx, body, events)
	return events, nil
}

func (sc *StreamingClient) readStream(ctx context.Context, body io.ReadCloser, events chan<- sse.Event) {
	log := logger.WithComponent("chat_stream")
	defer close(events)
	defer body.Close()

	scanner := sse.NewScanner(body, sse.SeparatorChat)
	for {
		ev, err := scanner.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			if ctx.Err() != nil {
				log.Debug("chat stream cancelled")
				return
			}
			log.Warn("chat stream read failed", "error", err)
			return
		}

		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}

		if ev.IsTerminal() {
			return
		}
	}
}
