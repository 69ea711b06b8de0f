package chat_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/datadiver/diver/pkg/api"
	"github.com/datadiver/diver/pkg/chat"
	"github.com/datadiver/diver/pkg/sse"
)

// sseHandler writes the given records as a chat stream, flushing after each
// so the client sees real chunk boundaries.
func sseHandler(records ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, rec := range records {
			fmt.Fprintf(w, "data: %s\n", rec)
			flusher.Flush()
		}
	}
}

func newManager(serverURL string) *chat.Manager {
	client := api.NewClientWithTimeout(serverURL, 5*time.Second)
	return chat.NewManager(chat.NewStreamingClient(client, "hybrid"))
}

var _ = Describe("Manager", func() {
	Describe("Send", func() {
		It("should stream a full exchange into the conversation", func() {
			server := httptest.NewServer(sseHandler(
				`{"type": "session", "session_id": "sess-7"}`,
				`{"type": "retrieval_step", "step": "vector_search", "message": "searching"}`,
				`{"type": "text", "content": "Hel"}`,
				`{"type": "text", "content": "lo"}`,
				`{"type": "sources", "sources": [{"filename": "guide.pdf", "relevance_score": 0.87}]}`,
				`{"type": "end"}`,
			))
			defer server.Close()

			manager := newManager(server.URL)
			result, err := manager.Send(context.Background(), "greet me", nil)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Target.Content).To(Equal("Hello"))
			Expect(result.Target.Streaming).To(BeFalse())
			Expect(result.Target.Sources).To(HaveLen(1))
			Expect(chat.MatchLabel(result.Target.Sources[0].RelevanceScore)).To(Equal("87% match"))
			Expect(result.Timeline).To(HaveLen(1))
			Expect(manager.Session().ID()).To(Equal("sess-7"))

			messages := manager.Messages()
			Expect(messages).To(HaveLen(2))
			Expect(messages[0].IsUser()).To(BeTrue())
			Expect(messages[1].Content).To(Equal("Hello"))
		})

		It("should attach the captured session id to the next request", func() {
			var second struct {
				Message   string  `json:"message"`
				SessionID *string `json:"session_id"`
			}
			calls := 0
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				if calls == 2 {
					json.NewDecoder(r.Body).Decode(&second)
				}
				sseHandler(
					`{"type": "session", "session_id": "sess-persistent"}`,
					`{"type": "text", "content": "ok"}`,
					`{"type": "end"}`,
				)(w, r)
			}))
			defer server.Close()

			manager := newManager(server.URL)
			_, err := manager.Send(context.Background(), "first", nil)
			Expect(err).ToNot(HaveOccurred())
			_, err = manager.Send(context.Background(), "second", nil)
			Expect(err).ToNot(HaveOccurred())

			Expect(second.SessionID).ToNot(BeNil())
			Expect(*second.SessionID).To(Equal("sess-persistent"))
		})

		It("should invoke the update callback as events apply", func() {
			server := httptest.NewServer(sseHandler(
				`{"type": "text", "content": "a"}`,
				`{"type": "text", "content": "b"}`,
				`{"type": "end"}`,
			))
			defer server.Close()

			var seen []string
			manager := newManager(server.URL)
			_, err := manager.Send(context.Background(), "hi", func(msg *chat.Message, ev sse.Event) {
				if ev.IsContent() {
					seen = append(seen, msg.Content)
				}
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(seen).To(Equal([]string{"a", "ab"}))
		})

		It("should substitute the fallback message when the backend is unreachable", func() {
			manager := newManager("http://127.0.0.1:1")

			result, err := manager.Send(context.Background(), "hello?", nil)

			Expect(err).To(HaveOccurred())
			Expect(result.Target.Content).To(Equal(chat.FallbackErrorMessage))
			Expect(result.Target.Streaming).To(BeFalse())
		})

		It("should substitute the fallback message when the stream dies before content", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/event-stream")
				// Close without sending a single event.
			}))
			defer server.Close()

			manager := newManager(server.URL)
			result, err := manager.Send(context.Background(), "hello?", nil)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Target.Content).To(Equal(chat.FallbackErrorMessage))
			Expect(result.Target.Streaming).To(BeFalse())
		})

		It("should keep partial content on cancellation", func() {
			release := make(chan struct{})
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/event-stream")
				flusher := w.(http.Flusher)
				fmt.Fprint(w, "data: {\"type\": \"text\", \"content\": \"partial\"}\n")
				flusher.Flush()
				<-release
			}))
			defer server.Close()
			defer close(release)

			ctx, cancel := context.WithCancel(context.Background())
			manager := newManager(server.URL)

			go func() {
				// Give the first event time to arrive, then cancel.
				time.Sleep(200 * time.Millisecond)
				cancel()
			}()

			result, err := manager.Send(ctx, "long question", nil)

			Expect(err).To(MatchError(context.Canceled))
			Expect(result.Target.Content).To(Equal("partial"))
			Expect(result.Target.Streaming).To(BeFalse())
		})

		It("should reject a concurrent send", func() {
			release := make(chan struct{})
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/event-stream")
				w.(http.Flusher).Flush()
				<-release
			}))
			defer server.Close()

			manager := newManager(server.URL)
			ctx, cancel := context.WithCancel(context.Background())

			done := make(chan struct{})
			go func() {
				defer close(done)
				manager.Send(ctx, "first", nil)
			}()

			Eventually(func() int {
				return len(manager.Messages())
			}).Should(Equal(2), "first send should be in flight")

			_, err := manager.Send(context.Background(), "second", nil)
			Expect(err).To(MatchError(chat.ErrStreamActive))

			cancel()
			close(release)
			Eventually(done).Should(BeClosed())
		})

		It("should append the error message after partial content", func() {
			server := httptest.NewServer(sseHandler(
				`{"type": "text", "content": "partial answer"}`,
				`{"type": "error", "error": "backend gave up"}`,
			))
			defer server.Close()

			manager := newManager(server.URL)
			result, err := manager.Send(context.Background(), "hi", nil)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Target.Content).To(Equal("partial answer"))

			messages := manager.Messages()
			Expect(messages).To(HaveLen(3))
			Expect(messages[2].Content).To(Equal("backend gave up"))
		})
	})

	Describe("Clear", func() {
		It("should drop the conversation and session", func() {
			server := httptest.NewServer(sseHandler(
				`{"type": "session", "session_id": "sess-1"}`,
				`{"type": "text", "content": "hi"}`,
				`{"type": "end"}`,
			))
			defer server.Close()

			manager := newManager(server.URL)
			_, err := manager.Send(context.Background(), "hello", nil)
			Expect(err).ToNot(HaveOccurred())

			manager.Clear()

			Expect(manager.Messages()).To(BeEmpty())
			Expect(manager.Session().ID()).To(BeEmpty())
		})
	})
})
