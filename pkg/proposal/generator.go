package proposal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/datadiver/diver/pkg/api"
	"github.com/datadiver/diver/pkg/logger"
	"github.com/datadiver/diver/pkg/sse"
)

// FallbackErrorContent replaces a section body when generation fails before
// producing anything.
const FallbackErrorContent = "Sorry, this section could not be generated. Please check the backend connection and try again."

// Generator streams section drafts from the backend's proposal endpoint.
// Unlike the chat stream, the generation endpoint frames records with a
// blank-line separator.
type Generator struct {
	client *api.Client
	store  *Store
}

func NewGenerator(client *api.Client, store *Store) *Generator {
	return &Generator{client: client, store: store}
}

// Store returns the section store the generator writes into.
func (g *Generator) Store() *Store {
	return g.store
}

// SectionUpdateFunc fires after each applied event with the section's
// current state.
type SectionUpdateFunc func(*Section, sse.Event)

// GenerateSection streams a draft for one section of proposalID into the
// store, creating or resetting the section under req's title-derived key.
// The call blocks until the stream terminates; onUpdate (optional) fires on
// the calling goroutine after each event.
func (g *Generator) GenerateSection(ctx context.Context, proposalID string, req GenerateRequest, onUpdate SectionUpdateFunc) (*Section, error) {
	log := logger.WithComponent("proposal")

	key := SectionKey(req.SectionTitle)
	sec := &Section{
		Key:       key,
		Title:     req.SectionTitle,
		Streaming: true,
	}
	g.store.Put(sec)

	path := fmt.Sprintf("/proposals/%s/generate/stream", proposalID)
	body, err := g.client.Stream(ctx, http.MethodPost, path, req)
	if err != nil {
		log.Error("failed to open generation stream", "proposal_id", proposalID, "section", key, "error", err)
		g.store.ApplyByKey(key, func(s *Section) {
			s.Content = FallbackErrorContent
			s.Streaming = false
		})
		return sec, err
	}
	defer body.Close()

	started := time.Now()
	scanner := sse.NewScanner(body, sse.SeparatorProposal)
	terminal := false

	for !terminal {
		ev, err := scanner.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if ctx.Err() != nil {
				log.Debug("generation cancelled", "section", key)
				break
			}
			log.Warn("generation stream read failed", "section", key, "error", err)
			break
		}

		var applied bool
		switch ev.Type {
		case sse.TypeEnd:
			applied = g.store.ApplyByKey(key, func(s *Section) {
				s.Streaming = false
				s.Meta = Meta{
					GeneratedAt:    time.Now(),
					ProcessingTime: time.Since(started),
					WordCount:      len(strings.Fields(s.Content)),
				}
			})
			terminal = true
		case sse.TypeError:
			applied = g.store.ApplyByKey(key, func(s *Section) {
				text := ev.ErrorText()
				if text == "" {
					text = FallbackErrorContent
				}
				if s.Content == "" {
					s.Content = text
				}
				s.Streaming = false
			})
			terminal = true
		default:
			// Content, sources and retrieval progress share the store's
			// accumulation rules; unknown types fold to a no-op.
			applied = g.store.ApplyEvent(key, ev)
		}
		if !applied {
			// Section was removed or replaced; this stream is orphaned.
			return sec, nil
		}
		if onUpdate != nil {
			if cur, ok := g.store.Get(key); ok {
				onUpdate(cur, ev)
			}
		}
	}

	g.store.ApplyByKey(key, func(s *Section) {
		s.Streaming = false
		if s.Content == "" {
			s.Content = FallbackErrorContent
		}
	})

	if err := ctx.Err(); err != nil {
		return sec, err
	}
	cur, _ := g.store.Get(key)
	if cur != nil {
		return cur, nil
	}
	return sec, nil
}

// SectionKey derives the stable store key for a section title.
func SectionKey(title string) string {
	key := strings.ToLower(strings.TrimSpace(title))
	key = strings.Join(strings.Fields(key), "-")
	return key
}
