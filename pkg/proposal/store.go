package proposal

import (
	"sync"
	"time"

	"github.com/datadiver/diver/pkg/logger"
	"github.com/datadiver/diver/pkg/sse"
)

// Store holds the sections of one proposal draft, keyed by section key.
// Stream events are applied against the latest stored value for a key, so
// two regenerations of the same section never interleave stale snapshots.
type Store struct {
	mu       sync.Mutex
	sections map[string]*Section
	order    []string
}

func NewStore() *Store {
	return &Store{sections: make(map[string]*Section)}
}

// Put inserts or replaces a section. A replaced key keeps its position.
func (s *Store) Put(sec *Section) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sections[sec.Key]; !exists {
		s.order = append(s.order, sec.Key)
	}
	s.sections[sec.Key] = sec
}

// Get returns the section for key, if present.
func (s *Store) Get(key string) (*Section, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec, ok := s.sections[key]
	return sec, ok
}

// Sections returns all sections in insertion order.
func (s *Store) Sections() []*Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]*Section, 0, len(s.order))
	for _, key := range s.order {
		result = append(result, s.sections[key])
	}
	return result
}

// Remove deletes the section for key.
func (s *Store) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sections[key]; !ok {
		return
	}
	delete(s.sections, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// ApplyByKey applies an event to the current section stored under key. Keyed
// lookup at apply time, rather than holding a pointer across the stream,
// means a section replaced mid-generation stops receiving the old stream's
// updates.
func (s *Store) ApplyByKey(key string, apply func(*Section)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec, ok := s.sections[key]
	if !ok {
		logger.WithComponent("proposal").Debug("dropping update for removed section", "key", key)
		return false
	}
	apply(sec)
	return true
}

// ApplyEvent folds one stream event into the section under key using the
// same accumulation rules as chat messages: content appends, citations
// replace, retrieval progress lands on the section's timeline.
func (s *Store) ApplyEvent(key string, ev sse.Event) bool {
	return s.ApplyByKey(key, func(sec *Section) {
		switch {
		case ev.IsContent():
			sec.Content += ev.Text()
		case ev.Type == sse.TypeSources:
			sec.Citations = ev.Sources
		case ev.IsRetrieval():
			sec.Timeline = append(sec.Timeline, RetrievalUpdate{
				Kind:    ev.Type,
				Step:    ev.Step,
				Message: ev.Message,
				Query:   ev.Query,
				Results: ev.Results,
				At:      time.Now(),
			})
		}
	})
}
