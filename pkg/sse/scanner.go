package sse

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/datadiver/diver/pkg/logger"
)

// Record separators used by the two streaming endpoints. The chat stream
// frames events as "data: {json}\n", the proposal generator as
// "data: {json}\n\n".
const (
	SeparatorChat     = "\n"
	SeparatorProposal = "\n\n"
)

const dataPrefix = "data:"

// readChunkSize matches the typical chunk granularity of the backend's
// chunked transfer encoding. The scanner makes no boundary assumptions; any
// chunk size works.
const readChunkSize = 4096

// Scanner turns a chunked HTTP response body into decoded events.
//
// Bytes are appended to an internal buffer as they arrive, so a record (or a
// multi-byte UTF-8 sequence inside one) split across chunk reads is
// reassembled before decoding; the trailing partial record is carried over
// between reads, never processed early and never dropped mid-stream. A record
// that fails to parse as JSON is logged and skipped without aborting the
// stream. Records lacking a "type" field, or lines without the "data:"
// prefix, are ignored.
//
// A Scanner is single-use and not safe for concurrent readers; the stream is
// consumed by one sequential loop.
type Scanner struct {
	r   io.Reader
	sep []byte
	buf []byte
	tmp []byte
	eof bool
}

// NewScanner creates a scanner over r splitting records on sep
// (SeparatorChat or SeparatorProposal).
func NewScanner(r io.Reader, sep string) *Scanner {
	return &Scanner{
		r:   r,
		sep: []byte(sep),
		tmp: make([]byte, readChunkSize),
	}
}

// Next returns the next decoded event. It returns io.EOF once the stream is
// exhausted and ctx.Err() if the context is cancelled between reads. End of
// input with no end event is the caller's implicit terminal condition; any
// partially buffered data left at that point is discarded with a warning.
func (s *Scanner) Next(ctx context.Context) (Event, error) {
	log := logger.WithComponent("sse")
	for {
		for {
			rec, ok := s.takeRecord()
			if !ok {
				break
			}
			ev, ok := decodeRecord(rec)
			if !ok {
				continue
			}
			return ev, nil
		}

		if s.eof {
			if rest := bytes.TrimSpace(s.buf); len(rest) > 0 {
				log.Warn("discarding partial record at end of stream", "bytes", len(rest))
				s.buf = nil
			}
			return Event{}, io.EOF
		}

		if err := ctx.Err(); err != nil {
			return Event{}, err
		}

		n, err := s.r.Read(s.tmp)
		if n > 0 {
			s.buf = append(s.buf, s.tmp[:n]...)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				// Drain records completed by the final chunk before
				// reporting end of input.
				s.eof = true
				continue
			}
			if ctx.Err() != nil {
				return Event{}, ctx.Err()
			}
			return Event{}, err
		}
	}
}

// takeRecord extracts the next complete record from the buffer. The trailing
// partial record stays buffered for the next read.
func (s *Scanner) takeRecord() (string, bool) {
	idx := bytes.Index(s.buf, s.sep)
	if idx < 0 {
		return "", false
	}
	rec := string(s.buf[:idx])
	s.buf = s.buf[idx+len(s.sep):]
	return rec, true
}

// decodeRecord strips the frame prefix and parses the JSON payload. A false
// return means the record carried no event: blank separator noise, a
// non-data SSE line, a malformed payload, or a payload without a type.
func decodeRecord(rec string) (Event, bool) {
	log := logger.WithComponent("sse")

	line := strings.TrimSpace(rec)
	if line == "" {
		return Event{}, false
	}
	if !strings.HasPrefix(line, dataPrefix) {
		log.Debug("ignoring non-data line", "line", truncate(line, 80))
		return Event{}, false
	}
	payload := strings.TrimSpace(strings.TrimPrefix(line, dataPrefix))
	if payload == "" {
		return Event{}, false
	}

	var ev Event
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		log.Warn("skipping malformed record", "error", err, "payload", truncate(payload, 120))
		return Event{}, false
	}
	if ev.Type == "" {
		log.Debug("ignoring record without type field", "payload", truncate(payload, 120))
		return Event{}, false
	}
	return ev, true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
