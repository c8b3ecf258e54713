package repository

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Conwon99/twilio-webhook/internal/models"
)

const (
	EntryTypeHandshake  = "handshake"
	EntryTypeSubmission = "submission"
)

// Entry is one record in the in-process request log.
type Entry struct {
	ID         string                  `json:"id"`
	At         time.Time               `json:"at"`
	Type       string                  `json:"type"`
	Method     string                  `json:"method"`
	Submission models.SubmissionFields `json:"submission,omitempty"`
	Headers    map[string]string       `json:"headers,omitempty"`
}

// LogStore keeps an unbounded in-memory append log of received requests. It
// lives for the process lifetime and is not durable; append is the only
// mutation besides Clear, and all methods are safe for concurrent use.
type LogStore struct {
	mu      sync.Mutex
	entries []Entry
}

func NewLogStore() *LogStore {
	return &LogStore{}
}

// Append stores the entry, filling in ID and timestamp when unset, and
// returns the stored value.
func (s *LogStore) Append(entry Entry) Entry {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.At.IsZero() {
		entry.At = time.Now().UTC()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return entry
}

// List returns a copy of the stored entries in append order.
func (s *LogStore) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Clear drops all stored entries.
func (s *LogStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}
