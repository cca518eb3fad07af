// Package tracker is the legacy single-table application tracker kept for older clients.
// Entries live only in process memory.
package tracker

import (
	"errors"
	"sync"
	"time"
)

// Status enumerates tracker entry states.
type Status string

const (
	StatusApplied      Status = "applied"
	StatusInterviewing Status = "interviewing"
	StatusOffer        Status = "offer"
	StatusRejected     Status = "rejected"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusApplied, StatusInterviewing, StatusOffer, StatusRejected:
		return true
	default:
		return false
	}
}

// ErrInvalidStatus is returned by Add for unknown statuses.
var ErrInvalidStatus = errors.New("invalid tracker status")

// Entry is a self-reported application.
type Entry struct {
	ID          int64     `json:"id"`
	Company     string    `json:"company"`
	Position    string    `json:"position"`
	Link        *string   `json:"link"`
	AppliedDate string    `json:"appliedDate"`
	Status      Status    `json:"status"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewEntry carries the caller supplied fields of an entry.
type NewEntry struct {
	Company     string
	Position    string
	Link        *string
	AppliedDate string
	Status      Status
	Notes       *string
}

// Store keeps entries in insertion order with sequential ids.
type Store struct {
	mu      sync.RWMutex
	entries []Entry
	nextID  int64
	now     func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{nextID: 1, now: func() time.Time { return time.Now().UTC() }}
}

// Add appends an entry and returns it with its id.
func (s *Store) Add(input NewEntry) (Entry, error) {
	if !input.Status.Valid() {
		return Entry{}, ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := Entry{
		ID:          s.nextID,
		Company:     input.Company,
		Position:    input.Position,
		Link:        input.Link,
		AppliedDate: input.AppliedDate,
		Status:      input.Status,
		Notes:       input.Notes,
		CreatedAt:   s.now(),
	}
	s.nextID++
	s.entries = append(s.entries, entry)
	return entry, nil
}

// List returns a snapshot of all entries.
func (s *Store) List() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(make([]Entry, 0, len(s.entries)), s.entries...)
}

// Get returns the entry with id.
func (s *Store) Get(id int64) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, entry := range s.entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return Entry{}, false
}

// Delete removes and returns the entry with id.
func (s *Store) Delete(id int64) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, entry := range s.entries {
		if entry.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return entry, true
		}
	}
	return Entry{}, false
}
