// Package ticket keeps the session tickets of signed-in principals and checks the
// tickets clients present against them.
package ticket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Ticket is the credential a client presents to prove it holds a live session.
//
//	{"principal":"admin","ticket":"d348309d-0c0a-4c49-bb0e-f8f58a71058d","roles":["admin"]}
type Ticket struct {
	URL       string   `json:"url,omitempty"`
	Principal string   `json:"principal"`
	Ticket    string   `json:"ticket"`
	Roles     []string `json:"roles,omitempty"`
}

// Parse decodes a Ticket from its JSON form.
func Parse(b []byte) (Ticket, error) {
	var result Ticket
	if err := json.Unmarshal(b, &result); err != nil {
		return result, fmt.Errorf("failed to parse ticket %w", err)
	}
	return result, nil
}

// Entry is what the store keeps per principal.
type Entry struct {
	Ticket string
	Roles  []string
}

// Store holds the current ticket of every signed-in principal.
// It is safe for concurrent use.
type Store struct {
	Logger *slog.Logger

	mu      sync.RWMutex
	entries map[string]Entry
}

func NewStore(logger *slog.Logger) *Store {
	return &Store{Logger: logger, entries: make(map[string]Entry)}
}

func (s *Store) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Issue creates a new ticket for principal, replacing any previous one.
func (s *Store) Issue(principal string, roles []string) string {
	ticket := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entries == nil {
		s.entries = make(map[string]Entry)
	}
	s.entries[principal] = Entry{Ticket: ticket, Roles: append([]string(nil), roles...)}
	return ticket
}

// Entry returns the stored entry for principal.
func (s *Store) Entry(principal string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, exists := s.entries[principal]
	return e, exists
}

func (s *Store) Remove(principal string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, principal)
}

// Check reports whether t carries the ticket currently stored for its principal.
func (s *Store) Check(t Ticket) bool {
	entry, exists := s.Entry(t.Principal)
	if !exists || entry.Ticket == "" {
		s.logger().Info("Invalid principal", "principal", t.Principal)
		return false
	}
	if entry.Ticket != t.Ticket {
		s.logger().Info("Invalid ticket", "principal", t.Principal, "ticket", t.Ticket)
		return false
	}
	return true
}
