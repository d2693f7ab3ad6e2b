package conversation

import (
	"strings"
	"sync"

	"github.com/baalimago/hfchat/internal/models"
)

// ContextTurns is the amount of most recent turns which are surfaced as
// model context. The limit is by turn count, not by tokens or characters, so
// older turns silently drop out of the prompt.
const ContextTurns = 5

// Store is an append-only, in-memory log of turns. Storage is unbounded, only
// the view exposed by Recent is limited.
type Store struct {
	mu    sync.RWMutex
	turns []models.Turn
}

func New() *Store {
	return &Store{}
}

func (s *Store) Append(turn models.Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, turn)
}

// Recent returns at most the n latest turns, oldest first, as a copy.
func (s *Store) Recent(n int) []models.Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n <= 0 {
		return []models.Turn{}
	}
	start := max(len(s.turns)-n, 0)
	ret := make([]models.Turn, len(s.turns)-start)
	copy(ret, s.turns[start:])
	return ret
}

// Snapshot returns an independent copy of every stored turn.
func (s *Store) Snapshot() []models.Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ret := make([]models.Turn, len(s.turns))
	copy(ret, s.turns)
	return ret
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.turns)
}

// Context joins the ContextTurns latest turns with newlines. This is the
// exact prompt sent to the model.
func (s *Store) Context() string {
	recent := s.Recent(ContextTurns)
	lines := make([]string, 0, len(recent))
	for _, t := range recent {
		lines = append(lines, t.String())
	}
	return strings.Join(lines, "\n")
}
