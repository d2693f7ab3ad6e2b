// Package session multiplexes independent conversations behind string
// session identifiers, for request/response style callers.
package session

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/baalimago/hfchat/internal/models"
	"github.com/baalimago/hfchat/internal/vendors/huggingface"
)

const DefaultID = "default"

// Response is the outcome of one Respond call.
type Response struct {
	Response      string `json:"response"`
	SessionID     string `json:"session_id"`
	Model         string `json:"model"`
	HistoryLength int    `json:"history_length"`
}

// Table lazily creates one huggingface.Client per session id. Entries never
// expire.
type Table struct {
	cfg      huggingface.Config
	mu       sync.Mutex
	sessions map[string]*huggingface.Client
}

// NewTable validates cfg by constructing a client from it, so a missing
// credential surfaces here rather than on first contact.
func NewTable(cfg huggingface.Config) (*Table, error) {
	if cfg.Model == "" {
		cfg.Model = huggingface.DefaultModelName
	}
	if _, err := huggingface.New(cfg); err != nil {
		return nil, fmt.Errorf("failed to setup session table: %w", err)
	}
	return &Table{
		cfg:      cfg,
		sessions: make(map[string]*huggingface.Client),
	}, nil
}

// Model is the model every new session starts on.
func (t *Table) Model() string {
	return t.cfg.Model
}

// GetOrCreate returns the client of sessionID, creating it on first contact.
func (t *Table) GetOrCreate(sessionID string) (*huggingface.Client, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if c, exists := t.sessions[sessionID]; exists {
		return c, nil
	}
	c, err := huggingface.New(t.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create session '%v': %w", sessionID, err)
	}
	t.sessions[sessionID] = c
	return c, nil
}

func (t *Table) lookup(sessionID string) (*huggingface.Client, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	c, exists := t.sessions[sessionID]
	return c, exists
}

// Respond sends message within sessionID, DefaultID if empty. Failures of the
// exchange itself are part of Response.Response, the error is only set when
// the session could not be created.
func (t *Table) Respond(ctx context.Context, message, sessionID string) (Response, error) {
	if sessionID == "" {
		sessionID = DefaultID
	}
	c, err := t.GetOrCreate(sessionID)
	if err != nil {
		return Response{}, err
	}
	reply, historyLen := c.Exchange(ctx, message)
	return Response{
		Response:      reply,
		SessionID:     sessionID,
		Model:         c.Model(),
		HistoryLength: historyLen,
	}, nil
}

// Clear empties the history of sessionID. Unknown ids are a no-op.
func (t *Table) Clear(sessionID string) {
	if c, exists := t.lookup(sessionID); exists {
		c.ClearHistory()
	}
}

// History of sessionID, empty for unknown ids.
func (t *Table) History(sessionID string) []models.Turn {
	if c, exists := t.lookup(sessionID); exists {
		return c.History()
	}
	return []models.Turn{}
}

// Sessions returns the known session ids, sorted.
func (t *Table) Sessions() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	ret := make([]string, 0, len(t.sessions))
	for id := range t.sessions {
		ret = append(ret, id)
	}
	slices.Sort(ret)
	return ret
}
