// Package instruction manages the bounded, deduplicating list of saved
// generation instructions.
package instruction

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"chapter-api/internal/domain/domainerrors"
	"chapter-api/internal/infrastructure/logger"
	"chapter-api/internal/infrastructure/storage"
)

const (
	historyKey = "instruction_history"
	limitKey   = "instruction_history_limit"

	// DefaultLimit applies when no limit was ever persisted or the limit
	// cannot be read.
	DefaultLimit = 10
)

// Entry is one saved instruction. Content is unique within the list; the id
// is a time-derived integer assigned at first save and kept across
// resubmissions of the same content.
type Entry struct {
	ID           int64  `json:"id"`
	Content      string `json:"content"`
	Timestamp    string `json:"timestamp"`
	Name         string `json:"name,omitempty"`
	IsCustomName bool   `json:"isCustomName"`
}

// DisplayName returns the custom name when one is set, otherwise a readable
// rendering of the timestamp.
func (e Entry) DisplayName() string {
	if e.IsCustomName && strings.TrimSpace(e.Name) != "" {
		return e.Name
	}
	if ts, err := time.Parse(time.RFC3339, e.Timestamp); err == nil {
		return ts.Format("Jan 2, 2006 15:04")
	}
	return e.Timestamp
}

// Service stores the history list and its limit, most recent first.
type Service struct {
	store  storage.Adapter
	logger zerolog.Logger
	now    func() time.Time
}

// NewService builds the history service over a storage adapter.
func NewService(store storage.Adapter) *Service {
	return &Service{
		store:  store,
		logger: logger.ForComponent("instruction"),
		now:    time.Now,
	}
}

// List returns the current history, newest first. Read failures are logged
// and degrade to an empty list.
func (s *Service) List(ctx context.Context) []Entry {
	raw, found, err := s.store.Get(ctx, historyKey)
	if err != nil {
		s.logger.Warn().Err(err).Msg("history read failed, using empty list")
		return nil
	}
	if !found {
		return nil
	}
	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		s.logger.Warn().Err(err).Msg("history is corrupted, using empty list")
		return nil
	}
	return entries
}

// Add saves an instruction at the head of the list. Resubmitting content
// that already exists (exact match after trimming) moves the existing entry
// to the head, keeping its id and name but refreshing its timestamp. The
// list is truncated to the configured limit before persisting.
func (s *Service) Add(ctx context.Context, text string) (Entry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Entry{}, &domainerrors.ValidationError{Field: "content", Message: "instruction text must not be empty"}
	}

	entries := s.List(ctx)
	limit := s.GetLimit(ctx)

	entry := Entry{
		ID:        s.nextID(entries),
		Content:   text,
		Timestamp: s.now().UTC().Format(time.RFC3339),
	}
	rest := entries
	for i, existing := range entries {
		if existing.Content == text {
			entry.ID = existing.ID
			entry.Name = existing.Name
			entry.IsCustomName = existing.IsCustomName
			rest = append(append([]Entry{}, entries[:i]...), entries[i+1:]...)
			break
		}
	}

	updated := append([]Entry{entry}, rest...)
	if len(updated) > limit {
		updated = updated[:limit]
	}
	if err := s.persist(ctx, updated); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Rename sets an entry's display name. An empty name after trimming reverts
// the entry to its timestamp-derived name. Unknown ids are a no-op.
func (s *Service) Rename(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	entries := s.List(ctx)
	changed := false
	for i := range entries {
		if entries[i].ID == id {
			entries[i].Name = name
			entries[i].IsCustomName = name != ""
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.persist(ctx, entries)
}

// Delete removes every entry with the given id and returns the remainder.
func (s *Service) Delete(ctx context.Context, id int64) ([]Entry, error) {
	entries := s.List(ctx)
	remaining := entries[:0:0]
	for _, e := range entries {
		if e.ID != id {
			remaining = append(remaining, e)
		}
	}
	if err := s.persist(ctx, remaining); err != nil {
		return nil, err
	}
	return remaining, nil
}

// SetLimit persists a new history bound, truncating the current list from
// the tail when it exceeds the bound. A non-positive limit clears the list.
func (s *Service) SetLimit(ctx context.Context, n int) error {
	if err := s.store.Set(ctx, limitKey, n); err != nil {
		return err
	}
	if n <= 0 {
		return s.persist(ctx, []Entry{})
	}
	entries := s.List(ctx)
	if len(entries) <= n {
		return nil
	}
	return s.persist(ctx, entries[:n])
}

// GetLimit returns the configured bound, falling back to DefaultLimit when
// unset or unreadable.
func (s *Service) GetLimit(ctx context.Context) int {
	raw, found, err := s.store.Get(ctx, limitKey)
	if err != nil {
		s.logger.Warn().Err(err).Msg("history limit read failed, using default")
		return DefaultLimit
	}
	if !found {
		return DefaultLimit
	}
	var limit int
	if err := json.Unmarshal(raw, &limit); err != nil {
		s.logger.Warn().Err(err).Msg("history limit is corrupted, using default")
		return DefaultLimit
	}
	if limit < 0 {
		// A non-positive limit means an empty list; negative values must not
		// reach the truncation slice in Add.
		return 0
	}
	return limit
}

func (s *Service) persist(ctx context.Context, entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}
	return s.store.Set(ctx, historyKey, entries)
}

// nextID derives a millisecond id, bumping past collisions with entries
// created in the same millisecond.
func (s *Service) nextID(entries []Entry) int64 {
	id := s.now().UnixMilli()
	for {
		collision := false
		for _, e := range entries {
			if e.ID == id {
				collision = true
				break
			}
		}
		if !collision {
			return id
		}
		id++
	}
}
