package generation

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/rs/zerolog"

	"chapter-api/internal/infrastructure/logger"
	"chapter-api/internal/infrastructure/storage"
)

const sessionsKey = "generation_sessions"

// SessionStore persists finished generation records for later retrieval.
// All sessions live under one storage key as a single document.
type SessionStore struct {
	store  storage.Adapter
	logger zerolog.Logger
}

// NewSessionStore builds the store over a storage adapter.
func NewSessionStore(store storage.Adapter) *SessionStore {
	return &SessionStore{
		store:  store,
		logger: logger.ForComponent("sessions"),
	}
}

func (s *SessionStore) load(ctx context.Context) map[string]Session {
	raw, found, err := s.store.Get(ctx, sessionsKey)
	if err != nil {
		s.logger.Warn().Err(err).Msg("sessions read failed, using empty set")
		return map[string]Session{}
	}
	if !found {
		return map[string]Session{}
	}
	var sessions map[string]Session
	if err := json.Unmarshal(raw, &sessions); err != nil {
		s.logger.Warn().Err(err).Msg("sessions record is corrupted, using empty set")
		return map[string]Session{}
	}
	return sessions
}

// Save flattens and persists a record, replacing any session with the same
// id.
func (s *SessionStore) Save(ctx context.Context, record *Record) (Session, error) {
	session, err := record.ToSession()
	if err != nil {
		return Session{}, err
	}
	sessions := s.load(ctx)
	sessions[session.ID] = session
	if err := s.store.Set(ctx, sessionsKey, sessions); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Get returns the session with the given id.
func (s *SessionStore) Get(ctx context.Context, id string) (Session, bool) {
	session, ok := s.load(ctx)[id]
	return session, ok
}

// List returns all sessions, newest first.
func (s *SessionStore) List(ctx context.Context) []Session {
	sessions := s.load(ctx)
	list := make([]Session, 0, len(sessions))
	for _, session := range sessions {
		list = append(list, session)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list
}

// Delete removes the session with the given id. Unknown ids are a no-op.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	sessions := s.load(ctx)
	if _, ok := sessions[id]; !ok {
		return nil
	}
	delete(sessions, id)
	return s.store.Set(ctx, sessionsKey, sessions)
}
