// Package snapshot keeps every user in memory and mirrors the whole set
// into a single serialized snapshot after each mutation.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/msomdec/interview-prep/internal/domain"
)

// StorageKey is the fixed key the user snapshot is stored under.
const StorageKey = "interviewProUsers"

const documentVersion = 1

type document struct {
	Version int           `json:"version"`
	Users   []domain.User `json:"users"`
}

// UserStore implements domain.UserRepository over a snapshot store.
// Reads are served from memory; every write rewrites the snapshot.
// It is safe for concurrent use.
type UserStore struct {
	mu    sync.Mutex
	store domain.SnapshotStore
	users map[string]*domain.User
	order []string
}

// Open loads the snapshot once and returns a ready store. A missing
// snapshot yields an empty store.
func Open(ctx context.Context, store domain.SnapshotStore) (*UserStore, error) {
	s := &UserStore{
		store: store,
		users: make(map[string]*domain.User),
	}

	data, err := store.Get(ctx, StorageKey)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s, nil
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if doc.Version != documentVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", doc.Version)
	}

	for i := range doc.Users {
		u := doc.Users[i]
		if u.Interviews == nil {
			u.Interviews = []domain.Interview{}
		}
		s.users[u.ID] = &u
		s.order = append(s.order, u.ID)
	}
	return s, nil
}

// Len returns the number of stored users.
func (s *UserStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u.Clone(), nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u := s.findByEmail(email); u != nil {
		return u.Clone(), nil
	}
	return nil, domain.ErrUserNotFound
}

// Save inserts or replaces the user by ID. Another user holding the same
// email (case-insensitive) is rejected with domain.ErrDuplicateEmail.
func (s *UserStore) Save(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if other := s.findByEmail(user.Email); other != nil && other.ID != user.ID {
		return domain.ErrDuplicateEmail
	}
	return s.commit(ctx, user.Clone())
}

func (s *UserStore) Update(ctx context.Context, id string, fn func(*domain.User) error) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	next.ID = id
	if other := s.findByEmail(next.Email); other != nil && other.ID != id {
		return nil, domain.ErrDuplicateEmail
	}

	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	return next.Clone(), nil
}

// AppendInterview adds a completed interview to the end of the user's
// history. Unknown users fail with domain.ErrUserNotFound.
func (s *UserStore) AppendInterview(ctx context.Context, userID string, interview *domain.Interview) error {
	if interview == nil || interview.Status != domain.InterviewStatusCompleted {
		return fmt.Errorf("%w: only completed interviews can be stored", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	for _, iv := range current.Interviews {
		if iv.ID == interview.ID {
			return fmt.Errorf("%w: interview %s already stored", domain.ErrInvalidInput, interview.ID)
		}
	}

	next := current.Clone()
	next.Interviews = append(next.Interviews, *interview.Clone())
	return s.commit(ctx, next)
}

// commit persists the snapshot with u applied and only then swaps u into
// memory, so a failed write leaves the store unchanged. Callers hold mu.
func (s *UserStore) commit(ctx context.Context, u *domain.User) error {
	_, exists := s.users[u.ID]

	doc := document{Version: documentVersion, Users: make([]domain.User, 0, len(s.order)+1)}
	for _, id := range s.order {
		if id == u.ID {
			doc.Users = append(doc.Users, *u)
			continue
		}
		doc.Users = append(doc.Users, *s.users[id])
	}
	if !exists {
		doc.Users = append(doc.Users, *u)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.store.Put(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	s.users[u.ID] = u
	if !exists {
		s.order = append(s.order, u.ID)
	}
	return nil
}

func (s *UserStore) findByEmail(email string) *domain.User {
	email = strings.TrimSpace(email)
	for _, id := range s.order {
		if u := s.users[id]; strings.EqualFold(u.Email, email) {
			return u
		}
	}
	return nil
}
