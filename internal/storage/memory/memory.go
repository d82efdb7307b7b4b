// Package memory is the in-memory Store used by tests and by server
// runs without a configured database.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/celestialworks/almanac/internal/storage"
	"github.com/celestialworks/almanac/model"
)

// Store is a thread-safe map-backed storage.Store.
type Store struct {
	mu       sync.RWMutex
	profiles map[string]model.UserProfile
	entries  map[string]model.DailyEntry
}

// New constructs an empty store.
func New() *Store {
	return &Store{
		profiles: make(map[string]model.UserProfile),
		entries:  make(map[string]model.DailyEntry),
	}
}

func entryKey(profileID, date string) string {
	return profileID + "/" + date
}

// CreateProfile adds a new profile. The ID must be unused.
func (s *Store) CreateProfile(ctx context.Context, p model.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.profiles[p.ID]; exists {
		return fmt.Errorf("%w: %q", storage.ErrProfileExists, p.ID)
	}
	s.profiles[p.ID] = p
	return nil
}

// GetProfile returns the profile with the given ID.
func (s *Store) GetProfile(ctx context.Context, id string) (model.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[id]
	if !ok {
		return model.UserProfile{}, fmt.Errorf("%w: %q", storage.ErrProfileNotFound, id)
	}
	return p, nil
}

// ListProfiles returns a snapshot of all profiles ordered by creation
// time, then ID, so listings are stable across calls.
func (s *Store) ListProfiles(ctx context.Context) ([]model.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]model.UserProfile, 0, len(s.profiles))
	for _, p := range s.profiles {
		res = append(res, p)
	}
	sort.Slice(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.Before(res[j].CreatedAt)
		}
		return res[i].ID < res[j].ID
	})
	return res, nil
}

// UpdateProfile replaces an existing profile.
func (s *Store) UpdateProfile(ctx context.Context, p model.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[p.ID]; !ok {
		return fmt.Errorf("%w: %q", storage.ErrProfileNotFound, p.ID)
	}
	s.profiles[p.ID] = p
	return nil
}

// DeleteProfile removes a profile and any entries cached for it.
func (s *Store) DeleteProfile(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[id]; !ok {
		return fmt.Errorf("%w: %q", storage.ErrProfileNotFound, id)
	}
	delete(s.profiles, id)
	for key, e := range s.entries {
		if e.ProfileID == id {
			delete(s.entries, key)
		}
	}
	return nil
}

// PutEntry stores or replaces a cached entry for a known profile.
func (s *Store) PutEntry(ctx context.Context, e model.DailyEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[e.ProfileID]; !ok {
		return fmt.Errorf("%w: %q", storage.ErrProfileNotFound, e.ProfileID)
	}
	s.entries[entryKey(e.ProfileID, e.Date)] = e
	return nil
}

// GetEntry returns the cached entry for a profile and date.
func (s *Store) GetEntry(ctx context.Context, profileID, date string) (model.DailyEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[entryKey(profileID, date)]
	if !ok {
		return model.DailyEntry{}, fmt.Errorf("%w: profile %q date %q", storage.ErrEntryNotFound, profileID, date)
	}
	return e, nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error { return nil }

var _ storage.Store = (*Store)(nil)
