// Package storage defines the persistence boundary for profiles and
// generated daily entries, with in-memory and SQLite implementations in
// subpackages.
package storage

import (
	"context"
	"errors"

	"github.com/celestialworks/almanac/model"
)

var (
	// ErrProfileExists is returned when creating a profile whose ID is
	// already taken.
	ErrProfileExists = errors.New("profile already exists")
	// ErrProfileNotFound is returned for lookups of unknown profiles.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrEntryNotFound is returned when no entry is cached for a
	// profile and date.
	ErrEntryNotFound = errors.New("entry not found")
)

// Store persists user profiles and caches generated daily entries.
// Implementations are safe for concurrent use.
type Store interface {
	CreateProfile(ctx context.Context, p model.UserProfile) error
	GetProfile(ctx context.Context, id string) (model.UserProfile, error)
	ListProfiles(ctx context.Context) ([]model.UserProfile, error)
	UpdateProfile(ctx context.Context, p model.UserProfile) error
	DeleteProfile(ctx context.Context, id string) error

	// PutEntry stores or replaces the cached entry for its profile and
	// date. Regeneration overwrites. The profile must already exist;
	// otherwise ErrProfileNotFound is returned.
	PutEntry(ctx context.Context, e model.DailyEntry) error
	GetEntry(ctx context.Context, profileID, date string) (model.DailyEntry, error)

	Close() error
}
