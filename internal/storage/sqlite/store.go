// Package sqlite provides the SQLite-backed storage.Store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/celestialworks/almanac/internal/storage"
	"github.com/celestialworks/almanac/internal/storage/sqlite/migrations"
	"github.com/celestialworks/almanac/model"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists profiles and cached entries in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite store at path and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL&_pragma=foreign_keys(ON)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := ensureForeignKeysEnabled(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	if err := applyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Entry deletion on profile removal relies on the foreign key cascade,
// so refuse to run against a connection where the pragma did not stick.
func ensureForeignKeysEnabled(db *sql.DB) error {
	var enabled int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
		return fmt.Errorf("check sqlite foreign key pragma: %w", err)
	}
	if enabled != 1 {
		return fmt.Errorf("sqlite foreign keys are disabled")
	}
	return nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// CreateProfile inserts one profile record.
func (s *Store) CreateProfile(ctx context.Context, p model.UserProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("profile id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO profiles (
		   id, name, birth_date, birth_time_known, birth_hour, birth_minute,
		   place, latitude, longitude, timezone, display_name,
		   created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID,
		p.Name,
		p.Birth.Date.Format(model.DateLayout),
		boolToInt(p.Birth.TimeKnown),
		p.Birth.Hour,
		p.Birth.Minute,
		p.Location.Place,
		p.Location.Latitude,
		p.Location.Longitude,
		p.Location.Timezone,
		p.Location.DisplayName,
		toMillis(p.CreatedAt),
		toMillis(p.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %q", storage.ErrProfileExists, p.ID)
		}
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

// GetProfile returns one profile by ID.
func (s *Store) GetProfile(ctx context.Context, id string) (model.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return model.UserProfile{}, err
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, name, birth_date, birth_time_known, birth_hour, birth_minute,
		        place, latitude, longitude, timezone, display_name,
		        created_at, updated_at
		   FROM profiles
		  WHERE id = ?`,
		id,
	)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.UserProfile{}, fmt.Errorf("%w: %q", storage.ErrProfileNotFound, id)
		}
		return model.UserProfile{}, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// ListProfiles returns every profile ordered by creation time, then ID.
func (s *Store) ListProfiles(ctx context.Context) ([]model.UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, name, birth_date, birth_time_known, birth_hour, birth_minute,
		        place, latitude, longitude, timezone, display_name,
		        created_at, updated_at
		   FROM profiles
		  ORDER BY created_at ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var res []model.UserProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		res = append(res, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return res, nil
}

// UpdateProfile replaces an existing profile record.
func (s *Store) UpdateProfile(ctx context.Context, p model.UserProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE profiles
		    SET name = ?, birth_date = ?, birth_time_known = ?, birth_hour = ?,
		        birth_minute = ?, place = ?, latitude = ?, longitude = ?,
		        timezone = ?, display_name = ?, updated_at = ?
		  WHERE id = ?`,
		p.Name,
		p.Birth.Date.Format(model.DateLayout),
		boolToInt(p.Birth.TimeKnown),
		p.Birth.Hour,
		p.Birth.Minute,
		p.Location.Place,
		p.Location.Latitude,
		p.Location.Longitude,
		p.Location.Timezone,
		p.Location.DisplayName,
		toMillis(p.UpdatedAt),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %q", storage.ErrProfileNotFound, p.ID)
	}
	return nil
}

// DeleteProfile removes a profile; its cached entries cascade away.
func (s *Store) DeleteProfile(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %q", storage.ErrProfileNotFound, id)
	}
	return nil
}

// PutEntry stores or replaces the cached entry for a profile and date.
func (s *Store) PutEntry(ctx context.Context, e model.DailyEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}
	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO entries (profile_id, date, payload, generated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (profile_id, date)
		 DO UPDATE SET payload = excluded.payload, generated_at = excluded.generated_at`,
		e.ProfileID,
		e.Date,
		string(payload),
		toMillis(e.GeneratedAt),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: %q", storage.ErrProfileNotFound, e.ProfileID)
		}
		return fmt.Errorf("put entry: %w", err)
	}
	return nil
}

// GetEntry returns the cached entry for a profile and date.
func (s *Store) GetEntry(ctx context.Context, profileID, date string) (model.DailyEntry, error) {
	if err := ctx.Err(); err != nil {
		return model.DailyEntry{}, err
	}

	var payload string
	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT payload FROM entries WHERE profile_id = ? AND date = ?`,
		profileID, date,
	)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.DailyEntry{}, fmt.Errorf("%w: profile %q date %q", storage.ErrEntryNotFound, profileID, date)
		}
		return model.DailyEntry{}, fmt.Errorf("get entry: %w", err)
	}
	var e model.DailyEntry
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		return model.DailyEntry{}, fmt.Errorf("decode entry: %w", err)
	}
	return e, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (model.UserProfile, error) {
	var p model.UserProfile
	var birthDate string
	var timeKnown int
	var createdAt, updatedAt int64
	err := row.Scan(
		&p.ID,
		&p.Name,
		&birthDate,
		&timeKnown,
		&p.Birth.Hour,
		&p.Birth.Minute,
		&p.Location.Place,
		&p.Location.Latitude,
		&p.Location.Longitude,
		&p.Location.Timezone,
		&p.Location.DisplayName,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return model.UserProfile{}, err
	}
	date, err := time.Parse(model.DateLayout, birthDate)
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("birth date %q: %w", birthDate, err)
	}
	p.Birth.Date = date
	p.Birth.TimeKnown = timeKnown != 0
	p.CreatedAt = fromMillis(createdAt)
	p.UpdatedAt = fromMillis(updatedAt)
	return p, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint failed")
}

var _ storage.Store = (*Store)(nil)
