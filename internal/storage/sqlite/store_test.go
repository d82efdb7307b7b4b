package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/celestialworks/almanac/internal/storage"
	"github.com/celestialworks/almanac/model"
	msqlite "modernc.org/sqlite"
)

type opaqueWrapError struct {
	cause error
}

func (e opaqueWrapError) Error() string {
	return "wrapped database error"
}

func (e opaqueWrapError) Unwrap() error {
	return e.cause
}

type asSQLiteErrorWithUniqueMessage struct{}

func (e asSQLiteErrorWithUniqueMessage) Error() string {
	return "UNIQUE constraint failed: profiles.id"
}

func (e asSQLiteErrorWithUniqueMessage) As(target any) bool {
	sqliteErrPtr, ok := target.(**msqlite.Error)
	if !ok {
		return false
	}
	// Zero value mimics an unexpected/non-unique code while preserving typed matching.
	*sqliteErrPtr = &msqlite.Error{}
	return true
}

func profile(id string, created time.Time) model.UserProfile {
	return model.UserProfile{
		ID:   id,
		Name: "Profile " + id,
		Birth: model.BirthData{
			Date:      time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
			TimeKnown: true,
			Hour:      14,
			Minute:    30,
		},
		Location: model.Location{
			Place:       "Lisbon",
			Latitude:    38.716667,
			Longitude:   -9.139,
			Timezone:    "Europe/Lisbon",
			DisplayName: "Lisbon, Portugal",
		},
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := Open("   "); err == nil {
		t.Fatal("expected error for blank storage path")
	}
}

func TestProfileRoundTrip(t *testing.T) {
	store, err := Open(t.TempDir() + "/almanac.db")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	now := time.Date(2026, time.August, 23, 12, 0, 0, 0, time.UTC)
	want := profile("p-1", now)
	if err := store.CreateProfile(context.Background(), want); err != nil {
		t.Fatalf("create profile: %v", err)
	}

	got, err := store.GetProfile(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if got.ID != want.ID || got.Name != want.Name {
		t.Fatalf("profile = %q/%q, want %q/%q", got.ID, got.Name, want.ID, want.Name)
	}
	if !got.Birth.Date.Equal(want.Birth.Date) {
		t.Fatalf("birth date = %v, want %v", got.Birth.Date, want.Birth.Date)
	}
	if !got.Birth.TimeKnown || got.Birth.Hour != 14 || got.Birth.Minute != 30 {
		t.Fatalf("birth time = %+v, want known 14:30", got.Birth)
	}
	if got.Location != want.Location {
		t.Fatalf("location = %+v, want %+v", got.Location, want.Location)
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("created_at = %v, want %v", got.CreatedAt, now)
	}
	if !got.UpdatedAt.Equal(now) {
		t.Fatalf("updated_at = %v, want %v", got.UpdatedAt, now)
	}
}

func TestCreateDuplicateProfile(t *testing.T) {
	store, err := Open(t.TempDir() + "/almanac.db")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	now := time.Date(2026, time.August, 23, 12, 0, 0, 0, time.UTC)
	if err := store.CreateProfile(context.Background(), profile("p-1", now)); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	err = store.CreateProfile(context.Background(), profile("p-1", now))
	if !errors.Is(err, storage.ErrProfileExists) {
		t.Fatalf("duplicate create err = %v, want %v", err, storage.ErrProfileExists)
	}
}

func TestGetProfileNotFound(t *testing.T) {
	store, err := Open(t.TempDir() + "/almanac.db")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	if _, err := store.GetProfile(context.Background(), "ghost"); !errors.Is(err, storage.ErrProfileNotFound) {
		t.Fatalf("get missing err = %v, want %v", err, storage.ErrProfileNotFound)
	}
}

func TestUpdateProfile(t *testing.T) {
	store, err := Open(t.TempDir() + "/almanac.db")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	now := time.Date(2026, time.August, 23, 12, 0, 0, 0, time.UTC)
	p := profile("p-1", now)
	if err := store.CreateProfile(context.Background(), p); err != nil {
		t.Fatalf("create profile: %v", err)
	}

	p.Name = "Renamed"
	p.Birth.Date = time.Date(1991, 1, 2, 0, 0, 0, 0, time.UTC)
	p.Location.Place = "Porto"
	p.UpdatedAt = now.Add(time.Hour)
	if err := store.UpdateProfile(context.Background(), p); err != nil {
		t.Fatalf("update profile: %v", err)
	}

	got, err := store.GetProfile(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if got.Name != "Renamed" || got.Location.Place != "Porto" {
		t.Fatalf("updated profile = %q/%q, want Renamed/Porto", got.Name, got.Location.Place)
	}
	if !got.Birth.Date.Equal(p.Birth.Date) {
		t.Fatalf("updated birth date = %v, want %v", got.Birth.Date, p.Birth.Date)
	}
	if !got.UpdatedAt.Equal(p.UpdatedAt) {
		t.Fatalf("updated_at = %v, want %v", got.UpdatedAt, p.UpdatedAt)
	}

	ghost := profile("ghost", now)
	if err := store.UpdateProfile(context.Background(), ghost); !errors.Is(err, storage.ErrProfileNotFound) {
		t.Fatalf("update missing err = %v, want %v", err, storage.ErrProfileNotFound)
	}
}

func TestListProfilesOrdered(t *testing.T) {
	store, err := Open(t.TempDir() + "/almanac.db")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	base := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	if err := store.CreateProfile(context.Background(), profile("b", base.Add(time.Hour))); err != nil {
		t.Fatalf("create profile b: %v", err)
	}
	if err := store.CreateProfile(context.Background(), profile("c", base)); err != nil {
		t.Fatalf("create profile c: %v", err)
	}
	if err := store.CreateProfile(context.Background(), profile("a", base)); err != nil {
		t.Fatalf("create profile a: %v", err)
	}

	list, err := store.ListProfiles(context.Background())
	if err != nil {
		t.Fatalf("list profiles: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("profiles len = %d, want 3", len(list))
	}
	wantOrder := []string{"a", "c", "b"}
	for i, want := range wantOrder {
		if list[i].ID != want {
			t.Fatalf("list[%d] = %q, want %q", i, list[i].ID, want)
		}
	}
}

func TestEntryLifecycle(t *testing.T) {
	store, err := Open(t.TempDir() + "/almanac.db")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if _, err := store.GetEntry(ctx, "p-1", "2026-08-23"); !errors.Is(err, storage.ErrEntryNotFound) {
		t.Fatalf("cold cache err = %v, want %v", err, storage.ErrEntryNotFound)
	}

	generated := time.Date(2026, time.August, 23, 6, 0, 0, 0, time.UTC)
	entry := model.DailyEntry{
		ProfileID: "p-1",
		Date:      "2026-08-23",
		Weekday:   "Sunday",
		Mode:      "precise",
		Sun: model.SunSummary{
			Longitude: 150.5,
			Sign:      "Virgo",
			Element:   "Earth",
			Modality:  "Mutable",
			House:     3,
		},
		Positions: []model.BodyPlacement{
			{Body: "Sun", Longitude: 150.5, Sign: "Virgo"},
			{Body: "Moon", Longitude: 12.0, Sign: "Aries"},
		},
		Aspects: []model.AspectSummary{
			{BodyA: "Sun", BodyB: "Moon", Aspect: "Trine", Separation: 138.5},
		},
		GeneratedAt: generated,
	}

	if err := store.PutEntry(ctx, entry); !errors.Is(err, storage.ErrProfileNotFound) {
		t.Fatalf("put for unknown profile err = %v, want %v", err, storage.ErrProfileNotFound)
	}

	now := time.Date(2026, time.August, 23, 12, 0, 0, 0, time.UTC)
	if err := store.CreateProfile(ctx, profile("p-1", now)); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if err := store.PutEntry(ctx, entry); err != nil {
		t.Fatalf("put entry: %v", err)
	}

	got, err := store.GetEntry(ctx, "p-1", "2026-08-23")
	if err != nil {
		t.Fatalf("get entry: %v", err)
	}
	if got.Mode != "precise" || got.Sun.Sign != "Virgo" {
		t.Fatalf("entry = %q/%q, want precise/Virgo", got.Mode, got.Sun.Sign)
	}
	if len(got.Positions) != 2 || len(got.Aspects) != 1 {
		t.Fatalf("entry payload lens = %d/%d, want 2/1", len(got.Positions), len(got.Aspects))
	}
	if !got.GeneratedAt.Equal(generated) {
		t.Fatalf("generated_at = %v, want %v", got.GeneratedAt, generated)
	}

	entry.Mode = "fallback"
	entry.GeneratedAt = generated.Add(time.Hour)
	if err := store.PutEntry(ctx, entry); err != nil {
		t.Fatalf("overwrite entry: %v", err)
	}
	got, err = store.GetEntry(ctx, "p-1", "2026-08-23")
	if err != nil {
		t.Fatalf("get entry after overwrite: %v", err)
	}
	if got.Mode != "fallback" {
		t.Fatalf("entry mode after overwrite = %q, want fallback", got.Mode)
	}
}

func TestDeleteProfileDropsEntries(t *testing.T) {
	store, err := Open(t.TempDir() + "/almanac.db")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	now := time.Date(2026, time.August, 23, 12, 0, 0, 0, time.UTC)
	if err := store.CreateProfile(ctx, profile("p-1", now)); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if err := store.PutEntry(ctx, model.DailyEntry{ProfileID: "p-1", Date: "2026-08-23", GeneratedAt: now}); err != nil {
		t.Fatalf("put entry: %v", err)
	}

	if err := store.DeleteProfile(ctx, "p-1"); err != nil {
		t.Fatalf("delete profile: %v", err)
	}
	if _, err := store.GetProfile(ctx, "p-1"); !errors.Is(err, storage.ErrProfileNotFound) {
		t.Fatalf("get after delete err = %v, want %v", err, storage.ErrProfileNotFound)
	}
	if _, err := store.GetEntry(ctx, "p-1", "2026-08-23"); !errors.Is(err, storage.ErrEntryNotFound) {
		t.Fatalf("entry survived profile deletion: err = %v", err)
	}
	if err := store.DeleteProfile(ctx, "p-1"); !errors.Is(err, storage.ErrProfileNotFound) {
		t.Fatalf("second delete err = %v, want %v", err, storage.ErrProfileNotFound)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := t.TempDir() + "/almanac.db"
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	now := time.Date(2026, time.August, 23, 12, 0, 0, 0, time.UTC)
	if err := store.CreateProfile(context.Background(), profile("p-1", now)); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.GetProfile(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("get profile after reopen: %v", err)
	}
	if got.Name != "Profile p-1" {
		t.Fatalf("profile name after reopen = %q, want %q", got.Name, "Profile p-1")
	}
}

func TestIsUniqueViolationUsesSQLiteErrorCode(t *testing.T) {
	store, err := Open(t.TempDir() + "/almanac.db")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	now := time.Date(2026, time.August, 23, 12, 0, 0, 0, time.UTC)
	if err := store.CreateProfile(context.Background(), profile("p-1", now)); err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	_, err = store.sqlDB.ExecContext(
		context.Background(),
		`INSERT INTO profiles (
		   id, name, birth_date, birth_time_known, birth_hour, birth_minute,
		   place, latitude, longitude, timezone, display_name, created_at, updated_at
		 ) VALUES (?, ?, ?, 0, 0, 0, '', 0, 0, '', '', 0, 0)`,
		"p-1", "dup", "1990-06-15",
	)
	if err == nil {
		t.Fatal("expected unique constraint error")
	}

	wrapped := opaqueWrapError{cause: err}
	if !isUniqueViolation(wrapped) {
		t.Fatalf("isUniqueViolation(%T) = false, want true", wrapped)
	}
}

func TestIsUniqueViolationFallsBackToMessageWhenSQLiteCodeIsUnexpected(t *testing.T) {
	err := asSQLiteErrorWithUniqueMessage{}
	if !isUniqueViolation(err) {
		t.Fatalf("isUniqueViolation(%T) = false, want true", err)
	}
}
