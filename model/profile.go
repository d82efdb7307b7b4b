package model

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DateLayout is the civil date format used in profile files, entry keys,
// and API parameters.
const DateLayout = "2006-01-02"

// BirthData captures the birth moment a profile's calculations anchor
// on. Only the date drives the engine; the clock time is kept for
// display and for a future exact-houses upgrade.
type BirthData struct {
	Date      time.Time `json:"date" yaml:"date"`
	TimeKnown bool      `json:"time_known" yaml:"time_known"`
	Hour      int       `json:"hour,omitempty" yaml:"hour,omitempty"`
	Minute    int       `json:"minute,omitempty" yaml:"minute,omitempty"`
}

// Location is a resolved birth or residence place.
type Location struct {
	Place       string  `json:"place" yaml:"place"`
	Latitude    float64 `json:"latitude" yaml:"latitude"`
	Longitude   float64 `json:"longitude" yaml:"longitude"`
	Timezone    string  `json:"timezone" yaml:"timezone"`
	DisplayName string  `json:"display_name,omitempty" yaml:"display_name,omitempty"`
}

// UserProfile is the stored subject of report generation.
type UserProfile struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Birth     BirthData `json:"birth" yaml:"birth"`
	Location  Location  `json:"location" yaml:"location"`
	CreatedAt time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// Validate checks the fields report generation depends on.
func (p UserProfile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("profile name is required")
	}
	if p.Birth.Date.IsZero() {
		return fmt.Errorf("profile birth date is required")
	}
	if p.Birth.Hour < 0 || p.Birth.Hour > 23 || p.Birth.Minute < 0 || p.Birth.Minute > 59 {
		return fmt.Errorf("profile birth time %02d:%02d out of range", p.Birth.Hour, p.Birth.Minute)
	}
	if p.Location.Latitude < -90 || p.Location.Latitude > 90 {
		return fmt.Errorf("profile latitude %v out of range", p.Location.Latitude)
	}
	if p.Location.Longitude < -180 || p.Location.Longitude > 180 {
		return fmt.Errorf("profile longitude %v out of range", p.Location.Longitude)
	}
	return nil
}

// LoadProfile reads a profile from a YAML file.
func LoadProfile(path string) (UserProfile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return UserProfile{}, fmt.Errorf("reading profile %q: %w", path, err)
	}
	var p UserProfile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return UserProfile{}, fmt.Errorf("parsing profile %q: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return UserProfile{}, fmt.Errorf("profile %q: %w", path, err)
	}
	return p, nil
}

// Save writes the profile to a YAML file.
func (p UserProfile) Save(path string) error {
	raw, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing profile %q: %w", path, err)
	}
	return nil
}
