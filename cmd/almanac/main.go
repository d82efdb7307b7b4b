package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/celestialworks/almanac/ephemeris"
	"github.com/celestialworks/almanac/internal/geocode"
	"github.com/celestialworks/almanac/internal/logging"
	"github.com/celestialworks/almanac/internal/report"
	"github.com/celestialworks/almanac/internal/storage"
	"github.com/celestialworks/almanac/internal/storage/sqlite"
	"github.com/celestialworks/almanac/model"
)

func main() {
	profilePath := flag.String("profile", "", "Path to a YAML profile file (takes precedence over -store)")
	storePath := flag.String("store", "", "Path to a SQLite store to read the profile from and cache entries into")
	profileID := flag.String("profile-id", "", "Profile ID inside the store (used with -store)")
	dateStr := flag.String("date", time.Now().UTC().Format(model.DateLayout), "Target date, YYYY-MM-DD")
	days := flag.Int("days", 1, "Number of consecutive days to generate")
	tablePath := flag.String("ephemeris", "", "Path to a JSON ephemeris table enabling the precise backend")
	format := flag.String("format", "text", "Output format: text or json")
	geocodePlace := flag.String(
		"geocode",
		"",
		"Look up a place name, print its coordinates and time zone, and exit",
	)
	flag.Parse()

	ctx := context.Background()

	if *geocodePlace != "" {
		lookupPlace(ctx, *geocodePlace)
		return
	}

	if *format != "text" && *format != "json" {
		fatalf("unknown format %q (want text or json)", *format)
	}

	date, err := time.Parse(model.DateLayout, *dateStr)
	if err != nil {
		fatalf("invalid date %q: want YYYY-MM-DD", *dateStr)
	}

	var store storage.Store
	var profile model.UserProfile
	switch {
	case *profilePath != "":
		profile, err = model.LoadProfile(*profilePath)
		if err != nil {
			fatalf("%v", err)
		}
	case *storePath != "" && *profileID != "":
		store, err = sqlite.Open(*storePath)
		if err != nil {
			fatalf("open store: %v", err)
		}
		defer store.Close()
		profile, err = store.GetProfile(ctx, *profileID)
		if err != nil {
			fatalf("load profile %q: %v", *profileID, err)
		}
	default:
		fatalf("either -profile or both -store and -profile-id are required")
	}

	engine, err := buildEngine(*tablePath)
	if err != nil {
		fatalf("load ephemeris table: %v", err)
	}

	generator := report.New(engine, logging.Noop())

	entries, err := generator.GenerateRange(ctx, profile, date, *days)
	if err != nil {
		fatalf("generate: %v", err)
	}

	if store != nil {
		for _, e := range entries {
			if err := store.PutEntry(ctx, e); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to cache entry for %s: %v\n", e.Date, err)
			}
		}
	}

	switch *format {
	case "json":
		var raw []byte
		if len(entries) == 1 {
			raw, err = json.MarshalIndent(entries[0], "", "  ")
		} else {
			raw, err = json.MarshalIndent(entries, "", "  ")
		}
		if err != nil {
			fatalf("encode entries: %v", err)
		}
		fmt.Println(string(raw))
	default:
		for i, e := range entries {
			if i > 0 {
				fmt.Println()
			}
			fmt.Print(report.RenderText(e))
		}
	}
}

func lookupPlace(ctx context.Context, place string) {
	loc, err := geocode.New(geocode.Config{}).Lookup(ctx, place)
	if err != nil {
		fatalf("geocode %q: %v", place, err)
	}
	name := loc.DisplayName
	if name == "" {
		name = loc.Place
	}
	fmt.Printf("%s\n", name)
	fmt.Printf("  latitude:  %.6f\n", loc.Latitude)
	fmt.Printf("  longitude: %.6f\n", loc.Longitude)
	if loc.Timezone != "" {
		fmt.Printf("  time zone: %s\n", loc.Timezone)
	}
}

func buildEngine(tablePath string) (*ephemeris.Engine, error) {
	if tablePath == "" {
		return ephemeris.New(), nil
	}
	backend, err := ephemeris.LoadTableFile(tablePath)
	if err != nil {
		return nil, err
	}
	return ephemeris.New(ephemeris.WithBackend(backend)), nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "almanac: "+format+"\n", args...)
	os.Exit(1)
}
