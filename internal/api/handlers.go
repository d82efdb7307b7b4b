// internal/api/handlers.go
package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/celestialworks/almanac/ephemeris"
	"github.com/celestialworks/almanac/internal/geocode"
	"github.com/celestialworks/almanac/internal/logging"
	"github.com/celestialworks/almanac/internal/observability"
	"github.com/celestialworks/almanac/internal/report"
	"github.com/celestialworks/almanac/internal/storage"
	"github.com/celestialworks/almanac/model"
)

// handlers carries the wired dependencies for every endpoint.
type handlers struct {
	log       logging.Logger
	store     storage.Store
	generator *report.Generator
	engine    *ephemeris.Engine
	geocoder  geocode.Geocoder
	collector *observability.Collector
}

type positionsResponse struct {
	Date      string                `json:"date"`
	Mode      string                `json:"mode"`
	Degraded  bool                  `json:"degraded"`
	Positions []model.BodyPlacement `json:"positions"`
}

type aspectsResponse struct {
	Date     string                `json:"date"`
	Mode     string                `json:"mode"`
	Degraded bool                  `json:"degraded"`
	Aspects  []model.AspectSummary `json:"aspects"`
}

type gatesResponse struct {
	Date     string              `json:"date"`
	Mode     string              `json:"mode"`
	Degraded bool                `json:"degraded"`
	Gates    []model.GateSummary `json:"gates"`
}

type calendarResponse struct {
	ProfileID string             `json:"profile_id"`
	Start     string             `json:"start"`
	Days      int                `json:"days"`
	Entries   []model.DailyEntry `json:"entries"`
}

// GET /healthz
func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"mode":   h.engine.Mode(),
	})
}

// GET /v1/positions?date=
func (h *handlers) positions(c *gin.Context) {
	date, err := parseDateParam(c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	set, err := h.engine.AllPositions(date)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, positionsResponse{
		Date:      date.Format(model.DateLayout),
		Mode:      h.engine.Mode(),
		Degraded:  set.Degraded(),
		Positions: placementsFor(set),
	})
}

// GET /v1/aspects?date=
func (h *handlers) aspects(c *gin.Context) {
	date, err := parseDateParam(c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	set, err := h.engine.AllPositions(date)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := aspectsResponse{
		Date:     date.Format(model.DateLayout),
		Mode:     h.engine.Mode(),
		Degraded: set.Degraded(),
		Aspects:  []model.AspectSummary{},
	}
	if !set.Degraded() {
		for _, m := range ephemeris.AspectsAmong(set, nil) {
			resp.Aspects = append(resp.Aspects, model.AspectSummary{
				BodyA:      string(m.BodyA),
				BodyB:      string(m.BodyB),
				Aspect:     m.Aspect.Name,
				Glyph:      m.Aspect.Glyph,
				Separation: m.Separation,
				Quality:    m.Quality,
			})
		}
	}
	c.JSON(http.StatusOK, resp)
}

// GET /v1/gates?date=
func (h *handlers) gates(c *gin.Context) {
	date, err := parseDateParam(c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	set, err := h.engine.AllPositions(date)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gatesResponse{
		Date:     date.Format(model.DateLayout),
		Mode:     h.engine.Mode(),
		Degraded: set.Degraded(),
		Gates:    []model.GateSummary{},
	}
	if !set.Degraded() {
		for _, ga := range ephemeris.GatesFor(set) {
			resp.Gates = append(resp.Gates, model.GateSummary{
				Body: string(ga.Body),
				Gate: ga.Gate,
				Line: ga.Line,
			})
		}
	}
	c.JSON(http.StatusOK, resp)
}

// POST /v1/profiles
func (h *handlers) createProfile(c *gin.Context) {
	var req createProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return
	}
	birth, err := req.birthData()
	if err != nil {
		respondError(c, err)
		return
	}

	profile := model.UserProfile{
		ID:    uuid.NewString(),
		Name:  strings.TrimSpace(req.Name),
		Birth: birth,
	}
	switch {
	case req.Location != nil:
		profile.Location = *req.Location
	case strings.TrimSpace(req.Place) != "":
		if h.geocoder == nil {
			respondError(c, fmt.Errorf("%w: place lookup is not configured", ErrInvalidRequest))
			return
		}
		loc, err := h.geocoder.Lookup(c.Request.Context(), req.Place)
		if err != nil {
			respondError(c, err)
			return
		}
		profile.Location = loc
	}

	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	if err := h.store.CreateProfile(c.Request.Context(), profile); err != nil {
		respondError(c, err)
		return
	}
	h.updateProfileGauge(c)

	c.JSON(http.StatusCreated, profile)
}

// GET /v1/profiles
func (h *handlers) listProfiles(c *gin.Context) {
	profiles, err := h.store.ListProfiles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if profiles == nil {
		profiles = []model.UserProfile{}
	}
	c.JSON(http.StatusOK, gin.H{"profiles": profiles})
}

// GET /v1/profiles/:id
func (h *handlers) getProfile(c *gin.Context) {
	profile, err := h.store.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// PUT /v1/profiles/:id
func (h *handlers) updateProfile(c *gin.Context) {
	var req createProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return
	}
	birth, err := req.birthData()
	if err != nil {
		respondError(c, err)
		return
	}

	existing, err := h.store.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	existing.Name = strings.TrimSpace(req.Name)
	existing.Birth = birth
	if req.Location != nil {
		existing.Location = *req.Location
	}
	existing.UpdatedAt = time.Now().UTC()

	if err := h.store.UpdateProfile(c.Request.Context(), existing); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, existing)
}

// DELETE /v1/profiles/:id
func (h *handlers) deleteProfile(c *gin.Context) {
	if err := h.store.DeleteProfile(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	h.updateProfileGauge(c)
	c.Status(http.StatusNoContent)
}

// GET /v1/profiles/:id/report?date=&refresh=
func (h *handlers) report(c *gin.Context) {
	ctx := c.Request.Context()
	date, err := parseDateParam(c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	profile, err := h.store.GetProfile(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	dateKey := date.Format(model.DateLayout)
	refresh := c.Query("refresh") == "1" || strings.EqualFold(c.Query("refresh"), "true")
	if !refresh {
		if cached, err := h.store.GetEntry(ctx, profile.ID, dateKey); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	entry, err := h.generator.Generate(ctx, profile, date)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.store.PutEntry(ctx, entry); err != nil {
		h.log.Warn(ctx, "caching entry failed",
			logging.String("profile_id", profile.ID),
			logging.String("date", dateKey),
			logging.String("error", err.Error()),
		)
	}
	c.JSON(http.StatusOK, entry)
}

// GET /v1/profiles/:id/calendar?start=&days=
func (h *handlers) calendar(c *gin.Context) {
	ctx := c.Request.Context()
	start, err := parseDateParam(c.Query("start"))
	if err != nil {
		respondError(c, err)
		return
	}
	days, err := parseDaysParam(c.Query("days"))
	if err != nil {
		respondError(c, err)
		return
	}
	profile, err := h.store.GetProfile(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	entries, err := h.generator.GenerateRange(ctx, profile, start, days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, calendarResponse{
		ProfileID: profile.ID,
		Start:     start.Format(model.DateLayout),
		Days:      days,
		Entries:   entries,
	})
}

// updateProfileGauge refreshes the stored-profile metric after writes.
func (h *handlers) updateProfileGauge(c *gin.Context) {
	if h.collector == nil {
		return
	}
	profiles, err := h.store.ListProfiles(c.Request.Context())
	if err != nil {
		return
	}
	h.collector.SetProfilesStored(len(profiles))
}

func placementsFor(set ephemeris.PositionSet) []model.BodyPlacement {
	out := make([]model.BodyPlacement, 0, len(set))
	for _, bp := range set {
		out = append(out, model.BodyPlacement{
			Body:      string(bp.Body),
			Longitude: bp.Longitude,
			Sign:      ephemeris.SignFor(bp.Longitude).Name,
		})
	}
	return out
}
