package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/prodeapp/engine/internal/api/respond"
	"github.com/prodeapp/engine/internal/bracket"
	"github.com/prodeapp/engine/internal/cache"
	"github.com/prodeapp/engine/internal/tournament"
)

// TournamentInfo is the catalog listing entry.
type TournamentInfo struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Teams  int      `json:"teams"`
	Groups int      `json:"groups"`
	Rounds []string `json:"rounds"`
}

// StandingsResponse is the group-stage view of a tournament.
type StandingsResponse struct {
	TournamentID string                  `json:"tournament_id"`
	Groups       []tournament.GroupTable `json:"groups"`
}

// BracketResponse is the playoff view of a tournament.
type BracketResponse struct {
	TournamentID string                 `json:"tournament_id"`
	Rounds       []tournament.RoundView `json:"rounds"`
}

// ProjectionRequest carries a user's guessed outcomes for a catalog
// tournament.
type ProjectionRequest struct {
	Guesses []bracket.GameOutcome `json:"guesses"`
}

// ResolveRequest carries an inline definition plus optional guesses for
// stateless resolution.
type ResolveRequest struct {
	Definition tournament.Definition `json:"definition"`
	Guesses    []bracket.GameOutcome `json:"guesses,omitempty"`
}

// ListTournaments returns the loaded catalog.
// @Summary List tournaments
// @Description Returns every tournament definition loaded at startup, ordered by ID.
// @Tags tournaments
// @Produce json
// @Success 200 {array} handler.TournamentInfo
// @Router /api/v1/tournaments [get]
func (h *Handler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	const cacheKey = "tournaments:list"
	if h.serveCached(w, r, cacheKey, cache.TTLTournamentInfo) {
		return
	}

	defs := h.catalog.List()
	infos := make([]TournamentInfo, 0, len(defs))
	for _, def := range defs {
		rounds := make([]string, 0, len(def.Rounds))
		for _, round := range def.Rounds {
			rounds = append(rounds, round.Name)
		}
		infos = append(infos, TournamentInfo{
			ID:     def.ID,
			Name:   def.Name,
			Teams:  len(def.Teams),
			Groups: len(def.Groups),
			Rounds: rounds,
		})
	}

	h.writeCacheable(w, cacheKey, infos, cache.TTLTournamentInfo)
}

// GetStandings returns group standings computed from official results.
// @Summary Group standings
// @Description Computes every group's standings table from officially recorded results. Groups with undecided fixtures are returned with resolved=false and no table.
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {object} handler.StandingsResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/tournaments/{tournamentID}/standings [get]
func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "tournamentID")
	def, ok := h.catalog.Get(id)
	if !ok {
		respond.WriteError(w, http.StatusNotFound, "TOURNAMENT_NOT_FOUND", "Unknown tournament: "+id)
		return
	}

	cacheKey := "standings:" + id
	if h.serveCached(w, r, cacheKey, cache.TTLResolution) {
		return
	}

	res := tournament.Resolve(def, nil)
	h.writeCacheable(w, cacheKey, StandingsResponse{
		TournamentID: res.TournamentID,
		Groups:       res.Groups,
	}, cache.TTLResolution)
}

// GetBracket returns the playoff bracket computed from official results.
// @Summary Playoff bracket
// @Description Computes slot assignments for every playoff game from officially recorded results. Undetermined slots are omitted.
// @Tags tournaments
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Success 200 {object} handler.BracketResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/tournaments/{tournamentID}/bracket [get]
func (h *Handler) GetBracket(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "tournamentID")
	def, ok := h.catalog.Get(id)
	if !ok {
		respond.WriteError(w, http.StatusNotFound, "TOURNAMENT_NOT_FOUND", "Unknown tournament: "+id)
		return
	}

	cacheKey := "bracket:" + id
	if h.serveCached(w, r, cacheKey, cache.TTLResolution) {
		return
	}

	res := tournament.Resolve(def, nil)
	h.writeCacheable(w, cacheKey, BracketResponse{
		TournamentID: res.TournamentID,
		Rounds:       res.Rounds,
	}, cache.TTLResolution)
}

// PostProjection resolves a catalog tournament with the caller's guesses.
// @Summary What-if projection
// @Description Resolves the tournament using the caller's guessed outcomes wherever official results permit. A group with any official result ignores guesses for that entire group; playoff games fall back to guesses per game.
// @Tags tournaments
// @Accept json
// @Produce json
// @Param tournamentID path string true "Tournament ID"
// @Param request body handler.ProjectionRequest true "Guessed outcomes"
// @Success 200 {object} tournament.Resolution
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/tournaments/{tournamentID}/projection [post]
func (h *Handler) PostProjection(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "tournamentID")
	def, ok := h.catalog.Get(id)
	if !ok {
		respond.WriteError(w, http.StatusNotFound, "TOURNAMENT_NOT_FOUND", "Unknown tournament: "+id)
		return
	}

	var req ProjectionRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	res := tournament.Resolve(def, req.Guesses)
	respond.WriteJSONObject(w, http.StatusOK, res)
}

// PostResolve resolves an inline tournament definition.
// @Summary Stateless resolution
// @Description Validates and resolves a tournament definition supplied in the request body, without touching the catalog.
// @Tags resolve
// @Accept json
// @Produce json
// @Param request body handler.ResolveRequest true "Definition and optional guesses"
// @Success 200 {object} tournament.Resolution
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/resolve [post]
func (h *Handler) PostResolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	if err := req.Definition.Validate(); err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_DEFINITION",
			"Tournament definition failed validation", err.Error())
		return
	}

	res := tournament.Resolve(&req.Definition, req.Guesses)
	respond.WriteJSONObject(w, http.StatusOK, res)
}

// serveCached answers from the cache when possible: 304 on an ETag
// match, 200 with the cached body otherwise. Returns false on a miss.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration) bool {
	data, etag, ok := h.cache.Get(key)
	if !ok {
		return false
	}
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return true
	}
	respond.WriteJSON(w, data, etag, ttl, true)
	return true
}

// writeCacheable marshals, caches, and writes a fresh response.
func (h *Handler) writeCacheable(w http.ResponseWriter, key string, v interface{}, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODING_ERROR", "Failed to encode response")
		return
	}
	etag := h.cache.Set(key, data, ttl)
	respond.WriteJSON(w, data, etag, ttl, false)
}

// decodeBody decodes a JSON request body capped at the configured size.
// Writes the error response itself and returns false on failure.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.WriteError(w, http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE", "Request body exceeds limit")
			return false
		}
		respond.WriteErrorDetail(w, http.StatusBadRequest, "INVALID_BODY",
			"Request body is not valid JSON", err.Error())
		return false
	}
	return true
}
