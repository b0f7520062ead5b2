package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodeapp/engine/internal/api/handler"
	"github.com/prodeapp/engine/internal/api/respond"
	"github.com/prodeapp/engine/internal/bracket"
	"github.com/prodeapp/engine/internal/cache"
	"github.com/prodeapp/engine/internal/config"
	"github.com/prodeapp/engine/internal/tournament"
)

func intPtr(n int) *int { return &n }

// miniDefinition builds a one-group, two-team tournament with a final.
// withResults records the single group fixture as an official 2-1.
func miniDefinition(id string, withResults bool) *tournament.Definition {
	def := &tournament.Definition{
		ID:   id,
		Name: "Mini Cup",
		Teams: []tournament.Team{
			{ID: "ARG", Name: "Argentina"},
			{ID: "BRA", Name: "Brazil"},
		},
		Groups: []tournament.GroupDef{{
			Letter:  "A",
			TeamIDs: []bracket.TeamID{"ARG", "BRA"},
			Fixtures: []tournament.Fixture{
				{GameID: "g1", HomeTeamID: "ARG", AwayTeamID: "BRA"},
			},
		}},
		Rounds: []tournament.Round{{
			Name: "Final",
			Games: []bracket.PlayoffGame{{
				GameID: "f1",
				Home:   bracket.SlotRule{Group: "A", Position: 1},
				Away:   bracket.SlotRule{Group: "A", Position: 2},
			}},
		}},
	}
	if withResults {
		def.Results = []bracket.GameOutcome{{
			GameID: "g1", HomeTeamID: "ARG", AwayTeamID: "BRA",
			HomeScore: intPtr(2), AwayScore: intPtr(1),
		}}
	}
	return def
}

func testConfig() *config.Config {
	return &config.Config{
		CORSAllowOrigins: []string{"*"},
		RateLimitEnabled: false,
		CacheEnabled:     true,
		MaxBodyBytes:     1 << 20,
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	catalog, err := tournament.NewCatalog(
		miniDefinition("mini-done", true),
		miniDefinition("mini-open", false),
	)
	require.NoError(t, err)
	return NewRouter(catalog, cache.New(true), testConfig())
}

func doRequest(t *testing.T, router http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRootAndHealth(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var root map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &root))
	assert.Equal(t, "running", root["status"])
	assert.EqualValues(t, 2, root["tournaments"])

	rec = doRequest(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")

	rec = doRequest(t, router, http.MethodGet, "/health/cache", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "active_keys")
}

func TestListTournaments(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/tournaments", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))

	var infos []handler.TournamentInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &infos))
	require.Len(t, infos, 2)
	assert.Equal(t, "mini-done", infos[0].ID)
	assert.Equal(t, "mini-open", infos[1].ID)
	assert.Equal(t, []string{"Final"}, infos[0].Rounds)

	// Second request is served from cache
	rec = doRequest(t, router, http.MethodGet, "/api/v1/tournaments", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
}

func TestGetStandings(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/tournaments/mini-done/standings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)

	var resp handler.StandingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Groups, 1)
	require.True(t, resp.Groups[0].Resolved)
	require.Len(t, resp.Groups[0].Table, 2)
	assert.Equal(t, "Argentina", resp.Groups[0].Table[0].Name)
	assert.Equal(t, 3, resp.Groups[0].Table[0].Points)

	// Conditional revalidation
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tournaments/mini-done/standings", nil)
	req.Header.Set("If-None-Match", etag)
	cond := httptest.NewRecorder()
	router.ServeHTTP(cond, req)
	assert.Equal(t, http.StatusNotModified, cond.Code)
	assert.Equal(t, etag, cond.Header().Get("ETag"))
}

func TestGetStandingsUnresolvedGroup(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/tournaments/mini-open/standings", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.StandingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Groups, 1)
	assert.False(t, resp.Groups[0].Resolved)
	assert.Empty(t, resp.Groups[0].Table)
}

func TestGetStandingsUnknownTournament(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/tournaments/nope/standings", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var errResp respond.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "TOURNAMENT_NOT_FOUND", errResp.Error.Code)
}

func TestGetBracket(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/tournaments/mini-done/bracket", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handler.BracketResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Rounds, 1)
	require.Len(t, resp.Rounds[0].Games, 1)
	final := resp.Rounds[0].Games[0]
	require.NotNil(t, final.Home)
	require.NotNil(t, final.Away)
	assert.Equal(t, "Argentina", final.Home.Name)
	assert.Equal(t, "Brazil", final.Away.Name)
}

func TestPostProjection(t *testing.T) {
	router := newTestRouter(t)

	t.Run("guesses resolve an open group", func(t *testing.T) {
		body, err := json.Marshal(handler.ProjectionRequest{
			Guesses: []bracket.GameOutcome{{
				GameID: "g1", HomeTeamID: "ARG", AwayTeamID: "BRA",
				HomeScore: intPtr(0), AwayScore: intPtr(1),
			}},
		})
		require.NoError(t, err)

		rec := doRequest(t, router, http.MethodPost, "/api/v1/tournaments/mini-open/projection", body)
		require.Equal(t, http.StatusOK, rec.Code)

		var res tournament.Resolution
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		require.Len(t, res.Groups, 1)
		require.True(t, res.Groups[0].Resolved)
		assert.Equal(t, "Brazil", res.Groups[0].Table[0].Name)
	})

	t.Run("official results win over guesses", func(t *testing.T) {
		body, err := json.Marshal(handler.ProjectionRequest{
			Guesses: []bracket.GameOutcome{{
				GameID: "g1", HomeTeamID: "ARG", AwayTeamID: "BRA",
				HomeScore: intPtr(0), AwayScore: intPtr(5),
			}},
		})
		require.NoError(t, err)

		rec := doRequest(t, router, http.MethodPost, "/api/v1/tournaments/mini-done/projection", body)
		require.Equal(t, http.StatusOK, rec.Code)

		var res tournament.Resolution
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "Argentina", res.Groups[0].Table[0].Name)
	})

	t.Run("unknown tournament", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/v1/tournaments/nope/projection", []byte(`{"guesses":[]}`))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/v1/tournaments/mini-open/projection", []byte(`{not json`))
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var errResp respond.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		assert.Equal(t, "INVALID_BODY", errResp.Error.Code)
	})
}

func TestPostResolve(t *testing.T) {
	router := newTestRouter(t)

	t.Run("valid inline definition", func(t *testing.T) {
		body, err := json.Marshal(handler.ResolveRequest{
			Definition: *miniDefinition("inline", true),
		})
		require.NoError(t, err)

		rec := doRequest(t, router, http.MethodPost, "/api/v1/resolve", body)
		require.Equal(t, http.StatusOK, rec.Code)

		var res tournament.Resolution
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "inline", res.TournamentID)
		require.Len(t, res.Rounds, 1)
		require.NotNil(t, res.Rounds[0].Games[0].Home)
	})

	t.Run("invalid definition", func(t *testing.T) {
		def := miniDefinition("", true)
		body, err := json.Marshal(handler.ResolveRequest{Definition: *def})
		require.NoError(t, err)

		rec := doRequest(t, router, http.MethodPost, "/api/v1/resolve", body)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var errResp respond.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		assert.Equal(t, "INVALID_DEFINITION", errResp.Error.Code)
		assert.NotEmpty(t, errResp.Error.Detail)
	})
}

func TestBodySizeLimit(t *testing.T) {
	catalog, err := tournament.NewCatalog(miniDefinition("mini-open", false))
	require.NoError(t, err)
	cfg := testConfig()
	cfg.MaxBodyBytes = 16
	router := NewRouter(catalog, cache.New(false), cfg)

	body, err := json.Marshal(handler.ProjectionRequest{
		Guesses: []bracket.GameOutcome{{
			GameID: "g1", HomeTeamID: "ARG", AwayTeamID: "BRA",
			HomeScore: intPtr(0), AwayScore: intPtr(1),
		}},
	})
	require.NoError(t, err)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/tournaments/mini-open/projection", body)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	var errResp respond.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "BODY_TOO_LARGE", errResp.Error.Code)
}

func TestRateLimit(t *testing.T) {
	catalog, err := tournament.NewCatalog(miniDefinition("mini-open", false))
	require.NoError(t, err)
	cfg := testConfig()
	cfg.RateLimitEnabled = true
	cfg.RateLimitRequests = 4
	cfg.RateLimitWindow = time.Minute
	router := NewRouter(catalog, cache.New(false), cfg)

	// Burst is half the per-window budget
	limited := false
	for i := 0; i < 10; i++ {
		rec := doRequest(t, router, http.MethodGet, "/health", nil)
		if rec.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	assert.True(t, limited)
}
