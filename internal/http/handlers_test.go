package http

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/mauv0809/pickup-tracker/internal/club"
	"github.com/mauv0809/pickup-tracker/internal/config"
	"github.com/mauv0809/pickup-tracker/internal/database"
	"github.com/mauv0809/pickup-tracker/internal/match"
	"github.com/mauv0809/pickup-tracker/internal/metrics"
	"github.com/mauv0809/pickup-tracker/internal/narrative"
	"github.com/mauv0809/pickup-tracker/internal/notifier"
	"github.com/mauv0809/pickup-tracker/internal/pubsub"
	"github.com/mauv0809/pickup-tracker/internal/stats"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

const testSlackSigningSecret = "test-signing-secret"

// setupTestServer initializes a new server with a test database and mock clients.
func setupTestServer(t *testing.T, slackSigningSecret string) (*Server, *notifier.Mock, *pubsub.Mock, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := club.New(db)
	cfg := config.Config{Slack: config.SlackConfig{SigningSecret: slackSigningSecret}}

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)
	ps := pubsub.NewMock("TEST")
	notif := notifier.NewMock()
	controller := match.New(store, narrative.NewMock(), ps, metricsSvc)

	server := NewServer(store, controller, metricsSvc, metricsHandler, cfg, notif, ps)

	teardown := func() {
		if dbTeardown != nil {
			dbTeardown()
		}
	}
	return server, notif, ps, teardown
}

func doJSON(t *testing.T, server *Server, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	return rr
}

func TestHealthCheckHandler(t *testing.T) {
	server, _, _, teardown := setupTestServer(t, "")
	defer teardown()

	rr := doJSON(t, server, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK!", rr.Body.String())
}

func TestPlayersHandlerCRUD(t *testing.T) {
	server, _, _, teardown := setupTestServer(t, "")
	defer teardown()

	// Create
	rr := doJSON(t, server, http.MethodPost, "/players", club.Player{Name: "Ana", Position: club.PositionGoalkeeper})
	require.Equal(t, http.StatusCreated, rr.Code)
	var created club.Player
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Ana", created.Name)

	// List
	rr = doJSON(t, server, http.MethodGet, "/players", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var players []club.Player
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&players))
	require.Len(t, players, 1)

	// Update
	created.Nickname = "The Wall"
	rr = doJSON(t, server, http.MethodPut, "/players", created)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, server, http.MethodGet, "/players", nil)
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&players))
	require.Len(t, players, 1)
	assert.Equal(t, "The Wall", players[0].Nickname)

	// Delete
	rr = doJSON(t, server, http.MethodDelete, "/players?id="+created.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, server, http.MethodGet, "/players", nil)
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&players))
	assert.Empty(t, players)
}

func TestPlayersHandlerValidation(t *testing.T) {
	server, _, _, teardown := setupTestServer(t, "")
	defer teardown()

	rr := doJSON(t, server, http.MethodPost, "/players", club.Player{Position: club.PositionForward})
	assert.Equal(t, http.StatusBadRequest, rr.Code, "missing name")

	rr = doJSON(t, server, http.MethodPost, "/players", club.Player{Name: "Beto", Position: "SWEEPER"})
	assert.Equal(t, http.StatusBadRequest, rr.Code, "unknown position")

	rr = doJSON(t, server, http.MethodPost, "/players", club.Player{
		Name:     "Caro",
		Position: club.PositionForward,
		Photo:    strings.Repeat("a", club.MaxPhotoBytes+1),
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code, "oversized photo")

	rr = doJSON(t, server, http.MethodPut, "/players", club.Player{Name: "Caro", Position: club.PositionForward})
	assert.Equal(t, http.StatusBadRequest, rr.Code, "update without id")

	rr = doJSON(t, server, http.MethodDelete, "/players", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code, "delete without id")

	rr = doJSON(t, server, http.MethodPatch, "/players", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func seedPlayer(t *testing.T, server *Server, id, name string, pos club.Position) {
	t.Helper()
	require.NoError(t, server.Store.AddPlayer(club.Player{ID: id, Name: name, Position: pos}))
}

func startTestMatch(t *testing.T, server *Server) club.Match {
	t.Helper()
	rr := doJSON(t, server, http.MethodPost, "/matches/start", match.StartParams{
		HomeTeam:      "Reds",
		AwayTeam:      "Blues",
		HomePlayerIDs: []string{"p1"},
		AwayPlayerIDs: []string{"p2"},
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	var m club.Match
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&m))
	return m
}

func TestStartMatchHandler(t *testing.T) {
	server, _, _, teardown := setupTestServer(t, "")
	defer teardown()

	started := startTestMatch(t, server)
	assert.NotEmpty(t, started.ID)
	assert.False(t, started.Finished)

	// A second start must be rejected while the first is live.
	rr := doJSON(t, server, http.MethodPost, "/matches/start", match.StartParams{
		HomeTeam:      "Greens",
		AwayTeam:      "Yellows",
		HomePlayerIDs: []string{"p3"},
		AwayPlayerIDs: []string{"p4"},
	})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = doJSON(t, server, http.MethodPost, "/matches/start", match.StartParams{HomeTeam: "Reds", AwayTeam: "Blues"})
	assert.Equal(t, http.StatusConflict, rr.Code, "active-match check runs before roster validation")
}

func TestStartMatchHandlerEmptyRoster(t *testing.T) {
	server, _, _, teardown := setupTestServer(t, "")
	defer teardown()

	rr := doJSON(t, server, http.MethodPost, "/matches/start", match.StartParams{
		HomeTeam:      "Reds",
		AwayTeam:      "Blues",
		HomePlayerIDs: []string{"p1"},
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestActiveMatchHandler(t *testing.T) {
	server, _, _, teardown := setupTestServer(t, "")
	defer teardown()

	rr := doJSON(t, server, http.MethodGet, "/matches/active", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	started := startTestMatch(t, server)

	rr = doJSON(t, server, http.MethodGet, "/matches/active", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var active club.Match
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&active))
	assert.Equal(t, started.ID, active.ID)
}

func TestRecordEventHandler(t *testing.T) {
	server, _, _, teardown := setupTestServer(t, "")
	defer teardown()

	rr := doJSON(t, server, http.MethodPost, "/matches/event", match.EventParams{Side: club.SideHome, PlayerID: "p1", Type: club.EventGoal})
	assert.Equal(t, http.StatusNotFound, rr.Code, "no active match yet")

	startTestMatch(t, server)

	rr = doJSON(t, server, http.MethodPost, "/matches/event", match.EventParams{Side: club.SideHome, PlayerID: "p1", Type: club.EventGoal})
	require.Equal(t, http.StatusOK, rr.Code)
	var updated club.Match
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&updated))
	assert.Equal(t, 1, updated.HomeScore)
	require.Len(t, updated.Events, 1)

	rr = doJSON(t, server, http.MethodPost, "/matches/event", match.EventParams{Side: club.SideHome, PlayerID: "p1", Type: "OWN_GOAL"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestFinishMatchHandler(t *testing.T) {
	server, _, ps, teardown := setupTestServer(t, "")
	defer teardown()

	rr := doJSON(t, server, http.MethodPost, "/matches/finish", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code, "no active match yet")

	startTestMatch(t, server)

	rr = doJSON(t, server, http.MethodPost, "/matches/finish", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var finished club.Match
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&finished))
	assert.True(t, finished.Finished)
	assert.NotEmpty(t, finished.Narrative)

	published := ps.Messages()
	require.Len(t, published, 1)
	assert.Equal(t, match.ResultTopic, published[0].Topic)

	rr = doJSON(t, server, http.MethodGet, "/matches/active", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestLeaderboardHandler(t *testing.T) {
	server, _, _, teardown := setupTestServer(t, "")
	defer teardown()

	seedPlayer(t, server, "p1", "Ana", club.PositionForward)
	seedPlayer(t, server, "p2", "Beto", club.PositionDefender)

	startTestMatch(t, server)
	rr := doJSON(t, server, http.MethodPost, "/matches/event", match.EventParams{Side: club.SideHome, PlayerID: "p1", Type: club.EventGoal})
	require.Equal(t, http.StatusOK, rr.Code)
	rr = doJSON(t, server, http.MethodPost, "/matches/finish", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, server, http.MethodGet, "/leaderboard", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var board []stats.PlayerStats
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&board))
	require.Len(t, board, 2)
	assert.Equal(t, "Ana", board[0].PlayerName)
	assert.Equal(t, 1, board[0].Goals)
	assert.Equal(t, 1, board[0].MatchesPlayed)
}

func TestNotifyResultHandler(t *testing.T) {
	server, notif, _, teardown := setupTestServer(t, "")
	defer teardown()

	result := club.Match{ID: "m1", HomeTeam: "Reds", AwayTeam: "Blues", HomeScore: 2, AwayScore: 1, Finished: true}
	raw, err := msgpack.Marshal(&result)
	require.NoError(t, err)

	body := fmt.Sprintf(`{"subscription":"sub","message":{"data":%q}}`, base64.StdEncoding.EncodeToString(raw))
	req := httptest.NewRequest(http.MethodPost, "/notify-result", strings.NewReader(body))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, notif.SendResultNotificationCalls, 1)
	assert.Equal(t, "m1", notif.SendResultNotificationCalls[0].Match.ID)
}

func TestNotifyResultHandlerBadPayload(t *testing.T) {
	server, notif, _, teardown := setupTestServer(t, "")
	defer teardown()

	req := httptest.NewRequest(http.MethodPost, "/notify-result", strings.NewReader("not json"))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	body := `{"subscription":"sub","message":{"data":"!!!not-base64!!!"}}`
	req = httptest.NewRequest(http.MethodPost, "/notify-result", strings.NewReader(body))
	rr = httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	assert.Empty(t, notif.SendResultNotificationCalls)
}

func TestLeaderboardCommandHandler(t *testing.T) {
	server, notif, _, teardown := setupTestServer(t, "")
	defer teardown()

	notif.FormatLeaderboardResponseFunc = func(board []stats.PlayerStats) (any, error) {
		return slack.NewBlockMessage(slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, "🏆 Player Leaderboard 🏆", true, false))), nil
	}

	rr := doJSON(t, server, http.MethodGet, "/slack/command/leaderboard", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Player Leaderboard")
}

// createSlackCommandRequest creates an http.Request suitable for testing Slack slash commands,
// including the necessary signature and timestamp headers for verification.
func createSlackCommandRequest(t *testing.T, targetURL string, form url.Values, signingSecret string) *http.Request {
	t.Helper()

	body := form.Encode()
	req := httptest.NewRequest(http.MethodPost, targetURL, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	timestamp := time.Now().Unix()
	req.Header.Set("X-Slack-Request-Timestamp", strconv.FormatInt(timestamp, 10))

	baseString := fmt.Sprintf("v0:%d:%s", timestamp, body)
	h := hmac.New(sha256.New, []byte(signingSecret))
	h.Write([]byte(baseString))
	req.Header.Set("X-Slack-Signature", "v0="+hex.EncodeToString(h.Sum(nil)))

	return req
}

func TestLeaderboardCommandHandlerSignatureVerification(t *testing.T) {
	server, notif, _, teardown := setupTestServer(t, testSlackSigningSecret)
	defer teardown()

	notif.FormatLeaderboardResponseFunc = func(board []stats.PlayerStats) (any, error) {
		return slack.NewBlockMessage(), nil
	}

	t.Run("accepts correctly signed request", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/leaderboard", url.Values{}, testSlackSigningSecret)
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("rejects request with invalid signature", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/leaderboard", url.Values{}, "wrong-secret")
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("rejects request with missing signature", func(t *testing.T) {
		req := createSlackCommandRequest(t, "/slack/command/leaderboard", url.Values{}, testSlackSigningSecret)
		req.Header.Del("X-Slack-Signature")
		rr := httptest.NewRecorder()
		server.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestPostLeaderboardHandler(t *testing.T) {
	server, notif, _, teardown := setupTestServer(t, "")
	defer teardown()

	seedPlayer(t, server, "p1", "Ana", club.PositionForward)

	rr := doJSON(t, server, http.MethodPost, "/notify-leaderboard", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, notif.SendLeaderboardCalls, 1)
	require.Len(t, notif.SendLeaderboardCalls[0], 1)
	assert.Equal(t, "Ana", notif.SendLeaderboardCalls[0][0].PlayerName)

	rr = doJSON(t, server, http.MethodGet, "/notify-leaderboard", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestPostLeaderboardHandlerSendFailure(t *testing.T) {
	server, notif, _, teardown := setupTestServer(t, "")
	defer teardown()

	notif.SendErr = errors.New("slack unavailable")

	rr := doJSON(t, server, http.MethodPost, "/notify-leaderboard", nil)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
