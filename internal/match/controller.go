package match

import (
	"context"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/pickup-tracker/internal/club"
	"github.com/mauv0809/pickup-tracker/internal/metrics"
	"github.com/mauv0809/pickup-tracker/internal/narrative"
	"github.com/mauv0809/pickup-tracker/internal/pubsub"
)

// New creates a new Controller.
func New(store club.Store, generator narrative.Generator, ps pubsub.PubSubClient, metrics metrics.Metrics) *Controller {
	return &Controller{
		store:     store,
		generator: generator,
		pubsub:    ps,
		metrics:   metrics,
	}
}

// Resume loads a persisted unfinished match, if any, so a restart drops the
// user straight back into the live match.
func (c *Controller) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	active, err := c.store.ActiveMatch()
	if err != nil {
		return err
	}
	c.active = active
	if active != nil {
		log.Info("Resumed active match", "matchID", active.ID, "home", active.HomeTeam, "away", active.AwayTeam)
	}
	return nil
}

// Active returns a copy of the currently active match, or nil.
func (c *Controller) Active() *club.Match {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return nil
	}
	m := *c.active
	return &m
}

// Start performs the Draft -> Active transition: both rosters must be
// non-empty and no other match may be active. The new match is persisted
// before it is considered live.
func (c *Controller) Start(params StartParams) (*club.Match, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active != nil {
		return nil, ErrMatchInProgress
	}
	if len(params.HomePlayerIDs) == 0 || len(params.AwayPlayerIDs) == 0 {
		return nil, ErrEmptyRoster
	}

	m := club.Match{
		ID:            uuid.NewString(),
		HomeTeam:      params.HomeTeam,
		AwayTeam:      params.AwayTeam,
		HomePlayerIDs: params.HomePlayerIDs,
		AwayPlayerIDs: params.AwayPlayerIDs,
		Date:          time.Now().UTC().Format(time.RFC3339),
		Finished:      false,
		Events:        []club.MatchEvent{},
	}
	if err := c.store.AddMatch(m); err != nil {
		return nil, err
	}

	c.active = &m
	c.metrics.IncMatchesStarted()
	log.Info("Match started", "matchID", m.ID, "home", m.HomeTeam, "away", m.AwayTeam)
	copied := m
	return &copied, nil
}

// RecordEvent appends one event to the active match (newest first), bumps the
// scoring side on goals, and writes the whole match through before the
// in-memory copy is updated.
func (c *Controller) RecordEvent(params EventParams) (*club.Match, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == nil {
		return nil, ErrNoActiveMatch
	}
	if !club.ValidEventType(params.Type) || (params.Side != club.SideHome && params.Side != club.SideAway) {
		return nil, ErrInvalidEvent
	}

	event := club.MatchEvent{
		ID:             uuid.NewString(),
		MatchID:        c.active.ID,
		Side:           params.Side,
		PlayerID:       params.PlayerID,
		AssistPlayerID: params.AssistPlayerID,
		Type:           params.Type,
		// Minute is picked at random; it does not track elapsed match time.
		Minute:    rand.Intn(90) + 1,
		CreatedAt: time.Now().Unix(),
	}

	updated := *c.active
	updated.Events = append([]club.MatchEvent{event}, updated.Events...)
	if event.Type == club.EventGoal {
		if event.Side == club.SideHome {
			updated.HomeScore++
		} else {
			updated.AwayScore++
		}
	}

	if err := c.store.UpdateMatch(updated); err != nil {
		return nil, err
	}

	c.active = &updated
	c.metrics.IncEventsRecorded()
	log.Info("Event recorded", "matchID", updated.ID, "type", event.Type, "player", event.PlayerID, "minute", event.Minute)
	copied := updated
	return &copied, nil
}

// Finish performs the Active -> Finished transition exactly once: the
// narrative is generated while the caller waits, the match is persisted
// finished, and the result is published for asynchronous notification.
func (c *Controller) Finish(ctx context.Context) (*club.Match, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == nil {
		return nil, ErrNoActiveMatch
	}

	players, err := c.store.ListPlayers()
	if err != nil {
		log.Error("Failed to list players for narrative, continuing without names", "error", err)
		players = nil
	}

	finished := *c.active
	finished.Finished = true
	finished.Narrative = c.generator.Generate(ctx, &finished, players)

	if err := c.store.UpdateMatch(finished); err != nil {
		return nil, err
	}

	c.active = nil
	c.metrics.IncMatchesFinished()
	log.Info("Match finished", "matchID", finished.ID, "homeScore", finished.HomeScore, "awayScore", finished.AwayScore)

	if err := c.pubsub.SendMessage(ResultTopic, &finished); err != nil {
		// Notification is best effort; the match is already finished and saved.
		log.Error("Failed to publish match result", "error", err, "matchID", finished.ID)
	}

	copied := finished
	return &copied, nil
}
