package match

import (
	"errors"
	"sync"

	"github.com/mauv0809/pickup-tracker/internal/club"
	"github.com/mauv0809/pickup-tracker/internal/metrics"
	"github.com/mauv0809/pickup-tracker/internal/narrative"
	"github.com/mauv0809/pickup-tracker/internal/pubsub"
)

// ResultTopic is the Pub/Sub topic finished matches are published to.
const ResultTopic = "notify-result"

var (
	// ErrMatchInProgress is returned when starting a match while one is active.
	ErrMatchInProgress = errors.New("a match is already in progress")
	// ErrNoActiveMatch is returned by operations that need an active match.
	ErrNoActiveMatch = errors.New("no active match")
	// ErrEmptyRoster is returned when a side has no players assigned.
	ErrEmptyRoster = errors.New("both sides need at least one player")
	// ErrInvalidEvent is returned for unknown event types or sides.
	ErrInvalidEvent = errors.New("invalid match event")
)

// Controller drives a single match through Draft -> Active -> Finished.
// Draft state lives with the caller (roster assembly happens before Start);
// the controller owns Active and Finished. The mutex serializes all
// lifecycle transitions: a single pickup match is live at a time.
type Controller struct {
	store     club.Store
	generator narrative.Generator
	pubsub    pubsub.PubSubClient
	metrics   metrics.Metrics

	mu     sync.Mutex
	active *club.Match
}

// StartParams is the roster payload for the Draft -> Active transition.
type StartParams struct {
	HomeTeam      string   `json:"home_team"`
	AwayTeam      string   `json:"away_team"`
	HomePlayerIDs []string `json:"home_player_ids"`
	AwayPlayerIDs []string `json:"away_player_ids"`
}

// EventParams describes one action on the pitch.
type EventParams struct {
	Side           club.Side      `json:"side"`
	PlayerID       string         `json:"player_id"`
	AssistPlayerID string         `json:"assist_player_id,omitempty"`
	Type           club.EventType `json:"type"`
}
