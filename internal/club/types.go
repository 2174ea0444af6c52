package club

// Position is a player's fixed position on the pitch.
type Position string

const (
	PositionGoalkeeper Position = "GOALKEEPER"
	PositionDefender   Position = "DEFENDER"
	PositionMidfielder Position = "MIDFIELDER"
	PositionForward    Position = "FORWARD"
)

// ValidPosition reports whether p is one of the known positions.
func ValidPosition(p Position) bool {
	switch p {
	case PositionGoalkeeper, PositionDefender, PositionMidfielder, PositionForward:
		return true
	}
	return false
}

// EventType identifies what happened on the pitch.
type EventType string

const (
	EventGoal         EventType = "GOAL"
	EventAssist       EventType = "ASSIST"
	EventYellowCard   EventType = "YELLOW_CARD"
	EventRedCard      EventType = "RED_CARD"
	EventSave         EventType = "SAVE"
	EventSubstitution EventType = "SUBSTITUTION"
)

// ValidEventType reports whether t is one of the known event types.
func ValidEventType(t EventType) bool {
	switch t {
	case EventGoal, EventAssist, EventYellowCard, EventRedCard, EventSave, EventSubstitution:
		return true
	}
	return false
}

// Side identifies which team an event or player assignment belongs to.
type Side string

const (
	SideHome Side = "HOME"
	SideAway Side = "AWAY"
)

// MaxPhotoBytes bounds the size of an encoded player photo.
const MaxPhotoBytes = 512 * 1024

// Player is a club member. The counter fields are manually entered baseline
// statistics; they are the floor for derived totals, never overwritten by
// event replay.
type Player struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Nickname      string   `json:"nickname,omitempty"`
	Photo         string   `json:"photo,omitempty"` // base64-encoded image
	Position      Position `json:"position"`
	Goals         int      `json:"goals,omitempty"`
	Assists       int      `json:"assists,omitempty"`
	MatchesPlayed int      `json:"matches_played,omitempty"`
	Saves         int      `json:"saves,omitempty"`
	Clearances    int      `json:"clearances,omitempty"`
}

// MatchEvent is recorded once per action and never mutated afterwards.
// Minute is assigned at creation time and does not track elapsed match time.
type MatchEvent struct {
	ID             string    `json:"id"`
	MatchID        string    `json:"match_id"`
	Side           Side      `json:"side"`
	PlayerID       string    `json:"player_id"`
	AssistPlayerID string    `json:"assist_player_id,omitempty"` // goals only
	Type           EventType `json:"type"`
	Minute         int       `json:"minute"`
	CreatedAt      int64     `json:"created_at"`
}

// Match is a single pickup match. Events are kept newest first.
// At most one persisted match has Finished == false at any time.
type Match struct {
	ID            string       `json:"id"`
	HomeTeam      string       `json:"home_team"`
	AwayTeam      string       `json:"away_team"`
	HomePlayerIDs []string     `json:"home_player_ids"`
	AwayPlayerIDs []string     `json:"away_player_ids"`
	HomeScore     int          `json:"home_score"`
	AwayScore     int          `json:"away_score"`
	Date          string       `json:"date"` // RFC 3339
	Finished      bool         `json:"finished"`
	Events        []MatchEvent `json:"events"`
	Narrative     string       `json:"narrative,omitempty"`
}
