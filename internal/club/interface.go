package club

// Store is the persistence gateway for players and matches. Two
// implementations exist: a SQL-backed store (local SQLite file or remote
// Turso) and a flat-file store used when no remote backend is configured.
// The backend is selected once at startup and injected; callers never care
// which one they got.
//
// Mutations are write-through: a call that returns nil has been persisted.
// Update operations replace the stored entity by identifier and are a no-op
// when the identifier is unknown.
type Store interface {
	ListPlayers() ([]Player, error)
	AddPlayer(p Player) error
	UpdatePlayer(p Player) error
	DeletePlayer(id string) error

	// ListMatches returns matches sorted by date descending.
	ListMatches() ([]Match, error)
	AddMatch(m Match) error
	UpdateMatch(m Match) error
	DeleteMatch(id string) error

	// ActiveMatch returns the single unfinished match, or nil if none exists.
	ActiveMatch() (*Match, error)
}
