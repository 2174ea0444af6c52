package club

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// sqlStore persists each entity as one row keyed by its identifier, with the
// whole entity serialized into a single JSON column. The matches table
// additionally carries date and finished columns so list ordering and
// active-match lookup stay in SQL.
type sqlStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a SQL-backed Store.
func New(db *sql.DB) Store {
	return &sqlStore{db: db}
}

func (s *sqlStore) ListPlayers() ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT data FROM players")
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		var p Player
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			log.Error("Failed to unmarshal player data", "error", err)
			continue
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (s *sqlStore) AddPlayer(p Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal player %s: %w", p.ID, err)
	}
	_, err = s.db.Exec(`
		INSERT INTO players (id, data) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data;
	`, p.ID, string(data))
	if err != nil {
		return fmt.Errorf("failed to insert player %s: %w", p.ID, err)
	}
	return nil
}

func (s *sqlStore) UpdatePlayer(p Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal player %s: %w", p.ID, err)
	}
	_, err = s.db.Exec("UPDATE players SET data = ? WHERE id = ?", string(data), p.ID)
	if err != nil {
		return fmt.Errorf("failed to update player %s: %w", p.ID, err)
	}
	return nil
}

func (s *sqlStore) DeletePlayer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM players WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete player %s: %w", id, err)
	}
	return nil
}

func (s *sqlStore) ListMatches() ([]Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT data FROM matches ORDER BY match_date DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		var m Match
		if err := json.Unmarshal([]byte(data), &m); err != nil {
			log.Error("Failed to unmarshal match data", "error", err)
			continue
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (s *sqlStore) AddMatch(m Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upsertMatchLocked(m)
}

func (s *sqlStore) UpdateMatch(m Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal match %s: %w", m.ID, err)
	}
	_, err = s.db.Exec(`
		UPDATE matches SET match_date = ?, finished = ?, data = ? WHERE id = ?
	`, m.Date, boolToInt(m.Finished), string(data), m.ID)
	if err != nil {
		return fmt.Errorf("failed to update match %s: %w", m.ID, err)
	}
	return nil
}

func (s *sqlStore) DeleteMatch(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM matches WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete match %s: %w", id, err)
	}
	return nil
}

func (s *sqlStore) ActiveMatch() (*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var data string
	err := s.db.QueryRow("SELECT data FROM matches WHERE finished = 0 LIMIT 1").Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query active match: %w", err)
	}
	var m Match
	if err := json.Unmarshal([]byte(data), &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal active match: %w", err)
	}
	return &m, nil
}

func (s *sqlStore) upsertMatchLocked(m Match) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal match %s: %w", m.ID, err)
	}
	_, err = s.db.Exec(`
		INSERT INTO matches (id, match_date, finished, data) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			match_date = excluded.match_date,
			finished = excluded.finished,
			data = excluded.data;
	`, m.ID, m.Date, boolToInt(m.Finished), string(data))
	if err != nil {
		return fmt.Errorf("failed to insert match %s: %w", m.ID, err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
