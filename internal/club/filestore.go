package club

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

const (
	playersFile = "players.json"
	matchesFile = "matches.json"
)

// fileStore keeps each collection as one JSON array in a flat file, the local
// fallback when no remote backend is configured. Every mutation re-reads the
// collection, applies the change and rewrites the whole file. O(n) per
// mutation, which is fine at club scale, and single-writer only: there is no
// cross-process locking.
type fileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates a flat-file Store rooted at dir.
func NewFileStore(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %w", dir, err)
	}
	return &fileStore{dir: dir}, nil
}

func (s *fileStore) ListPlayers() ([]Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var players []Player
	if err := s.read(playersFile, &players); err != nil {
		return nil, err
	}
	return players, nil
}

func (s *fileStore) AddPlayer(p Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var players []Player
	if err := s.read(playersFile, &players); err != nil {
		return err
	}
	for i := range players {
		if players[i].ID == p.ID {
			players[i] = p
			return s.write(playersFile, players)
		}
	}
	return s.write(playersFile, append(players, p))
}

func (s *fileStore) UpdatePlayer(p Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var players []Player
	if err := s.read(playersFile, &players); err != nil {
		return err
	}
	for i := range players {
		if players[i].ID == p.ID {
			players[i] = p
			return s.write(playersFile, players)
		}
	}
	// Unknown identifier: replace-by-id is a no-op.
	return nil
}

func (s *fileStore) DeletePlayer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var players []Player
	if err := s.read(playersFile, &players); err != nil {
		return err
	}
	kept := players[:0]
	for _, p := range players {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	return s.write(playersFile, kept)
}

func (s *fileStore) ListMatches() ([]Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matches []Match
	if err := s.read(matchesFile, &matches); err != nil {
		return nil, err
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Date > matches[j].Date
	})
	return matches, nil
}

func (s *fileStore) AddMatch(m Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matches []Match
	if err := s.read(matchesFile, &matches); err != nil {
		return err
	}
	for i := range matches {
		if matches[i].ID == m.ID {
			matches[i] = m
			return s.write(matchesFile, matches)
		}
	}
	return s.write(matchesFile, append(matches, m))
}

func (s *fileStore) UpdateMatch(m Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matches []Match
	if err := s.read(matchesFile, &matches); err != nil {
		return err
	}
	for i := range matches {
		if matches[i].ID == m.ID {
			matches[i] = m
			return s.write(matchesFile, matches)
		}
	}
	return nil
}

func (s *fileStore) DeleteMatch(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matches []Match
	if err := s.read(matchesFile, &matches); err != nil {
		return err
	}
	kept := matches[:0]
	for _, m := range matches {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	return s.write(matchesFile, kept)
}

func (s *fileStore) ActiveMatch() (*Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matches []Match
	if err := s.read(matchesFile, &matches); err != nil {
		return nil, err
	}
	for i := range matches {
		if !matches[i].Finished {
			m := matches[i]
			return &m, nil
		}
	}
	return nil, nil
}

// read deserializes a collection file into v. A missing file is an empty
// collection, not an error.
func (s *fileStore) read(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", name, err)
	}
	return nil
}

func (s *fileStore) write(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
