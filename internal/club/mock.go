package club

import (
	"sort"
	"sync"
)

// MockStore is an in-memory Store implementation for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu      sync.Mutex
	players []Player
	matches []Match

	// Err, when set, is returned by every operation.
	Err error
}

var _ Store = (*MockStore)(nil)

// NewMock creates a new mock store.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) ListPlayers() ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]Player, len(m.players))
	copy(out, m.players)
	return out, nil
}

func (m *MockStore) AddPlayer(p Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for i := range m.players {
		if m.players[i].ID == p.ID {
			m.players[i] = p
			return nil
		}
	}
	m.players = append(m.players, p)
	return nil
}

func (m *MockStore) UpdatePlayer(p Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for i := range m.players {
		if m.players[i].ID == p.ID {
			m.players[i] = p
			return nil
		}
	}
	return nil
}

func (m *MockStore) DeletePlayer(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	kept := m.players[:0]
	for _, p := range m.players {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	m.players = kept
	return nil
}

func (m *MockStore) ListMatches() ([]Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]Match, len(m.matches))
	copy(out, m.matches)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out, nil
}

func (m *MockStore) AddMatch(match Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for i := range m.matches {
		if m.matches[i].ID == match.ID {
			m.matches[i] = match
			return nil
		}
	}
	m.matches = append(m.matches, match)
	return nil
}

func (m *MockStore) UpdateMatch(match Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for i := range m.matches {
		if m.matches[i].ID == match.ID {
			m.matches[i] = match
			return nil
		}
	}
	return nil
}

func (m *MockStore) DeleteMatch(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	kept := m.matches[:0]
	for _, match := range m.matches {
		if match.ID != id {
			kept = append(kept, match)
		}
	}
	m.matches = kept
	return nil
}

func (m *MockStore) ActiveMatch() (*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.matches {
		if !m.matches[i].Finished {
			match := m.matches[i]
			return &match, nil
		}
	}
	return nil, nil
}
