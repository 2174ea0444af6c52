package narrative

import (
	"context"
	"sync"

	"github.com/mauv0809/pickup-tracker/internal/club"
)

// Mock is a mock implementation of the Generator interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// GenerateFunc, when set, overrides the default canned response.
	GenerateFunc func(match *club.Match, players []club.Player) string

	// GenerateCalls records the matches Generate was called with.
	GenerateCalls []*club.Match
}

var _ Generator = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Generate(_ context.Context, match *club.Match, players []club.Player) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GenerateCalls = append(m.GenerateCalls, match)
	if m.GenerateFunc != nil {
		return m.GenerateFunc(match, players)
	}
	return "mock narrative"
}
