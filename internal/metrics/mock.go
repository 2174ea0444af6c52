package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                 sync.Mutex
	matchesStarted     int
	matchesFinished    int
	eventsRecorded     int
	narrativeGenerated int
	narrativeFailed    int
	slackNotifSent     int
	slackNotifFailed   int
	startupTime        float64
}

var _ Metrics = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) IncMatchesStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesStarted++
}

func (m *Mock) IncMatchesFinished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesFinished++
}

func (m *Mock) IncEventsRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventsRecorded++
}

func (m *Mock) IncNarrativeGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.narrativeGenerated++
}

func (m *Mock) IncNarrativeFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.narrativeFailed++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// MatchesStarted returns the number of times IncMatchesStarted was called.
func (m *Mock) MatchesStarted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesStarted
}

// MatchesFinished returns the number of times IncMatchesFinished was called.
func (m *Mock) MatchesFinished() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesFinished
}

// EventsRecorded returns the number of times IncEventsRecorded was called.
func (m *Mock) EventsRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.eventsRecorded
}

// NarrativeGenerated returns the number of times IncNarrativeGenerated was called.
func (m *Mock) NarrativeGenerated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.narrativeGenerated
}

// NarrativeFailed returns the number of times IncNarrativeFailed was called.
func (m *Mock) NarrativeFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.narrativeFailed
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
