package pubsub

import (
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// PublishedMessage records one SendMessage call.
type PublishedMessage struct {
	Topic string
	Data  any
}

// Mock is a mock implementation of the PubSubClient interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu        sync.Mutex
	projectID string

	// Published records every SendMessage call in order.
	Published []PublishedMessage

	// SendMessageErr, when set, is returned by SendMessage.
	SendMessageErr error
}

var _ PubSubClient = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock(projectID string) *Mock {
	return &Mock{projectID: projectID}
}

func (m *Mock) SendMessage(topic string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SendMessageErr != nil {
		return m.SendMessageErr
	}
	m.Published = append(m.Published, PublishedMessage{Topic: topic, Data: data})
	return nil
}

func (m *Mock) ProcessMessage(data []byte, returnValue any) error {
	return msgpack.Unmarshal(data, returnValue)
}

func (m *Mock) Close() {}

// Messages returns a copy of all published messages.
func (m *Mock) Messages() []PublishedMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]PublishedMessage, len(m.Published))
	copy(out, m.Published)
	return out
}
