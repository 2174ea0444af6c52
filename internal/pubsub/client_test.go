package pubsub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

// Without a configured project the client must come up in disabled mode:
// the process starts, publishes are dropped without error, and push
// payloads still decode.
func TestNewWithoutProjectDisablesPublishing(t *testing.T) {
	client := New("")
	require.NotNil(t, client)
	defer client.Close()

	_, ok := client.(*disabledClient)
	assert.True(t, ok, "expected the disabled client when no project is configured")

	assert.NoError(t, client.SendMessage("notify-result", map[string]string{"id": "m1"}))

	payload, err := msgpack.Marshal(map[string]string{"id": "m1"})
	require.NoError(t, err)
	var decoded map[string]string
	require.NoError(t, client.ProcessMessage(payload, &decoded))
	assert.Equal(t, "m1", decoded["id"])
}
