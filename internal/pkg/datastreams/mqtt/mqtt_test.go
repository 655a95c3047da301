package mqtt

import (
	"testing"

	"github.com/google/uuid"
	"gotest.tools/v3/assert"

	"github.com/elisagaudchau/oemof/internal/pkg/msg"
)

func TestGetConfig(t *testing.T) {
	pid, _ := uuid.NewUUID()
	pub := msg.NewPublisher(pid)

	h, err := New("./mqtt_config_test.json", pub)
	assert.NilError(t, err)

	assert.Equal(t, h.config.Broker, "tcp://localhost:1883")
	assert.Equal(t, h.config.Topic, "oemof/runs")
}
