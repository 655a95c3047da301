package natshandler

import (
	"testing"

	"github.com/google/uuid"
	"gotest.tools/v3/assert"

	"github.com/elisagaudchau/oemof/internal/pkg/model"
	"github.com/elisagaudchau/oemof/internal/pkg/msg"
)

func newHandler() (Handler, *msg.PubSub, error) {
	pid, _ := uuid.NewUUID()
	pub := msg.NewPublisher(pid)
	h, err := New("./nats_config_test.json", pub)
	return h, pub, err
}

func TestGetConfig(t *testing.T) {
	h, _, err := newHandler()
	assert.NilError(t, err)

	assert.Equal(t, h.config.Server, "nats://localhost:4222")
	assert.Equal(t, h.config.Subject, "oemof.runs")
}

func TestInboxReceivesResults(t *testing.T) {
	h, pub, err := newHandler()
	assert.NilError(t, err)

	pub.Publish(msg.Result, model.Report{Name: "demo", Status: "optimal"})

	incoming := <-h.inbox
	rep, ok := incoming.Payload().(model.Report)
	assert.Assert(t, ok)
	assert.Equal(t, rep.Name, "demo")
}
