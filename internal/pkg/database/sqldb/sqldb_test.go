package sqldb

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
	h, err := New("./db_config_test.json", pub)
	return h, pub, err
}

func TestGetConfig(t *testing.T) {
	h, _, err := newHandler()
	assert.NilError(t, err)

	assert.Equal(t, h.config.Port, 3306)
	assert.Equal(t, h.config.Server, "localhost")
}

func TestDatabaseHandle(t *testing.T) {
	h, _, err := newHandler()
	assert.NilError(t, err)

	db, err := h.DB()
	assert.NilError(t, err)
	defer db.Close()
}

func TestInboxReceivesResults(t *testing.T) {
	h, pub, err := newHandler()
	assert.NilError(t, err)

	pub.Publish(msg.Result, model.Report{Name: "demo", Status: "optimal"})

	m := <-h.inbox
	rep, ok := m.Payload().(model.Report)
	assert.Assert(t, ok)
	assert.Equal(t, rep.Name, "demo")
}
