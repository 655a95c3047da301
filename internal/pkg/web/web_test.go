package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"gotest.tools/v3/assert"

	"github.com/elisagaudchau/oemof/internal/pkg/model"
	"github.com/elisagaudchau/oemof/internal/pkg/msg"
)

func newHandler() (Handler, *msg.PubSub, error) {
	pid, _ := uuid.NewUUID()
	pub := msg.NewPublisher(pid)
	h, err := New("./web_config_test.json", pub)
	return h, pub, err
}

func TestGetConfig(t *testing.T) {
	h, _, err := newHandler()
	assert.NilError(t, err)

	assert.Equal(t, h.config.URL, "http://localhost:8080")
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

func TestPostRunReport(t *testing.T) {
	var gotPath string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	h, _, err := newHandler()
	assert.NilError(t, err)
	h.config.URL = srv.URL

	data, err := json.Marshal(model.Report{Name: "demo", Status: "optimal"})
	assert.NilError(t, err)
	h.postRunReport(data)

	assert.Equal(t, gotPath, "/runs")

	rep := model.Report{}
	assert.NilError(t, json.Unmarshal(gotBody, &rep))
	assert.Equal(t, rep.Name, "demo")
}
