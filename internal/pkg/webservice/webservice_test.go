package webservice

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"gotest.tools/v3/assert"

	"github.com/elisagaudchau/oemof/internal/pkg/model"
)

func testReport(pid uuid.UUID) model.Report {
	return model.Report{
		PID:       pid,
		Name:      "demo",
		Horizon:   2,
		Status:    "optimal",
		Objective: 42.5,
		Flows:     map[string][]float64{"wind->bel": {10, 20}},
		Series:    map[string][]float64{},
		Scalars:   map[string]float64{},
	}
}

func TestBaseGet(t *testing.T) {
	app := App{Store: NewMemStore()}

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "http://example.com/", nil)

	app.Router().ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code, "get returned 200")
	assert.Equal(t, "application/json; charset=UTF-8", w.Header().Get("Content-Type"), "got expected Content-Type in response")
}

func TestRunPost(t *testing.T) {
	pid, err := uuid.NewUUID()
	assert.NilError(t, err)

	app := App{Store: NewMemStore()}

	reqBody, err := json.Marshal(testReport(pid))
	assert.NilError(t, err)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "http://example.com/runs", bytes.NewBuffer(reqBody))

	app.Router().ServeHTTP(w, r)
	assert.Equal(t, http.StatusCreated, w.Code, "post returned 201")

	stored, ok := app.Store.Get(pid)
	assert.Assert(t, ok)
	assert.Equal(t, stored.Name, "demo")
	assert.Equal(t, stored.Flows["wind->bel"][1], 20.0)
}

func TestRunPostRejectsMalformedBody(t *testing.T) {
	app := App{Store: NewMemStore()}

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "http://example.com/runs", bytes.NewBufferString("not json"))

	app.Router().ServeHTTP(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code, "post returned 400")
}

func TestRunsGet(t *testing.T) {
	app := App{Store: NewMemStore()}
	for i := 0; i < 2; i++ {
		pid, err := uuid.NewUUID()
		assert.NilError(t, err)
		assert.NilError(t, app.Store.Put(testReport(pid)))
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "http://example.com/runs", nil)

	app.Router().ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code, "get returned 200")

	runs := []model.Report{}
	assert.NilError(t, json.Unmarshal(w.Body.Bytes(), &runs))
	assert.Equal(t, len(runs), 2)
}

func TestRunGetByPID(t *testing.T) {
	pid, err := uuid.NewUUID()
	assert.NilError(t, err)

	app := App{Store: NewMemStore()}
	assert.NilError(t, app.Store.Put(testReport(pid)))

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "http://example.com/runs/"+pid.String(), nil)

	app.Router().ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code, "get returned 200")

	rep := model.Report{}
	assert.NilError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	assert.Equal(t, rep.PID, pid)
	assert.Equal(t, rep.Objective, 42.5)
}

func TestRunGetUnknownPID(t *testing.T) {
	pid, err := uuid.NewUUID()
	assert.NilError(t, err)

	app := App{Store: NewMemStore()}

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "http://example.com/runs/"+pid.String(), nil)

	app.Router().ServeHTTP(w, r)
	assert.Equal(t, http.StatusNotFound, w.Code, "get returned 404")
}

func TestRunGetMalformedPID(t *testing.T) {
	app := App{Store: NewMemStore()}

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "http://example.com/runs/not-a-uuid", nil)

	app.Router().ServeHTTP(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code, "get returned 400")
}
