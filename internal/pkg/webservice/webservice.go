package webservice

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/elisagaudchau/oemof/internal/pkg/model"
)

// Store is where the service keeps finished run reports.
type Store interface {
	Put(model.Report) error
	Get(uuid.UUID) (model.Report, bool)
	All() []model.Report
}

// MemStore keeps reports in memory. The latest report per pid wins.
type MemStore struct {
	mux  *sync.Mutex
	runs map[uuid.UUID]model.Report
}

func NewMemStore() *MemStore {
	return &MemStore{
		mux:  &sync.Mutex{},
		runs: make(map[uuid.UUID]model.Report),
	}
}

func (s *MemStore) Put(rep model.Report) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.runs[rep.PID] = rep
	return nil
}

func (s *MemStore) Get(pid uuid.UUID) (model.Report, bool) {
	s.mux.Lock()
	defer s.mux.Unlock()
	rep, ok := s.runs[pid]
	return rep, ok
}

func (s *MemStore) All() []model.Report {
	s.mux.Lock()
	defer s.mux.Unlock()
	all := make([]model.Report, 0, len(s.runs))
	for _, rep := range s.runs {
		all = append(all, rep)
	}
	return all
}

type App struct {
	Store Store
}

func (app *App) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", app.BaseHandler)
	r.HandleFunc("/runs", app.RunsHandler).Methods("GET", "POST")
	r.HandleFunc("/runs/{pid}", app.RunHandler).Methods("GET")
	return r
}

func (app *App) BaseHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(http.StatusOK)
}

func (app *App) RunsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	switch r.Method {
	case "GET":
		body, err := json.Marshal(app.Store.All())
		if err != nil {
			log.Println("malformed JSON:", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
		_, err = w.Write(body)

	case "POST":
		body, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		rep := model.Report{}
		if err := json.Unmarshal(body, &rep); err != nil {
			log.Println("malformed JSON:", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if err := app.Store.Put(rep); err != nil {
			log.Println("store rejected run:", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)

	default:
		w.WriteHeader(http.StatusBadRequest)
	}
}

func (app *App) RunHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")

	pid, err := uuid.Parse(vars["pid"])
	if err != nil {
		log.Println("malformed UUID:", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	rep, ok := app.Store.Get(pid)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	body, err := json.Marshal(rep)
	if err != nil {
		log.Println("malformed JSON:", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, err = w.Write(body)
}
