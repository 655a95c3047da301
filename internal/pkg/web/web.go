// Package web pushes finished run reports to a remote web service.
package web

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/elisagaudchau/oemof/internal/pkg/msg"
)

type Handler struct {
	mux    *sync.Mutex
	inbox  <-chan msg.Msg
	pid    uuid.UUID
	config config
	stop   chan bool
}

type config struct {
	URL string `json:"URL"`
}

func (h Handler) PID() uuid.UUID {
	return h.pid
}

func redirectMsg(chIn <-chan msg.Msg, chOut chan<- msg.Msg) {
	for m := range chIn {
		chOut <- m
	}
}

func New(configPath string, system msg.Publisher) (Handler, error) {
	jsonConfig, err := os.ReadFile(configPath)
	if err != nil {
		return Handler{}, err
	}
	cfg := config{}
	if err := json.Unmarshal(jsonConfig, &cfg); err != nil {
		return Handler{}, err
	}

	pid, _ := uuid.NewUUID()

	inbox := make(chan msg.Msg, 50)

	chResult, err := system.Subscribe(pid, msg.Result)
	if err != nil {
		return Handler{}, err
	}
	go redirectMsg(chResult, inbox)

	stop := make(chan bool)

	return Handler{
		mux:    &sync.Mutex{},
		inbox:  inbox,
		pid:    pid,
		config: cfg,
		stop:   stop,
	}, nil
}

func (h *Handler) Stop() {
	h.stop <- true
}

func (h Handler) Process() {
	log.Println("[Web client] Process Started")
loop:
	for {
		select {
		case m := <-h.inbox:
			switch m.Topic() {
			case msg.Result:
				data, err := json.Marshal(m.Payload())
				if err != nil {
					log.Printf("[Web client] malformed report: %v", err)
					continue
				}
				h.postRunReport(data)

			case msg.Config:
			}

		case <-h.stop:
			break loop
		}
	}
	log.Println("[Web client] Process Shutdown")
}

func (h Handler) postRunReport(jsonData []byte) {
	targetURL := h.config.URL + "/runs"
	resp, err := http.Post(targetURL, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		log.Println("[Web client]", err)
		return
	}
	resp.Body.Close()
}
