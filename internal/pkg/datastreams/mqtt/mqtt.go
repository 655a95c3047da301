package mqtt

import (
	"encoding/json"
	"log"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/elisagaudchau/oemof/internal/pkg/msg"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Handler streams finished run reports to an MQTT broker, one topic
// per model.
type Handler struct {
	mux    *sync.Mutex
	inbox  <-chan msg.Msg
	pid    uuid.UUID
	config config
	stop   chan bool
}

type config struct {
	Broker string `json:"Broker"`
	Topic  string `json:"Topic"`
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

	chConfig, err := system.Subscribe(pid, msg.Config)
	if err != nil {
		return Handler{}, err
	}
	go redirectMsg(chConfig, inbox)

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
	log.Println("[MQTT client] Process Started")
	opts := mqtt.NewClientOptions().AddBroker(h.config.Broker).SetClientID(h.pid.String())
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		panic(token.Error())
	}
	defer client.Disconnect(250)

loop:
	for {
		select {
		case m := <-h.inbox:
			switch m.Topic() {
			case msg.Result:
				data, err := json.Marshal(m.Payload())
				if err != nil {
					continue
				}
				topic := h.config.Topic + "/" + m.PID().String()
				if token := client.Publish(topic, 0, false, data); token.Wait() && token.Error() != nil {
					log.Printf("unable to publish to mqtt broker: %v", token.Error())
				}

			case msg.Config:
			}

		case <-h.stop:
			break loop
		}
	}
	log.Println("[MQTT client] Process Shutdown")
}
