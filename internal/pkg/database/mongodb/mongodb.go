package mongodb

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"sync"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/elisagaudchau/oemof/internal/pkg/msg"
)

// Handler mirrors run reports and model configurations into MongoDB,
// one document per model.
type Handler struct {
	mux    *sync.Mutex
	inbox  <-chan msg.Msg
	pid    uuid.UUID
	config config
	stop   chan bool
}

type config struct {
	URI      string `json:"URI"`
	Database string `json:"Database"`
	Port     string `json:"Port"`
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

func msgToBSON(m msg.Msg) bson.D {
	// TODO: PID should be written as a binary of subtype 0x04 (UUID
	// standard). Currently written as a string.
	return bson.D{
		{"$set", bson.M{
			"pid":  m.PID().String(),
			"data": m.Payload(),
		}},
	}
}

func (h *Handler) Stop() {
	h.stop <- true
}

func (h Handler) Process() {
	// TODO: Handle reconnection to the MongoDB resource
	client, err := mongo.NewClient(options.Client().ApplyURI(h.config.URI + ":" + h.config.Port))
	if err != nil {
		log.Println(err)
	}

	ctx := context.TODO()
	err = client.Connect(ctx)
	if err != nil {
		log.Println(err)
	}
	defer client.Disconnect(ctx)

	client.Database(h.config.Database).Collection("runResults").Drop(ctx)
	client.Database(h.config.Database).Collection("runConfig").Drop(ctx)
loop:
	for {
		select {
		case m := <-h.inbox:
			switch m.Topic() {
			case msg.Result:
				opts := options.Update().SetUpsert(true)
				_, err = client.Database(h.config.Database).Collection("runResults").UpdateOne(
					ctx,
					bson.M{"pid": m.PID().String()},
					msgToBSON(m),
					opts,
				)

				if err != nil {
					log.Printf("[Mongo] unable to store run result: %v", err)
				}

			case msg.Config:
				log.Println("[Mongo] Config:", m)
				opts := options.Update().SetUpsert(true)
				_, err = client.Database(h.config.Database).Collection("runConfig").UpdateOne(
					ctx,
					bson.M{"pid": m.PID().String()},
					msgToBSON(m),
					opts,
				)

				if err != nil {
					log.Printf("[Mongo] unable to store run config: %v", err)
				}
			}
		case <-h.stop:
			break loop
		}
	}
	log.Println("[Mongo] Process Shutdown")
}
