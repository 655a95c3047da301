package sqldb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/elisagaudchau/oemof/internal/pkg/model"
	"github.com/elisagaudchau/oemof/internal/pkg/msg"

	_ "github.com/go-sql-driver/mysql"
)

// Handler persists run reports to MySQL, one row per model keyed by
// the model pid.
type Handler struct {
	mux    *sync.Mutex
	inbox  <-chan msg.Msg
	pid    uuid.UUID
	config config
	stop   chan bool
}

type config struct {
	Server   string `json:"Server"`
	Port     int    `json:"Port"`
	Username string `json:"Username"`
	Password string `json:"Password"`
	Database string `json:"Database"`
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

// DB opens a lazy handle on the configured MySQL database.
func (h Handler) DB() (*sql.DB, error) {
	uri := fmt.Sprintf("%v:%v@tcp(%v:%v)/%v", h.config.Username, h.config.Password, h.config.Server, h.config.Port, h.config.Database)
	db, err := sql.Open("mysql", uri)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func (h Handler) Process() {
	log.Println("[MySQL] Process Started")
	db, err := h.DB()
	if err != nil {
		panic(err) // TODO: reconnect with backoff instead of dying
	}
	defer db.Close()

	if err := initDBTables(db); err != nil {
		panic(err)
	}

loop:
	for {
		select {
		case m := <-h.inbox:
			switch m.Topic() {
			case msg.Result:
				if err := upsertRun(db, m); err != nil {
					log.Printf("[MySQL] unable to store run: %v", err)
				}

			case msg.Config:
			}

		case <-h.stop:
			break loop
		}
	}
	log.Println("[MySQL] Process Shutdown")
}

func initDBTables(db *sql.DB) error {
	sqlStatement := `CREATE TABLE IF NOT EXISTS runs(
		uuid VARCHAR(36) PRIMARY KEY,
		name VARCHAR(64),
		status VARCHAR(16),
		objective DOUBLE,
		report BLOB)`
	_, err := db.Exec(sqlStatement)
	return err
}

func upsertRun(db *sql.DB, m msg.Msg) error {
	rep, ok := m.Payload().(model.Report)
	if !ok {
		return fmt.Errorf("payload from %v is not a run report.", m.PID())
	}
	data, err := json.Marshal(rep)
	if err != nil {
		return err
	}

	sqlStatement := `INSERT INTO runs (uuid, name, status, objective, report)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
		name=VALUES(name), status=VALUES(status),
		objective=VALUES(objective), report=VALUES(report)`

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()
	_, err = db.ExecContext(ctx, sqlStatement, m.PID().String(), rep.Name, rep.Status, rep.Objective, data)
	return err
}
