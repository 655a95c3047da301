// Package models persists run reports in PostgreSQL.
package models

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/elisagaudchau/oemof/internal/pkg/model"
)

const (
	host    = "localhost"
	port    = 5432
	user    = "postgres"
	dbname  = "oemof"
	sslmode = "disable"
)

// NewDB returns a database reference
func NewDB() (*sql.DB, error) {
	psqlInfo := fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s",
		host, port, user, dbname, sslmode)

	db, err := sql.Open("postgres", psqlInfo)

	return db, err
}

// PGStore implements the webservice store on PostgreSQL.
type PGStore struct {
	db *sql.DB
}

func NewPGStore() (*PGStore, error) {
	db, err := NewDB()
	if err != nil {
		return nil, err
	}
	if err := createTables(db); err != nil {
		return nil, err
	}
	return &PGStore{db: db}, nil
}

// createTables initializes the database schema
func createTables(db *sql.DB) error {
	runsTable := `
	CREATE TABLE IF NOT EXISTS runs (
		pid UUID PRIMARY KEY,
		name TEXT,
		status TEXT,
		objective FLOAT,
		report JSONB
	);`
	_, err := db.Exec(runsTable)
	return err
}

func (s *PGStore) Put(rep model.Report) error {
	data, err := json.Marshal(rep)
	if err != nil {
		return err
	}

	sqlStatement := `
	INSERT INTO runs (pid, name, status, objective, report)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (pid) DO UPDATE SET
	name = EXCLUDED.name, status = EXCLUDED.status,
	objective = EXCLUDED.objective, report = EXCLUDED.report;`

	_, err = s.db.Exec(sqlStatement, rep.PID, rep.Name, rep.Status, rep.Objective, data)
	return err
}

func (s *PGStore) Get(pid uuid.UUID) (model.Report, bool) {
	row := s.db.QueryRow(`SELECT report FROM runs WHERE pid = $1`, pid)

	var data []byte
	if err := row.Scan(&data); err != nil {
		return model.Report{}, false
	}

	rep := model.Report{}
	if err := json.Unmarshal(data, &rep); err != nil {
		return model.Report{}, false
	}
	return rep, true
}

func (s *PGStore) All() []model.Report {
	rows, err := s.db.Query(`SELECT report FROM runs`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	all := []model.Report{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			continue
		}
		rep := model.Report{}
		if err := json.Unmarshal(data, &rep); err != nil {
			continue
		}
		all = append(all, rep)
	}
	return all
}
