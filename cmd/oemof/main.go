package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/elisagaudchau/oemof/internal/pkg/database/mongodb"
	"github.com/elisagaudchau/oemof/internal/pkg/database/sqldb"
	"github.com/elisagaudchau/oemof/internal/pkg/datastreams/mqtt"
	"github.com/elisagaudchau/oemof/internal/pkg/datastreams/natshandler"
	"github.com/elisagaudchau/oemof/internal/pkg/entity"
	"github.com/elisagaudchau/oemof/internal/pkg/model"
	"github.com/elisagaudchau/oemof/internal/pkg/solver"
	"github.com/elisagaudchau/oemof/internal/pkg/web"
)

// processor is the common surface of the result handlers.
type processor interface {
	Process()
	Stop()
}

type options struct {
	configDir string
	nats      bool
	mqtt      bool
	mongo     bool
	mysql     bool
	web       bool
}

func main() {
	opts := options{}
	flag.StringVar(&opts.configDir, "config", "./config", "path to the configuration directory")
	flag.BoolVar(&opts.nats, "nats", false, "stream run reports to NATS")
	flag.BoolVar(&opts.mqtt, "mqtt", false, "stream run reports to MQTT")
	flag.BoolVar(&opts.mongo, "mongo", false, "mirror run reports into MongoDB")
	flag.BoolVar(&opts.mysql, "mysql", false, "persist run reports in MySQL")
	flag.BoolVar(&opts.web, "web", false, "push run reports to the web service")
	flag.Parse()

	log.Println("[Main] Starting oemof v0.1.0")
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	log.Println("[Main] Reading Run Configuration")
	cfg, err := model.ReadConfig(filepath.Join(opts.configDir, "model/storage_invest.json"))
	if err != nil {
		panic(err)
	}

	log.Println("[Main] Reading Profiles")
	prof, err := readProfiles(filepath.Join(opts.configDir, "model/profiles.json"))
	if err != nil {
		panic(err)
	}

	log.Println("[Main] Assembling Energy System Graph")
	g, err := buildGraph(prof)
	if err != nil {
		panic(err)
	}

	log.Println("[Main] Building Model")
	m, err := model.New(cfg, g, solver.Simplex{})
	if err != nil {
		panic(err)
	}

	log.Println("[Main] Connecting Result Handlers")
	handlers, err := linkHandlers(m, opts)
	if err != nil {
		panic(err)
	}
	for _, h := range handlers {
		go h.Process()
	}

	log.Println("[Main] Solving", m.Name())
	res, err := m.Solve()
	if err != nil {
		log.Println("[Main]", err)
	} else {
		logResults(res)
	}

	if len(handlers) > 0 {
		log.Println("[Main] Awaiting Shutdown Signal")
		<-sigs
		log.Println("[Main] Stopping Handlers")
		for _, h := range handlers {
			h.Stop()
		}
	}
	log.Println("[Main] Stopping")
}

type profiles struct {
	Wind   []float64 `json:"wind"`
	PV     []float64 `json:"pv"`
	Demand []float64 `json:"demand"`
}

func readProfiles(path string) (profiles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return profiles{}, err
	}
	prof := profiles{}
	if err := json.Unmarshal(data, &prof); err != nil {
		return profiles{}, err
	}
	return prof, nil
}

// buildGraph assembles a single day of the classic storage sizing
// system: wind, pv and a gas turbine feed an electricity bus, and the
// run decides how much storage capacity to add.
func buildGraph(prof profiles) (*entity.Graph, error) {
	g := entity.NewGraph()
	nodes := []entity.Node{
		{
			UID:  "bgas",
			Spec: entity.BusSpec{Balanced: true, Price: 70},
		},
		{
			UID:  "bel",
			Spec: entity.BusSpec{Balanced: true, Excess: true},
		},
		{
			UID:     "rgas",
			Outputs: []string{"bgas"},
			Spec:    entity.CommoditySpec{SumOutLimit: 1500000},
		},
		{
			UID:     "wind",
			Outputs: []string{"bel"},
			Spec: entity.FixedSourceSpec{
				Val:     prof.Wind,
				RatedKW: 100000,
				Capex:   1000,
				OpexFix: 20,
				CRF:     0.08,
			},
		},
		{
			UID:     "pv",
			Outputs: []string{"bel"},
			Spec: entity.FixedSourceSpec{
				Val:     prof.PV,
				RatedKW: 100000,
				Capex:   900,
				OpexFix: 15,
				CRF:     0.08,
			},
		},
		{
			UID:    "demand",
			Inputs: []string{"bel"},
			Spec:   entity.SinkSpec{Val: prof.Demand},
		},
		{
			UID:     "pp_gas",
			Inputs:  []string{"bgas"},
			Outputs: []string{"bel"},
			Spec: entity.TransformerSpec{
				Eta:     []float64{0.58},
				OutMax:  []float64{10e10},
				OpexVar: 50,
			},
		},
		{
			UID:     "storage",
			Inputs:  []string{"bel"},
			Outputs: []string{"bel"},
			Spec: entity.StorageSpec{
				EtaIn:       1,
				EtaOut:      0.8,
				CRateIn:     1.0 / 6,
				CRateOut:    1.0 / 6,
				AddCapLimit: entity.Unlimited,
				Capex:       1000,
				OpexFix:     35,
			},
		},
	}
	for _, n := range nodes {
		if err := g.Add(n); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func linkHandlers(m *model.Model, opts options) ([]processor, error) {
	handlers := make([]processor, 0)
	if opts.nats {
		h, err := natshandler.New(filepath.Join(opts.configDir, "datastreams/nats_config.json"), m)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, &h)
	}
	if opts.mqtt {
		h, err := mqtt.New(filepath.Join(opts.configDir, "datastreams/mqtt_config.json"), m)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, &h)
	}
	if opts.mongo {
		h, err := mongodb.New(filepath.Join(opts.configDir, "database/mongodb_config.json"), m)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, &h)
	}
	if opts.mysql {
		h, err := sqldb.New(filepath.Join(opts.configDir, "database/sqldb_config.json"), m)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, &h)
	}
	if opts.web {
		h, err := web.New(filepath.Join(opts.configDir, "web/web_config.json"), m)
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, &h)
	}
	return handlers, nil
}

func logResults(res model.Results) {
	log.Println("[Main] Status:", res.Status())
	log.Println("[Main] Objective:", res.Objective())
	if addCap, ok := res.AddedCap("storage"); ok {
		log.Println("[Main] Storage capacity added:", addCap)
	}
	if gas := res.Flow("rgas", "bgas"); gas != nil {
		total := 0.0
		for _, v := range gas {
			total += v
		}
		log.Println("[Main] Gas consumed:", total)
	}
}
