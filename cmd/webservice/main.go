package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/elisagaudchau/oemof/internal/pkg/webservice"
	"github.com/elisagaudchau/oemof/internal/pkg/webservice/models"
)

func main() {
	port := flag.String("port", ":8080", "address the service listens on")
	usePG := flag.Bool("pg", false, "persist runs in PostgreSQL instead of memory")
	flag.Parse()

	var store webservice.Store = webservice.NewMemStore()
	if *usePG {
		pg, err := models.NewPGStore()
		if err != nil {
			log.Fatal("unable to open run store:", err)
		}
		store = pg
	}

	app := webservice.App{Store: store}

	log.Println("Starting Server on Port", *port)
	if err := http.ListenAndServe(*port, app.Router()); err != nil {
		log.Fatal(err)
	}
}
