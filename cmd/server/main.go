package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/restohub-rw/api/internal/config"
	"github.com/restohub-rw/api/internal/router"
	"github.com/restohub-rw/api/internal/seed"
	"github.com/restohub-rw/api/internal/state"
	"github.com/restohub-rw/api/internal/store"
	"github.com/restohub-rw/api/internal/ws"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	var st store.Store
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Unable to connect to database: %v", err)
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			log.Fatalf("Unable to ping database: %v", err)
		}
		log.Println("Connected to database")
		st = store.NewPostgres(pool)
	} else {
		log.Println("DATABASE_URL not set, using in-memory seed store")
		st = store.NewMemoryFromSeed()
	}

	hub := ws.NewHub()
	go hub.Run()

	container := state.New(st, seed.OwnerID, hub)

	r := router.New(cfg, st, container, hub)

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatal(err)
	}
}
