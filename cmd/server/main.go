package main

import (
	"context"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/config"
	"github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/database"
	"github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/router"
	"github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/storage"
	"github.com/edgarxmendoxa74-blip/gabzab-foodhouse/internal/ws"
)

func main() {
	cfg := config.Load()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Unable to ping database: %v", err)
	}
	log.Println("Connected to database")

	queries := database.New(pool)

	hub := ws.NewHub()
	go hub.Run()

	store := storage.New(cfg.StorageURL, cfg.StorageKey, cfg.StorageBucket)
	if !store.Enabled() {
		log.Println("WARNING: STORAGE_URL not set, image uploads disabled")
	}

	r := router.New(cfg, queries, pool, hub, store)

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
