package main

// Run the background job worker:
//   go run ./cmd/worker

import (
	"log"
	"os"
	"strconv"

	"catdocs-backend/internal/bootstrap"
	"catdocs-backend/internal/jobs"
	"catdocs-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer app.Close()

	concurrency, _ := strconv.Atoi(os.Getenv("WORKER_CONCURRENCY"))

	worker, err := jobs.NewWorker(cfg.RedisURL, app.DocumentsRepo, app.Store, app.Enqueuer, app.Rewriter, concurrency)
	if err != nil {
		log.Fatalf("worker: %v", err)
	}

	log.Printf("Starting job worker")
	if err := worker.Run(); err != nil {
		log.Fatalf("worker error: %v", err)
	}
}
