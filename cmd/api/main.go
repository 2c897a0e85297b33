package main

import (
	"context"
	"log"

	"fieldproof/internal/app/bootstrap"
)

// API process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (ports + adapters + use cases).
// 3) Start HTTP server.
func main() {
	ctx := context.Background()
	app, err := bootstrap.BuildAPI(ctx)
	if err != nil {
		log.Fatalf("build api: %v", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("close api: %v", err)
		}
	}()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("run api: %v", err)
	}
}
