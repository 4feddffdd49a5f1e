// Package main implements the entry point for the MixRead SRS API server,
// which schedules and serves spaced-repetition vocabulary reviews.
package main

import (
	"context"
	"log"
)

func main() {
	ctx := context.Background()

	app, err := newApplication(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
