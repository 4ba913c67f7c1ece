package main

import (
	"context"
	"log"

	"collectible-documenter-be/internal/bootstrap"
	"collectible-documenter-be/internal/config"
	"collectible-documenter-be/internal/server"
	"collectible-documenter-be/internal/tracer"
)

func main() {
	// 1. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 2. Load Configuration
	cfg := config.Load()

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(context.Background(), cfg)
	defer container.Logger.Sync()

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Cleanup Service...")
		if err := container.CleanupService.Consume(context.Background()); err != nil {
			log.Printf("Background Cleanup Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
