package main

import (
	"context"
	"log"

	"pdf-extractor-be/internal/bootstrap"
	"pdf-extractor-be/internal/config"
	"pdf-extractor-be/internal/server"
	"pdf-extractor-be/internal/tracer"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration (fails fast when the Gemini API key is missing)
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)
	defer container.Logger.Sync()

	// 3. Initialize Server
	srv := server.New(cfg, container)

	// 4. Run Server
	log.Fatal(srv.Run())
}
