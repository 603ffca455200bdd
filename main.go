package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"mortgage-portal/internal/config"
	"mortgage-portal/internal/engine"
	"mortgage-portal/internal/handler"
	"mortgage-portal/internal/mutations"
	"mortgage-portal/internal/store"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eng := engine.New(engine.Options{
		Registry: mutations.NewRegistry(mutations.Options{StrictSteps: cfg.StrictSteps}),
	})
	wizards := store.New(cfg.SessionTTL, nil)
	if cfg.SessionTTL > 0 {
		go wizards.Run(ctx, cfg.SweepInterval)
	}

	router := handler.New(eng, wizards, cfg.MaxMutations).Router()
	server := &fasthttp.Server{
		Handler: fasthttpadaptor.NewFastHTTPHandler(router),
		Name:    "mortgage-portal",
	}

	go func() {
		<-ctx.Done()
		log.Printf("Shutting down")
		if err := server.Shutdown(); err != nil {
			log.Printf("Shutdown failed: %v", err)
		}
	}()

	log.Printf("Mortgage portal starting on port %s (strict steps: %t)", cfg.Port, cfg.StrictSteps)
	if err := server.ListenAndServe(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
