package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"sanachat/internal/api"
	"sanachat/internal/config"
	"sanachat/internal/history"
	"sanachat/internal/metrics"
	"sanachat/internal/service/ai"
	"sanachat/internal/service/chat"
	"sanachat/internal/speech"
	"sanachat/internal/worker"
)

func main() {
	// .env is optional; environment variables win either way.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}

	cfg, err := config.Load(os.Getenv("SANACHAT_CONFIG"))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	store, closeStore, err := history.Open(cfg)
	if err != nil {
		log.Fatalf("open history store: %v", err)
	}
	defer closeStore()

	ctx := context.Background()
	completer, err := ai.NewService(ctx, cfg)
	if err != nil {
		log.Fatalf("init completion service: %v", err)
	}

	recognizer, err := speech.NewRecognizer(ctx)
	if err != nil {
		log.Fatalf("init speech recognizer: %v", err)
	}
	defer recognizer.Close()

	pool := worker.New(cfg.BasicConfig.WorkerCount)
	defer pool.Close()

	svc := chat.NewService(store, completer, recognizer, speech.NewSynthesizer(), pool, cfg.BasicConfig.DefaultLanguage)

	m := metrics.New()
	router := api.NewRouter(api.NewHandler(svc, m), cfg.BasicConfig.AllowedOrigin)

	addr := cfg.BasicConfig.ServerAddress
	log.Printf("listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
