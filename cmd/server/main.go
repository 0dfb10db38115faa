package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/JustJay7/datajud-bridge/internal/cache"
	"github.com/JustJay7/datajud-bridge/internal/cnj"
	"github.com/JustJay7/datajud-bridge/internal/config"
	"github.com/JustJay7/datajud-bridge/internal/consulta"
	"github.com/JustJay7/datajud-bridge/internal/database"
	"github.com/JustJay7/datajud-bridge/internal/datajud"
	"github.com/JustJay7/datajud-bridge/internal/reply"
	"github.com/JustJay7/datajud-bridge/internal/server"
	"github.com/JustJay7/datajud-bridge/pkg/logger"
)

func main() {
	var migrate bool
	var text string
	flag.BoolVar(&migrate, "migrate", false, "Run database migrations")
	flag.StringVar(&text, "consulta", "", "Look up the process number in the given text and print the reply")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to initialize database", "error", err)
	}

	if migrate {
		if err := database.Migrate(db); err != nil {
			log.Fatal("Failed to run migrations", "error", err)
		}
		log.Info("Database migrations completed successfully")
		return
	}

	store := database.NewStore(db)
	cacheService := cache.NewCache(cfg.CacheSize, cfg.CacheTTL)
	client := datajud.NewClient(datajud.Config{
		BaseURL: cfg.DatajudBaseURL,
		APIKey:  cfg.DatajudAPIKey,
		Timeout: cfg.DatajudTimeout,
	}, nil, log)
	service := consulta.NewService(client, cacheService, reply.NewFormatter(cfg.Location()), store, cfg.DatajudTimeout, log)

	if text != "" {
		out := service.Lookup(context.Background(), text, "cli")
		if out.Success {
			fmt.Printf("%s (%s)\n\n", cnj.Format(out.ProcessNumber), out.Tribunal)
		}
		fmt.Println(out.Message)
		if !out.Success {
			os.Exit(2)
		}
		return
	}

	srv := server.New(cfg, service, store, cacheService, log)

	log.Info("Starting DataJud bridge",
		"host", cfg.Host,
		"port", cfg.Port,
		"datajud", cfg.DatajudBaseURL,
		"cache_enabled", cacheService.Enabled(),
	)

	if err := srv.Run(); err != nil {
		log.Fatal("Server failed", "error", err)
	}
}
