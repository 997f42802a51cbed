package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"geocatalog/internal/config"
	"geocatalog/internal/handler"
	"geocatalog/internal/hub"
	"geocatalog/internal/repository/sqldb"
	"geocatalog/internal/service"
	"geocatalog/internal/watcher"
)

func main() {
	configPath := flag.String("config", "", "config file path (default: search standard locations)")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	database := flag.String("db", "", "database connection URL (overrides config)")
	setup := flag.Bool("setup", false, "create the records table and indexes, then continue")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting geocatalog server...")

	// Load configuration
	var cfg *config.Config
	var cfgFile string
	var err error
	if *configPath != "" {
		cfg, cfgFile, err = config.LoadFromPath(*configPath)
	} else {
		cfg, cfgFile, err = config.Load()
	}
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfgFile != "" {
		log.Printf("Config loaded: %s", cfgFile)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *database != "" {
		cfg.Repository.Database = *database
	}

	// Rank weights must be set before the first engine opens
	sqldb.ConfigureRankWeights(cfg.Rank.KT, cfg.Rank.KQ)

	// Bind the repository
	registry := sqldb.NewEngineRegistry()
	defer registry.Close()

	repo, err := sqldb.New(registry, sqldb.Options{
		Database:   cfg.Repository.Database,
		Table:      cfg.Repository.Table,
		Filter:     cfg.Repository.Filter,
		Queryables: config.BuildQueryables(cfg),
		Namespaces: cfg.Metadata.Namespaces,
	})
	if err != nil {
		log.Fatalf("Failed to bind repository: %v", err)
	}
	defer repo.Close()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := repo.WaitReady(waitCtx, 2*time.Second); err != nil {
		waitCancel()
		log.Fatalf("Repository not reachable: %v", err)
	}
	waitCancel()

	if *setup {
		if err := repo.Setup(context.Background()); err != nil {
			log.Fatalf("Failed to set up schema: %v", err)
		}
		log.Println("Schema ready")
	}

	// Initialize event bus and SSE hub
	eventBus := service.NewEventBus()
	sseHub := hub.New()

	hubCtx, hubCancel := context.WithCancel(context.Background())
	defer hubCancel()
	go sseHub.Run(hubCtx)

	eventChan := make(chan service.Event, 100)
	eventBus.Subscribe(eventChan)
	go func() {
		for event := range eventChan {
			sseHub.Broadcast(event)
		}
	}()

	// Initialize service and handlers
	catalogSvc := service.NewCatalogService(repo, eventBus)
	catalogHandler := handler.NewCatalogHandler(catalogSvc)

	// Setup routes
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/search", catalogHandler.Search)

	mux.HandleFunc("GET /api/records", catalogHandler.ListRecords)
	mux.HandleFunc("POST /api/records", catalogHandler.CreateRecord)
	mux.HandleFunc("GET /api/records/{id}", catalogHandler.GetRecord)
	mux.HandleFunc("PUT /api/records/{id}", catalogHandler.UpdateRecord)
	mux.HandleFunc("POST /api/records/properties", catalogHandler.UpdateProperties)
	mux.HandleFunc("DELETE /api/records", catalogHandler.DeleteRecords)

	mux.HandleFunc("GET /api/collections", catalogHandler.ListCollections)
	mux.HandleFunc("GET /api/domain/{property}", catalogHandler.GetDomain)
	mux.HandleFunc("GET /api/harvested", catalogHandler.ListHarvested)

	mux.HandleFunc("GET /api/summary", catalogHandler.GetSummary)
	mux.HandleFunc("GET /api/schema", catalogHandler.GetSchema)
	mux.HandleFunc("POST /api/maintenance/{action}", catalogHandler.Maintain)
	mux.HandleFunc("GET /api/health", catalogHandler.Health)

	mux.Handle("GET /events", sseHub)

	// Apply middleware
	finalHandler := handler.Chain(mux,
		handler.Recover,
		handler.CORS,
		handler.Logger,
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      finalHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Reload notification when the config file changes on disk. The
	// repository binding itself is immutable for the process lifetime;
	// the event tells clients a restart will pick up the new settings.
	if cfgFile != "" {
		watchCtx, watchCancel := context.WithCancel(context.Background())
		defer watchCancel()
		w := watcher.New(cfgFile, func() {
			catalogSvc.NotifyReload(cfgFile)
		})
		go func() {
			if err := w.Watch(watchCtx); err != nil && watchCtx.Err() == nil {
				log.Printf("Config watcher stopped: %v", err)
			}
		}()
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
