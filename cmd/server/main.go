package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	"beast-ride-saga/server/config"
	"beast-ride-saga/server/handlers"
	"beast-ride-saga/server/messages"
	"beast-ride-saga/server/network"
	"beast-ride-saga/server/persistence"
	"beast-ride-saga/server/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow connections from any origin during development
		return true
	},
}

func openStorage(cfg config.StorageConfig, logger *log.Logger) (persistence.Storage, error) {
	switch cfg.Type {
	case config.StoragePostgres:
		logger.Println("Using PostgreSQL persistence")
		return persistence.NewPostgresStore(cfg.DSN)
	case config.StorageSQLite:
		logger.Println("Using SQLite persistence")
		return persistence.NewSQLiteStore(cfg.Path)
	default:
		logger.Println("Using JSON persistence")
		return persistence.NewJSONStore(cfg.Path)
	}
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Invalid config: %v", err)
	}

	db, err := openStorage(cfg.Storage, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize persistence: %v", err)
	}
	defer db.Close()

	logger.Println("Persistence initialized successfully")

	opts := services.Options{
		SnapshotDir: cfg.Snapshots.Dir,
		ChunkSize:   16,
		ViewRadius:  1,
		Logger:      logger,
	}
	if cfg.Events.Enabled {
		opts.Events = persistence.NewEventLog(cfg.Events.Dir)
		defer opts.Events.Close()
	}

	gen := cfg.Generation
	defaults := services.GenerateOptions{
		Width:           gen.Width,
		Height:          gen.Height,
		Seed:            gen.Seed,
		DiffusionPasses: gen.DiffusionPasses,
		NoiseAmplitude:  gen.NoiseAmplitude,
		RiverCount:      gen.RiverCount,
	}

	playerService := services.NewPlayerService(db, opts)
	clientManager := handlers.NewClientManager(logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Printf("Failed to upgrade connection: %v", err)
			return
		}
		conn := network.NewConnection(ws, cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, logger)
		handlers.HandleClientConnection(conn, playerService, clientManager, defaults, logger)
	})

	srv := &http.Server{Addr: ":" + cfg.Server.Port, Handler: mux}

	go func() {
		logger.Printf("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Printf("Shutting down, saving %d sessions", clientManager.Count())
	clientManager.ExecuteOnAllClients(func(c *handlers.ClientHandler) {
		if err := c.Save(); err != nil {
			logger.Printf("Error saving session: %v", err)
		}
	})
	clientManager.BroadcastToAll(messages.BaseMessage{
		Type:    messages.MessageTypeError,
		Payload: messages.ErrorMessage{Code: "SHUTDOWN", Message: "Server is shutting down"},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("Shutdown error: %v", err)
	}
}
