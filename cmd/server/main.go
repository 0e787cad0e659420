package main

import (
	"context"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cinemate/cinemate/internal/config"
	"github.com/cinemate/cinemate/internal/database"
	postgresrepo "github.com/cinemate/cinemate/internal/repository/postgres"
	"github.com/cinemate/cinemate/internal/service"
	"github.com/cinemate/cinemate/internal/transport/http/handlers"
	"github.com/cinemate/cinemate/internal/transport/http/middleware"
	"github.com/cinemate/cinemate/internal/transport/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Database
	if err := database.Migrate(cfg); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}
	pool, err := database.Connect(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer pool.Close()
	log.Info().Msg("connected to database")

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	interestRepo := postgresrepo.NewInterestRepo(pool)
	matchRepo := postgresrepo.NewMatchRepo(pool)
	messageRepo := postgresrepo.NewMessageRepo(pool)

	// Services
	candidateService := service.NewCandidateService(interestRepo)
	matchService := service.NewMatchService(matchRepo, userRepo, interestRepo, messageRepo)

	// WebSocket hub delivers best-effort notifications
	hub := ws.NewHub()
	go hub.Run()
	matchService.SetNotifier(ws.NewHubNotifier(hub))

	// Handlers
	candidateHandler := handlers.NewCandidateHandler(candidateService)
	matchHandler := handlers.NewMatchHandler(matchService)

	auth := middleware.Auth(cfg.JWTSecret)

	// Routes
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})

	mux.Handle("GET /api/v1/candidates", auth(http.HandlerFunc(candidateHandler.List)))
	mux.Handle("POST /api/v1/matches/requests", auth(http.HandlerFunc(matchHandler.Request)))
	mux.Handle("POST /api/v1/matches/decline", auth(http.HandlerFunc(matchHandler.Decline)))
	mux.Handle("GET /api/v1/matches/status", auth(http.HandlerFunc(matchHandler.Status)))
	mux.Handle("GET /api/v1/matches/active", auth(http.HandlerFunc(matchHandler.ListActive)))

	mux.HandleFunc("GET /ws", ws.ServeWS(hub, cfg.JWTSecret))

	// Start server with CORS
	addr := ":" + cfg.ServerPort
	log.Info().Str("addr", addr).Msg("starting server")
	if err := http.ListenAndServe(addr, middleware.CORS(mux)); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
