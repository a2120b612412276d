package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/openhex/settlers/api/internal/config"
	"github.com/openhex/settlers/api/internal/handler"
	"github.com/openhex/settlers/api/internal/logger"
	"github.com/openhex/settlers/api/internal/middleware"
	"github.com/openhex/settlers/api/internal/registry"
)

func main() {
	godotenv.Load()
	logger.Init()
	cfg := config.Load()

	// State
	reg := registry.New()
	wsHub := handler.NewHub()

	// Handlers
	gameHandler := handler.NewGameHandler(reg, wsHub)
	providerHandler := handler.NewProviderHandler()
	wsHandler := handler.NewWSHandler(wsHub)

	// Router
	mux := http.NewServeMux()

	// Health
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	api := http.NewServeMux()
	api.HandleFunc("POST /games", gameHandler.CreateGame)
	api.HandleFunc("GET /games", gameHandler.ListGames)
	api.HandleFunc("DELETE /games", gameHandler.DeleteAllGames)
	api.HandleFunc("GET /games/{id}", gameHandler.GetGame)
	api.HandleFunc("DELETE /games/{id}", gameHandler.DeleteGame)
	api.HandleFunc("POST /games/{id}/actions", gameHandler.ApplyAction)
	api.HandleFunc("POST /games/{id}/agent-turn", gameHandler.AgentTurn)
	api.HandleFunc("POST /providers/verify", providerHandler.VerifyCredentials)

	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", api))

	// WebSocket bypasses the JSON middleware via Hijacker
	mux.HandleFunc("GET /api/v1/ws", wsHandler.ServeWS)

	// Apply global middleware
	root := middleware.Chain(mux, middleware.Logger, middleware.CORS(cfg.AllowedOrigins), middleware.JSON)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown error")
	}
	log.Info().Msg("Server stopped")
}
