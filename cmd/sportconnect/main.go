package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/emreyozkan/SportConnect/internal/auth"
	"github.com/emreyozkan/SportConnect/internal/config"
	"github.com/emreyozkan/SportConnect/internal/db"
	"github.com/emreyozkan/SportConnect/internal/feed"
	handlerHttp "github.com/emreyozkan/SportConnect/internal/handler/http"
	"github.com/emreyozkan/SportConnect/internal/post"
	"github.com/emreyozkan/SportConnect/internal/session"
	"github.com/emreyozkan/SportConnect/internal/user"
)

func main() {
	if os.Getenv("LOG_PRETTY") == "1" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	log.Info().Msg("Starting SportConnect...")

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	if cfg.SessionSecret == config.DefaultSessionSecret {
		log.Warn().Msg("SESSION_SECRET is using the development default")
	}

	database, err := db.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	var sessions session.Store
	if cfg.RedisURL != "" {
		sessions, err = session.NewRedisStore(cfg.RedisURL, cfg.SessionTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		log.Info().Msg("Using Redis session store")
	} else {
		sessions = session.NewMemoryStore(cfg.SessionTTL)
		log.Info().Msg("Using in-memory session store")
	}

	userRepository := user.NewRepository(database.Pool)
	postRepository := post.NewRepository(database.Pool)
	authService := auth.NewService(userRepository, sessions)
	feedService := feed.NewService(userRepository, postRepository)

	renderer, err := handlerHttp.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load templates")
	}
	handler := handlerHttp.NewHandler(authService, feedService, renderer, cfg.SessionSecret)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Str("port", cfg.Port).Msg("Could not listen")
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	<-stopCh

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown failed")
	}

	if err := sessions.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close session store")
	}
	database.Close()

	log.Info().Msg("SportConnect stopped gracefully.")
}
