package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskgraph-api/internal/config"
	"github.com/yukikurage/taskgraph-api/internal/database"
	"github.com/yukikurage/taskgraph-api/internal/graph"
	"github.com/yukikurage/taskgraph-api/internal/handlers"
	"github.com/yukikurage/taskgraph-api/internal/logger"
	"github.com/yukikurage/taskgraph-api/internal/repository"
	"github.com/yukikurage/taskgraph-api/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	store := repository.NewStore(db)
	svc := handlers.Services{
		Users:     services.NewUserService(store, cfg.DeniedUsernames),
		Projects:  services.NewProjectService(store),
		Tasks:     services.NewTaskService(store),
		Comments:  services.NewCommentService(store),
		Activity:  services.NewActivityService(store),
		Analytics: services.NewAnalyticsService(store, graph.Options{DedupeSimilar: cfg.DedupeSimilarEdges}, log),
	}

	if cfg.SeedUsers {
		if err := svc.Users.SeedDefaults(); err != nil {
			log.Fatal().Err(err).Msg("failed to seed users")
		}
	}

	sessionStore, err := newSessionStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create session store")
	}

	r := handlers.NewRouter(svc, sessionStore, cfg.Session.CookieName, log)

	// Start server
	log.Info().Str("port", cfg.Port).Str("db", cfg.Database.Driver).Msg("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	switch cfg.Session.Store {
	case "redis":
		redisAddr := cfg.Session.RedisHost + ":" + cfg.Session.RedisPort
		s, err := redisStore.NewStore(
			cfg.Session.RedisPool,
			"tcp",
			redisAddr,
			"", // username (empty for default user)
			"", // password (empty = no password)
			[]byte(cfg.Session.Secret),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis store: %w", err)
		}
		store = s
	case "cookie", "":
		store = cookie.NewStore([]byte(cfg.Session.Secret))
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}

	// Configure session options based on environment
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsRelease(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}
