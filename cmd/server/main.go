package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/fyyur/fyyur/internal/config"
	"github.com/fyyur/fyyur/internal/database"
	"github.com/fyyur/fyyur/internal/handler"
	"github.com/fyyur/fyyur/internal/listing"
	applog "github.com/fyyur/fyyur/internal/logger"
	"github.com/fyyur/fyyur/internal/middleware"
	"github.com/fyyur/fyyur/internal/queue"
	"github.com/fyyur/fyyur/internal/repository"
	"github.com/fyyur/fyyur/internal/router"
	"github.com/fyyur/fyyur/internal/view"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()

	zl, err := applog.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	// Pick the backing store: MySQL in normal operation, memory for
	// local development without a database.
	var (
		venues  listing.VenueStore
		artists listing.ArtistStore
		shows   listing.ShowStore
	)
	switch cfg.Store {
	case "memory":
		zl.Info("using in-memory store")
		mem := listing.NewMemoryStore()
		venues, artists, shows = mem.VenueStore(), mem.ArtistStore(), mem.ShowStore()
	default:
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			zl.Fatal("database connection failed", zap.Error(err))
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := database.EnsureSchema(ctx, db); err != nil {
			cancel()
			zl.Fatal("schema setup failed", zap.Error(err))
		}
		cancel()
		venues = repository.NewVenueRepo(db)
		artists = repository.NewArtistRepo(db)
		shows = repository.NewShowRepo(db)
	}

	svc := listing.NewService(venues, artists, shows, zl)
	h := handler.New(svc, zl, cfg.AMQPURL)

	renderer, err := view.New()
	if err != nil {
		zl.Fatal("template setup failed", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(zl)
	e.Use(echomw.Recover())
	e.Use(middleware.PageViews())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), config.NewRedisClient()))

	router.RegisterRoutes(e, h)
	router.RegisterVenues(e, h)
	router.RegisterArtists(e, h)
	router.RegisterShows(e, h)

	// Background consumer writes each new listing to logs/listing.log.
	if cfg.AMQPURL != "" {
		go func() {
			if err := queue.StartListingConsumer(cfg.AMQPURL); err != nil {
				zl.Warn("listing consumer stopped", zap.Error(err))
			}
		}()
	}

	addr := ":" + cfg.Port
	zl.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env), zap.String("store", cfg.Store))
	if err := e.Start(addr); err != nil {
		zl.Fatal("server failed", zap.Error(err))
	}
}
