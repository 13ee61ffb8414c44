package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/mww/dreamsquad/config"
	"github.com/mww/dreamsquad/controller"
	"github.com/mww/dreamsquad/db"
	"github.com/mww/dreamsquad/feed"
	"github.com/mww/dreamsquad/scheduler"
	"github.com/mww/dreamsquad/scoring"
	"github.com/mww/dreamsquad/web"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).
		With("service", "dreamsquad")
	slog.SetDefault(logger)

	cfg, err := config.New()
	if err != nil {
		fatal("error loading configuration", err)
	}

	ctx := context.Background()
	if err := db.Migrate(ctx, cfg.Postgres.ConnString); err != nil {
		fatal("error migrating database", err)
	}

	clock := clock.New()
	db, err := db.New(ctx, cfg.Postgres.ConnString, clock)
	if err != nil {
		fatal("cannot connect to DB", err)
	}
	defer db.Close()

	var feedClient feed.Client
	var scores scoring.Source
	syncInterval := time.Duration(0)
	if cfg.FeedEnabled() {
		feedClient, err = feed.New(feed.Config{
			URL:          cfg.Feed.URL,
			APIKey:       cfg.Feed.APIKey,
			ClientID:     cfg.Feed.ClientID,
			ClientSecret: cfg.Feed.ClientSecret,
			TokenURL:     cfg.Feed.TokenURL,
			Timeout:      cfg.Feed.Timeout,
		})
		if err != nil {
			fatal("error creating feed client", err)
		}
		scores = scoring.NewFeed(feedClient)
		syncInterval = cfg.Scheduler.SyncInterval
	} else {
		slog.Warn("no player feed configured, scores will be random and the catalog is not synced")
		random, err := scoring.NewRandom()
		if err != nil {
			fatal("error creating random score source", err)
		}
		scores = random
	}

	ctrl, err := controller.New(clock, db, feedClient, scores)
	if err != nil {
		fatal("error creating a new controller", err)
	}

	var limiter web.RateLimiter
	if cfg.Redis.Addr != "" {
		limiter, err = web.NewRedisRateLimiter(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			slog.Warn("redis unavailable, using in-memory rate limiter", "addr", cfg.Redis.Addr, "error", err)
			limiter = web.NewMemoryRateLimiter()
		}
	} else {
		limiter = web.NewMemoryRateLimiter()
	}
	defer limiter.Close()

	server, err := web.NewServer(&web.Options{
		Port:          cfg.Server.Port,
		JWTSecret:     cfg.Server.JWTSecret,
		TokenTTL:      cfg.Server.TokenTTL,
		CORSOrigins:   cfg.Server.CORSOrigins,
		Limiter:       limiter,
		RateLimit:     cfg.Server.RateLimit,
		RateWindow:    cfg.Server.RateWindow,
		AdminUser:     cfg.Admin.User,
		AdminPassword: cfg.Admin.Password,
		Health:        db.Ping,
	}, ctrl)
	if err != nil {
		fatal("error creating new web server", err)
	}

	sched, err := scheduler.New(ctrl, syncInterval, cfg.Scheduler.ScoreInterval)
	if err != nil {
		fatal("error creating scheduler", err)
	}
	if err := sched.Start(); err != nil {
		fatal("error starting scheduler", err)
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-intChannel
		close(shutdown)

		if err := sched.Stop(); err != nil {
			slog.Error("error stopping scheduler", "error", err)
		}
		if err := waitTimeout(wg, 10*time.Second); err != nil {
			slog.Error("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	// Start the web server
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	// Wait for everything to stop.
	wg.Wait()
	slog.Info("server shutdown")
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
