package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"logichain-web/internal/apiclient"
	"logichain-web/internal/audit"
	"logichain-web/internal/config"
	"logichain-web/internal/database"
	"logichain-web/internal/logging"
	"logichain-web/internal/metrics"
	"logichain-web/internal/server"
	"logichain-web/internal/session"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New(os.Stderr, "error", "text").Error("config", "error", err)
		os.Exit(1)
	}
	log := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.GinMode)

	var rec audit.Recorder = audit.Nop{}
	if cfg.DBDSN != "" {
		db, err := database.Open(cfg.DBDSN, log)
		if err != nil {
			log.Error("database", "error", err)
			os.Exit(1)
		}
		rec = audit.NewStore(db, log)
	} else {
		log.Info("DB_DSN not set, audit trail disabled")
	}

	_, m := metrics.NewRegistry()

	api, err := apiclient.New(cfg.APIBaseURL, session.ContextTokens{},
		apiclient.WithTimeout(cfg.APITimeout),
		apiclient.WithObserver(m.ObserveAPI),
	)
	if err != nil {
		log.Error("api client", "error", err)
		os.Exit(1)
	}

	backend, err := session.NewCookieBackend([]byte(cfg.SessionSecret), session.CookieOptions{
		MaxAge: int(cfg.SessionMaxAge / time.Second),
		Secure: cfg.SessionSecure,
	})
	if err != nil {
		log.Error("session store", "error", err)
		os.Exit(1)
	}

	r, err := server.NewRouter(server.Deps{
		Config:  cfg,
		API:     api,
		Backend: backend,
		Audit:   rec,
		Metrics: m,
		Log:     log,
	})
	if err != nil {
		log.Error("router", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("starting server", "addr", srv.Addr, "api", api.BaseURL())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "error", err)
	}
}
