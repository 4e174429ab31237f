package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"github.com/edwardvalandre-netizen/ugel-monitor/internal/config"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/database"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/handlers"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/logging"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/metrics"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/resources"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/server"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/users"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/visits"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	db, err := database.Open(cfg.DBDriver, cfg.DBDSN, log)
	if err != nil {
		return err
	}

	userStore := users.NewStore(db)
	created, err := userStore.EnsureAdmin(context.Background(), cfg.AdminUsername, cfg.AdminPassword, cfg.AdminFullName)
	if err != nil {
		return err
	}
	if created {
		log.WithField("username", cfg.AdminUsername).Warn("bootstrap admin created, change its password")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	h := handlers.New(handlers.Deps{
		DB:        db,
		Users:     userStore,
		Visits:    visits.NewStore(db),
		Resources: resources.NewLibrary(cfg.ResourcesDir),
		Metrics:   m,
		Log:       log,
	})
	engine := server.NewRouter(server.Options{
		Config:   cfg,
		Handler:  h,
		Users:    userStore,
		Metrics:  m,
		Gatherer: reg,
		Log:      log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           server.WithCSRF(cfg, log, engine),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("starting server")
		errc <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case sig := <-stop:
		log.WithField("signal", sig.String()).Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return nil
}
