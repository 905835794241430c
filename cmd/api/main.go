package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/error7buddy/KiLagbe.Com/config"
	authfb "github.com/error7buddy/KiLagbe.Com/internal/auth"
	authmw "github.com/error7buddy/KiLagbe.Com/internal/auth/middleware"
	"github.com/error7buddy/KiLagbe.Com/internal/bootstrap"
	"github.com/error7buddy/KiLagbe.Com/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	log := logger.New(cfg.Log)
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := bootstrap.OpenStores(ctx, cfg.Store, log)
	if err != nil {
		log.WithError(err).Fatal("failed to open store")
	}

	var verifier authmw.TokenVerifier
	if cfg.Auth.Enabled() {
		client, err := authfb.InitializeFirebase(ctx, cfg.Auth)
		if err != nil {
			log.WithError(err).Fatal("failed to initialize firebase")
		}
		verifier = client
	} else {
		log.Warn("FIREBASE_CREDENTIALS_PATH not set; admin routes are not protected")
	}

	images, uploadDir, err := bootstrap.OpenImageStorage(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to set up image storage")
	}

	limiter, rdb := bootstrap.NewLimiter(ctx, cfg.RateLimit, log)

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		Config:         cfg,
		Log:            log,
		Stores:         stores,
		Limiter:        limiter,
		Verifier:       verifier,
		Images:         images,
		LocalUploadDir: uploadDir,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"port":  cfg.Server.Port,
			"store": cfg.Store.Driver,
			"env":   cfg.App.Environment,
		}).Info("server starting")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if err := stores.Close(shutdownCtx); err != nil {
		log.WithError(err).Error("failed to close store")
	}
}
