package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/condoguard/backend/internal/classify"
	"github.com/condoguard/backend/internal/config"
	httpapi "github.com/condoguard/backend/internal/http"
	"github.com/condoguard/backend/internal/triage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "condoguard-backend").Logger()

	var classifier classify.Classifier
	if cfg.ClassifierURL == "" {
		classifier = classify.RuleClassifier{}
		logger.Info().Msg("using rule-based classifier")
	} else {
		classifier = classify.HTTPClassifier{BaseURL: cfg.ClassifierURL}
		logger.Info().Str("url", cfg.ClassifierURL).Msg("using remote classifier")
	}

	svc := &triage.Service{
		Classifier: classifier,
		Validator:  triage.NewValidator(),
		Logger:     logger,
		StepDelay:  cfg.TraceStepDelay,
	}

	router := httpapi.Router(cfg, svc, classifier, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
