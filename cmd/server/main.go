package main

import (
	"log"
	"net/http"

	"github.com/KenichiNakayama/voucher-checker-dividends/internal/config"
	"github.com/KenichiNakayama/voucher-checker-dividends/internal/domain"
	"github.com/KenichiNakayama/voucher-checker-dividends/internal/extract"
	"github.com/KenichiNakayama/voucher-checker-dividends/internal/handler"
	"github.com/KenichiNakayama/voucher-checker-dividends/internal/highlight"
	"github.com/KenichiNakayama/voucher-checker-dividends/internal/ingest"
	"github.com/KenichiNakayama/voucher-checker-dividends/internal/pipeline"
	"github.com/KenichiNakayama/voucher-checker-dividends/internal/port"
	"github.com/KenichiNakayama/voucher-checker-dividends/internal/provider"
	"github.com/KenichiNakayama/voucher-checker-dividends/internal/provider/claude"
	"github.com/KenichiNakayama/voucher-checker-dividends/internal/provider/openai"
	"github.com/KenichiNakayama/voucher-checker-dividends/internal/router"
	"github.com/KenichiNakayama/voucher-checker-dividends/internal/store"
	"github.com/KenichiNakayama/voucher-checker-dividends/internal/validator"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	factory := provider.NewFactory()
	factory.Register(domain.ProviderOpenAI, func() (port.LLMClient, error) {
		if cfg.OpenAI.APIKey == "" {
			return nil, &provider.AuthError{Provider: string(domain.ProviderOpenAI)}
		}
		return openai.NewClient(&cfg.OpenAI), nil
	})
	factory.Register(domain.ProviderClaude, func() (port.LLMClient, error) {
		if cfg.Claude.APIKey == "" {
			return nil, &provider.AuthError{Provider: string(domain.ProviderClaude)}
		}
		return claude.NewClient(&cfg.Claude), nil
	})

	analyzer := pipeline.NewAnalyzer(
		ingest.NewPDFIngestor(),
		extract.NewExtractor(factory, &cfg.Extract),
		validator.NewVoucherValidator(),
		highlight.NewRenderer(),
	)

	analysisStore := store.NewInMemoryAnalysisStore()
	analysisHandler := handler.NewAnalysisHandler(analyzer, analysisStore, int(cfg.Server.MaxUploadSizeMB))
	healthHandler := handler.NewHealthHandler()

	r := router.New(cfg, analysisHandler, healthHandler)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Printf("server listening on %s (environment=%s)", cfg.Server.Port, cfg.Server.Environment)
	return srv.ListenAndServe()
}
