package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"NewsClipper/internal/config"
	"NewsClipper/internal/domain"
	"NewsClipper/internal/infrastructure/extract"
	"NewsClipper/internal/infrastructure/llm"
	"NewsClipper/internal/infrastructure/naver"
	"NewsClipper/internal/infrastructure/report"
	"NewsClipper/internal/infrastructure/rss"
	"NewsClipper/internal/logging"
	"NewsClipper/internal/ports"
	"NewsClipper/internal/process"
	"NewsClipper/internal/usecase"
)

// Application wires configuration to adapters and the scraping pipeline.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
	writers  []ports.ReportWriter
	logger   *slog.Logger
}

// New builds a runnable application instance. Construction fails only on
// misconfiguration of explicitly requested components (e.g. a curator
// selected without a credential); missing optional pieces degrade instead.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	var chatClient *llm.Client
	if cfg.OpenAI.APIKey != "" {
		client, err := llm.NewClient(cfg.OpenAI)
		if err != nil {
			return nil, fmt.Errorf("openai client: %w", err)
		}
		chatClient = client
	}

	sources := []ports.NewsSource{
		naver.NewClient(cfg.Naver, baseLogger.With("component", "source.naver")),
	}
	if cfg.RSS.Enabled {
		var translator ports.Translator
		if chatClient != nil {
			translator = llm.NewTranslator(chatClient)
		}
		sources = append(sources, rss.NewFetcher(translator, baseLogger.With("component", "source.rss")))
	}

	curator, err := buildCurator(ctx, cfg, baseLogger)
	if err != nil {
		return nil, err
	}

	enricher := process.NewEnricher(
		extract.New(nil),
		cfg.Enrich.Workers,
		cfg.Enrich.RequestsPerSecond,
		baseLogger.With("component", "enricher"),
	)

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Sources:  sources,
		Enricher: enricher,
		Curator:  curator,
		Logger:   baseLogger.With("component", "pipeline"),
	})

	writers := []ports.ReportWriter{report.NewTextWriter(cfg.Report.OutputDir)}
	if cfg.Report.FontPath != "" {
		writers = append(writers, report.NewPDFWriter(cfg.Report.OutputDir, cfg.Report.FontPath))
	}

	return &Application{cfg: cfg, pipeline: pipeline, writers: writers, logger: baseLogger}, nil
}

func buildCurator(ctx context.Context, cfg config.Config, logger *slog.Logger) (ports.Curator, error) {
	switch cfg.Curator {
	case "":
		return nil, nil
	case "openai":
		return llm.NewCurator(cfg.OpenAI, logger.With("component", "curator.openai"))
	case "gemini":
		return llm.NewGeminiCurator(ctx, cfg.Gemini, logger.With("component", "curator.gemini"))
	default:
		return nil, fmt.Errorf("unknown curator backend %q", cfg.Curator)
	}
}

// Run processes every configured category once and writes the reports.
func (a *Application) Run(ctx context.Context) error {
	requests := make([]usecase.CategoryRequest, 0, len(a.cfg.Categories))
	for _, category := range a.cfg.Categories {
		sort := category.Sort
		if sort == "" {
			sort = ports.SortByDate
		}
		requests = append(requests, usecase.CategoryRequest{
			Label:     category.Name,
			Keywords:  category.Keywords,
			Sort:      sort,
			Days:      a.cfg.Days,
			TagPeople: true,
		})
	}

	categories, err := a.pipeline.ProcessAll(ctx, requests)
	if err != nil {
		return fmt.Errorf("process categories: %w", err)
	}

	label := time.Now().In(domain.KST).Format("2006-01-02")
	for _, writer := range a.writers {
		path, err := writer.Write(categories, label)
		if err != nil {
			a.logger.Warn("report rendering failed", "error", err)
			continue
		}
		a.logger.Info("report written", "path", path)
	}

	return nil
}
