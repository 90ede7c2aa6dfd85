package usecase

import (
	"context"
	"log/slog"

	"NewsClipper/internal/domain"
	"NewsClipper/internal/ports"
	"NewsClipper/internal/process"
)

// PipelineDeps wires all driven adapters into the scraping pipeline.
type PipelineDeps struct {
	Sources  []ports.NewsSource
	Enricher *process.Enricher
	Curator  ports.Curator
	Logger   *slog.Logger
}

// Pipeline implements the per-category scraping workflow:
// fetch → deduplicate → enrich → tier sort → tag → optional AI curation.
type Pipeline struct {
	sources  []ports.NewsSource
	enricher *process.Enricher
	curator  ports.Curator
	logger   *slog.Logger
}

// CategoryRequest describes one labelled keyword group to process.
type CategoryRequest struct {
	Label     string
	Keywords  []string
	Sort      string
	Days      int
	TagPeople bool
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		sources:  deps.Sources,
		enricher: deps.Enricher,
		curator:  deps.Curator,
		logger:   deps.Logger,
	}
}

// ProcessCategory runs the full pipeline for one category. Keywords are
// fetched sequentially across all configured sources; a failing source
// contributes nothing but never aborts the category. Zero results and a
// skipped or failed curation are ordinary outcomes, not errors.
func (p *Pipeline) ProcessCategory(ctx context.Context, req CategoryRequest) (domain.Category, error) {
	var fetched []domain.Record
	for _, keyword := range req.Keywords {
		for _, source := range p.sources {
			records, err := source.Search(ctx, ports.Query{Keyword: keyword, Sort: req.Sort, Days: req.Days})
			if err != nil {
				p.warn("source failed", "category", req.Label, "keyword", keyword, "error", err)
				continue
			}
			fetched = append(fetched, records...)
		}
	}

	if len(fetched) == 0 {
		p.info("no results", "category", req.Label)
		return domain.Category{Label: req.Label, Records: []domain.Record{}}, nil
	}

	records := process.Deduplicate(fetched)
	p.debug("deduplicated", "category", req.Label, "before", len(fetched), "after", len(records))

	if p.enricher != nil {
		records = p.enricher.Enrich(ctx, records)
	}

	records = process.SortByTier(records)

	if req.TagPeople {
		records = process.TagEntities(records)
	}

	if p.curator == nil {
		p.info("ai curation skipped", "category", req.Label)
		return domain.Category{Label: req.Label, Records: records}, nil
	}

	curated, err := p.curator.Curate(ctx, records)
	if err != nil {
		p.warn("ai curation failed, original list preserved", "category", req.Label, "error", err)
		return domain.Category{Label: req.Label, Records: records}, nil
	}

	return domain.Category{Label: req.Label, Records: curated}, nil
}

// ProcessAll runs every requested category in order.
func (p *Pipeline) ProcessAll(ctx context.Context, requests []CategoryRequest) ([]domain.Category, error) {
	categories := make([]domain.Category, 0, len(requests))
	for _, req := range requests {
		category, err := p.ProcessCategory(ctx, req)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}

func (p *Pipeline) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}
