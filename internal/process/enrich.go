package process

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"NewsClipper/internal/domain"
	"NewsClipper/internal/ports"
	"NewsClipper/internal/press"
)

const defaultWorkers = 5

// Enricher fills FullText and Source for each record by downloading the
// linked page through a bounded worker pool.
type Enricher struct {
	extractor ports.Extractor
	workers   int
	limiter   *rate.Limiter
	logger    *slog.Logger
}

// NewEnricher builds an enricher. workers <= 0 selects the default pool
// width; rps <= 0 disables rate limiting.
func NewEnricher(extractor ports.Extractor, workers int, rps float64, logger *slog.Logger) *Enricher {
	if workers <= 0 {
		workers = defaultWorkers
	}
	var limiter *rate.Limiter
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
	return &Enricher{extractor: extractor, workers: workers, limiter: limiter, logger: logger}
}

// Enrich processes all records concurrently and returns a new slice aligned
// index-for-index with the input. One record's failure never affects the
// others; a failed extraction leaves FullText empty and falls through the
// source fallback chain. Enrich returns only after every task finished.
func (e *Enricher) Enrich(ctx context.Context, records []domain.Record) []domain.Record {
	enriched := make([]domain.Record, len(records))
	copy(enriched, records)

	g := new(errgroup.Group)
	g.SetLimit(e.workers)

	for i := range enriched {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					e.debug("extraction panic", "link", enriched[i].Link, "panic", r)
					enriched[i] = resolveSource(enriched[i], ports.Content{}, false)
				}
			}()

			if e.limiter != nil {
				if err := e.limiter.Wait(ctx); err != nil {
					enriched[i] = resolveSource(enriched[i], ports.Content{}, false)
					return nil
				}
			}

			content, err := e.extractor.Extract(ctx, enriched[i].Link)
			if err != nil {
				e.debug("extraction failed", "link", enriched[i].Link, "error", err)
			}
			enriched[i] = resolveSource(enriched[i], content, err == nil)
			return nil
		})
	}

	_ = g.Wait()
	return enriched
}

// resolveSource applies the publisher-name fallback chain:
//
//  1. site name from page metadata
//  2. author field before a ";" separator
//  3. curated domain table (overrides 1 and 2 when it matches)
//  4. the bare normalized hostname
func resolveSource(rec domain.Record, content ports.Content, extracted bool) domain.Record {
	if extracted {
		rec.FullText = content.Text

		switch {
		case content.SiteName != "":
			rec.Source = content.SiteName
		case strings.Contains(content.Author, ";"):
			rec.Source = strings.TrimSpace(strings.SplitN(content.Author, ";", 2)[0])
		}
	}

	host := hostOf(rec.Link)
	if host == "" {
		if rec.Source == "" {
			rec.Source = "Unknown"
		}
		return rec
	}

	if name, ok := press.ByDomain(host); ok {
		rec.Source = name
	} else if rec.Source == "" || rec.Source == "Unknown" {
		rec.Source = host
	}

	return rec
}

func hostOf(link string) string {
	parsed, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
}

func (e *Enricher) debug(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Debug(msg, args...)
	}
}
