package ports

import (
	"context"

	"NewsClipper/internal/domain"
)

// Sort modes accepted by news sources.
const (
	SortByDate      = "date"
	SortByRelevance = "sim"
)

// Query carries all parameters for one news search.
type Query struct {
	Keyword string
	Sort    string
	Days    int
}

// NewsSource pulls fresh records for a keyword from an upstream provider.
// A provider outage yields an empty slice, not an error out of the pipeline.
type NewsSource interface {
	Search(ctx context.Context, q Query) ([]domain.Record, error)
}

// Content is what a page extractor could recover from a linked article.
type Content struct {
	Text     string
	SiteName string
	Author   string
}

// Extractor downloads a linked page and pulls main text plus metadata.
type Extractor interface {
	Extract(ctx context.Context, link string) (Content, error)
}

// Curator runs the LLM pass that drops semantic duplicates and normalizes
// publisher names. Implementations fail open: on any service or decode
// failure they return the input unchanged.
type Curator interface {
	Curate(ctx context.Context, records []domain.Record) ([]domain.Record, error)
}

// Translator converts a keyword to a short English equivalent for
// foreign-region feeds.
type Translator interface {
	Translate(ctx context.Context, keyword string) (string, error)
}

// Relevance is one graded record from the relevance filter; Grade is one of
// 최상, 상, 중, 하, 최하.
type Relevance struct {
	Index int
	Grade string
}

// RelevanceFilter asks an LLM how related each record is to a keyword.
type RelevanceFilter interface {
	Grade(ctx context.Context, keyword string, records []domain.Record) ([]Relevance, error)
}

// ArticleStore persists hand-curated articles keyed by list index.
type ArticleStore interface {
	Save(ctx context.Context, article domain.SavedArticle) error
	Load(ctx context.Context, index int) (domain.SavedArticle, error)
	LoadAll(ctx context.Context) ([]domain.SavedArticle, error)
	Delete(ctx context.Context, index int) error
}

// ReportWriter renders the final categorized list to a document and returns
// the output path.
type ReportWriter interface {
	Write(categories []domain.Category, label string) (string, error)
}
