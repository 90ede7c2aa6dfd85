// Package process implements the record pipeline stages: deduplication,
// enrichment, tier sorting, and entity tagging. Every stage returns a new
// slice and leaves its input alone.
package process

import (
	"sort"

	"NewsClipper/internal/domain"
	"NewsClipper/internal/press"
)

// Deduplicate removes records whose title exactly matches an earlier one.
// Order-preserving, first occurrence wins. Near-identical titles about the
// same event are left for the AI curation pass.
func Deduplicate(records []domain.Record) []domain.Record {
	seen := make(map[string]struct{}, len(records))
	unique := make([]domain.Record, 0, len(records))
	for _, rec := range records {
		if _, ok := seen[rec.Title]; ok {
			continue
		}
		seen[rec.Title] = struct{}{}
		unique = append(unique, rec)
	}
	return unique
}

// SortByTier assigns each record its publisher tier and orders the list by
// tier ascending, then publication date descending. Two consecutive stable
// sorts keep input order for full ties; a single composite key would invert
// one axis.
func SortByTier(records []domain.Record) []domain.Record {
	sorted := make([]domain.Record, len(records))
	copy(sorted, records)

	for i := range sorted {
		sorted[i].Tier = press.Tier(sorted[i].Source)
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PubDate > sorted[j].PubDate
	})
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Tier < sorted[j].Tier
	})

	return sorted
}
