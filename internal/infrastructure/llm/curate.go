package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"NewsClipper/internal/config"
	"NewsClipper/internal/domain"
	"NewsClipper/internal/ports"
)

const curationSystem = "You are a precise data processing assistant. Output JSON only."

// verdict is the per-record judgement expected from the model.
type verdict struct {
	ID              int    `json:"id"`
	IsDuplicate     bool   `json:"is_duplicate"`
	CorrectedSource string `json:"corrected_source"`
}

// Curator asks an OpenAI-compatible model to drop semantic duplicates and
// normalize publisher names. Any service or decode failure is logged and
// the input list passes through unchanged.
type Curator struct {
	client *Client
	logger *slog.Logger
}

var _ ports.Curator = (*Curator)(nil)

// NewCurator fails fast when no credential is configured.
func NewCurator(cfg config.OpenAIConfig, logger *slog.Logger) (*Curator, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("curator: %w", err)
	}
	return &Curator{client: client, logger: logger}, nil
}

// Curate applies the model's verdicts to the record list.
func (c *Curator) Curate(ctx context.Context, records []domain.Record) ([]domain.Record, error) {
	if len(records) == 0 {
		return records, nil
	}

	reply, err := c.client.chat(ctx, chatRequest{
		system:     curationSystem,
		user:       curationPrompt(records),
		jsonObject: true,
	})
	if err != nil {
		c.warn("curation request failed, keeping original list", "error", err)
		return records, nil
	}

	verdicts, err := decodeVerdicts(reply)
	if err != nil {
		c.warn("curation reply undecodable, keeping original list", "error", err)
		return records, nil
	}

	return applyVerdicts(records, verdicts), nil
}

func (c *Curator) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}

// curationPrompt serializes the records as a compact enumerated list and
// wraps them in the optimization instructions.
func curationPrompt(records []domain.Record) string {
	var lines strings.Builder
	for i, rec := range records {
		fmt.Fprintf(&lines, "ID:%d | Source:%s | Title:%s | Link:%s\n", i, rec.Source, rec.Title, rec.Link)
	}

	return fmt.Sprintf(`You are a helpful assistant that optimizes a list of news articles.

Task:
1. Identify duplicates. If multiple articles cover the exact same topic with very similar titles, mark them as duplicates. Keep the one with the most recognizable Source name.
2. Correct the 'Source' field. If the Source looks like a URL (e.g., 'weekly.hankooki.com') or is missing, convert it to the proper Korean press name (e.g., '주간한국'). If it's already correct, keep it.

Input Data:
%s
Output Format:
Return ONLY a JSON list of objects. Each object must have:
- "id": (integer) The ID from the input.
- "is_duplicate": (boolean) True if it should be removed.
- "corrected_source": (string) The corrected Korean press name.

Example Output:
[
    {"id": 0, "is_duplicate": false, "corrected_source": "조선일보"},
    {"id": 1, "is_duplicate": true, "corrected_source": "매일경제"}
]`, lines.String())
}

// decodeVerdicts parses the model reply. Strict decode of a verdict list
// first; on failure, one unwrap of a single level of object nesting (the
// first list-valued field wins). Code fences are stripped before either
// attempt.
func decodeVerdicts(reply string) ([]verdict, error) {
	raw := []byte(stripCodeFence(reply))

	var verdicts []verdict
	if err := json.Unmarshal(raw, &verdicts); err == nil {
		return verdicts, nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("verdicts are neither a list nor an object: %w", err)
	}
	for _, value := range wrapped {
		if err := json.Unmarshal(value, &verdicts); err == nil {
			return verdicts, nil
		}
	}

	return nil, errors.New("no list-valued field holds verdicts")
}

// applyVerdicts drops records marked duplicate and overwrites sources with
// non-empty corrections. Records absent from the verdicts pass through.
func applyVerdicts(records []domain.Record, verdicts []verdict) []domain.Record {
	byID := make(map[int]verdict, len(verdicts))
	for _, v := range verdicts {
		byID[v.ID] = v
	}

	kept := make([]domain.Record, 0, len(records))
	for i, rec := range records {
		if v, ok := byID[i]; ok {
			if v.IsDuplicate {
				continue
			}
			if v.CorrectedSource != "" {
				rec.Source = v.CorrectedSource
			}
		}
		kept = append(kept, rec)
	}
	return kept
}

// stripCodeFence removes a surrounding markdown code fence, if any.
func stripCodeFence(reply string) string {
	reply = strings.TrimSpace(reply)

	if idx := strings.Index(reply, "```json"); idx >= 0 {
		reply = reply[idx+len("```json"):]
	} else if idx := strings.Index(reply, "```"); idx >= 0 {
		reply = reply[idx+len("```"):]
	} else {
		return reply
	}

	if end := strings.Index(reply, "```"); end >= 0 {
		reply = reply[:end]
	}
	return strings.TrimSpace(reply)
}
