package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"NewsClipper/internal/config"
	"NewsClipper/internal/domain"
	"NewsClipper/internal/ports"
)

// GeminiCurator is the curation pass backed by Gemini. With an API key it
// talks to the Gemini API directly; with a project it goes through Vertex
// using ambient service-account credentials.
type GeminiCurator struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

var _ ports.Curator = (*GeminiCurator)(nil)

// NewGeminiCurator fails fast when neither credential style is configured.
func NewGeminiCurator(ctx context.Context, cfg config.GeminiConfig, logger *slog.Logger) (*GeminiCurator, error) {
	if cfg.APIKey == "" && cfg.Project == "" {
		return nil, errors.New("gemini curator requires an api key or a vertex project")
	}

	clientCfg := &genai.ClientConfig{}
	if cfg.APIKey != "" {
		clientCfg.APIKey = cfg.APIKey
		clientCfg.Backend = genai.BackendGeminiAPI
	} else {
		clientCfg.Project = cfg.Project
		clientCfg.Location = cfg.Location
		clientCfg.Backend = genai.BackendVertexAI
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	return &GeminiCurator{client: client, model: model, logger: logger}, nil
}

// Curate mirrors the OpenAI curator: same prompt, same verdict decode,
// same fail-open behavior. Gemini replies often arrive code-fenced, which
// decodeVerdicts strips.
func (g *GeminiCurator) Curate(ctx context.Context, records []domain.Record) ([]domain.Record, error) {
	if len(records) == 0 {
		return records, nil
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(curationPrompt(records)), nil)
	if err != nil {
		g.warn("gemini curation request failed, keeping original list", "error", err)
		return records, nil
	}

	verdicts, err := decodeVerdicts(resp.Text())
	if err != nil {
		g.warn("gemini curation reply undecodable, keeping original list", "error", err)
		return records, nil
	}

	return applyVerdicts(records, verdicts), nil
}

func (g *GeminiCurator) warn(msg string, args ...any) {
	if g.logger != nil {
		g.logger.Warn(msg, args...)
	}
}
