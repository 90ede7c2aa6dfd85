package llm

import (
	"context"
	"fmt"
	"strings"

	"NewsClipper/internal/ports"
)

// Translator turns a Korean keyword into a short English keyword for the
// overseas news feed.
type Translator struct {
	client *Client
}

var _ ports.Translator = (*Translator)(nil)

// NewTranslator reuses an already constructed chat client.
func NewTranslator(client *Client) *Translator {
	return &Translator{client: client}
}

// Translate asks for a one-to-two word English equivalent.
func (t *Translator) Translate(ctx context.Context, keyword string) (string, error) {
	reply, err := t.client.chat(ctx, chatRequest{
		system:      "You are a helpful assistant that returns only short English keywords.",
		user:        fmt.Sprintf("Translate the Korean phrase to a concise English keyword (1~2 words, no explanation): %s", keyword),
		maxTokens:   10,
		temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("translate keyword: %w", err)
	}
	return strings.TrimSpace(reply), nil
}
