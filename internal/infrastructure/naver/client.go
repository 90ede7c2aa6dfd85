// Package naver implements ports.NewsSource on top of the Naver open-API
// news search endpoint.
package naver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"NewsClipper/internal/config"
	"NewsClipper/internal/domain"
	"NewsClipper/internal/ports"
)

const pubDateLayout = "Mon, 02 Jan 2006 15:04:05 -0700"

// cleaner strips the inline emphasis markup and HTML entities the search
// API embeds in titles and descriptions.
var cleaner = strings.NewReplacer(
	"<b>", "",
	"</b>", "",
	"&quot;", `"`,
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&apos;", "'",
)

// Client queries the Naver news search API.
type Client struct {
	endpoint     string
	clientID     string
	clientSecret string
	display      int
	httpClient   *http.Client
	logger       *slog.Logger
	now          func() time.Time
}

var _ ports.NewsSource = (*Client)(nil)

// NewClient builds a search client from configuration.
func NewClient(cfg config.NaverConfig, logger *slog.Logger) *Client {
	display := cfg.Display
	if display <= 0 {
		display = 60
	}
	return &Client{
		endpoint:     cfg.Endpoint,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		display:      display,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		logger:       logger,
		now:          time.Now,
	}
}

type searchResponse struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	PubDate     string `json:"pubDate"`
}

// Search returns records published within the last q.Days days, computed
// against the present moment in KST. A non-success upstream response is
// logged and yields an empty list; the pipeline keeps going.
func (c *Client) Search(ctx context.Context, q ports.Query) ([]domain.Record, error) {
	reqURL := fmt.Sprintf("%s?query=%s&display=%s&sort=%s",
		c.endpoint,
		url.QueryEscape(q.Keyword),
		strconv.Itoa(c.display),
		url.QueryEscape(q.Sort),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Naver-Client-Id", c.clientID)
	req.Header.Set("X-Naver-Client-Secret", c.clientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.warn("naver request failed", "keyword", q.Keyword, "error", err)
		return []domain.Record{}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.warn("naver returned non-success", "keyword", q.Keyword, "status", resp.Status)
		return []domain.Record{}, nil
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.warn("naver response undecodable", "keyword", q.Keyword, "error", err)
		return []domain.Record{}, nil
	}

	days := q.Days
	if days <= 0 {
		days = 1
	}
	cutoff := c.now().In(domain.KST).Add(-time.Duration(days) * 24 * time.Hour)

	records := make([]domain.Record, 0, len(payload.Items))
	for _, item := range payload.Items {
		published, err := time.Parse(pubDateLayout, item.PubDate)
		if err != nil {
			c.debug("unparseable pubDate", "value", item.PubDate)
			continue
		}
		published = published.In(domain.KST)
		if published.Before(cutoff) {
			continue
		}

		records = append(records, domain.Record{
			Title:       cleaner.Replace(item.Title),
			Link:        item.Link,
			Description: cleaner.Replace(item.Description),
			PubDate:     published.Format(domain.PubDateLayout),
			Source:      "",
			Tier:        domain.TierUnset,
		})
	}

	return records, nil
}

func (c *Client) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}

func (c *Client) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
