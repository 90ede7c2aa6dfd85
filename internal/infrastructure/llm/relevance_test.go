package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"NewsClipper/internal/config"
	"NewsClipper/internal/domain"
	"NewsClipper/internal/ports"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(config.OpenAIConfig{
		Endpoint: server.URL,
		Model:    "gpt-4o",
		APIKey:   "test-key",
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	client.httpClient = server.Client()
	return client
}

func TestParseGrades(t *testing.T) {
	t.Parallel()

	grades, err := parseGrades(`[[1, "상"], [2, "하"], [3, "최상"]]`)
	if err != nil {
		t.Fatalf("parseGrades error: %v", err)
	}

	want := []ports.Relevance{{Index: 1, Grade: "상"}, {Index: 2, Grade: "하"}, {Index: 3, Grade: "최상"}}
	if len(grades) != len(want) {
		t.Fatalf("got %d grades, want %d", len(grades), len(want))
	}
	for i := range want {
		if grades[i] != want[i] {
			t.Fatalf("grade %d = %+v, want %+v", i, grades[i], want[i])
		}
	}
}

func TestParseGradesSkipsMalformedPairs(t *testing.T) {
	t.Parallel()

	grades, err := parseGrades(`[[1, "상"], ["x", "하"], [3]]`)
	if err != nil {
		t.Fatalf("parseGrades error: %v", err)
	}
	if len(grades) != 1 || grades[0].Index != 1 {
		t.Fatalf("expected only the valid pair, got %+v", grades)
	}
}

func TestGrade(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		chatReply(t, w, `[[1, "최상"], [2, "최하"]]`)
	})
	filter := NewRelevanceFilter(client)

	grades, err := filter.Grade(context.Background(), "병원", []domain.Record{
		{Title: "관련 기사"},
		{Title: "무관한 기사"},
	})
	if err != nil {
		t.Fatalf("Grade error: %v", err)
	}
	if len(grades) != 2 || grades[0].Grade != "최상" {
		t.Fatalf("unexpected grades: %+v", grades)
	}
}

func TestGradeSurfacesServiceError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	filter := NewRelevanceFilter(client)

	if _, err := filter.Grade(context.Background(), "k", []domain.Record{{Title: "t"}}); err == nil {
		t.Fatal("expected error from failing service")
	}
}

func TestTranslate(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		chatReply(t, w, "  digital healthcare\n")
	})
	translator := NewTranslator(client)

	out, err := translator.Translate(context.Background(), "디지털 헬스케어")
	if err != nil {
		t.Fatalf("Translate error: %v", err)
	}
	if out != "digital healthcare" {
		t.Fatalf("reply not trimmed: %q", out)
	}
}
