package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"NewsClipper/internal/config"
	"NewsClipper/internal/domain"
)

func TestDecodeVerdicts(t *testing.T) {
	t.Parallel()

	want := []verdict{
		{ID: 0, IsDuplicate: false, CorrectedSource: "조선일보"},
		{ID: 1, IsDuplicate: true, CorrectedSource: ""},
	}

	cases := []struct {
		name  string
		reply string
	}{
		{"bare list", `[{"id":0,"is_duplicate":false,"corrected_source":"조선일보"},{"id":1,"is_duplicate":true,"corrected_source":""}]`},
		{"wrapped in object", `{"results":[{"id":0,"is_duplicate":false,"corrected_source":"조선일보"},{"id":1,"is_duplicate":true,"corrected_source":""}]}`},
		{"json code fence", "```json\n[{\"id\":0,\"is_duplicate\":false,\"corrected_source\":\"조선일보\"},{\"id\":1,\"is_duplicate\":true,\"corrected_source\":\"\"}]\n```"},
		{"plain code fence", "```\n[{\"id\":0,\"is_duplicate\":false,\"corrected_source\":\"조선일보\"},{\"id\":1,\"is_duplicate\":true,\"corrected_source\":\"\"}]\n```"},
	}

	for _, tc := range cases {
		got, err := decodeVerdicts(tc.reply)
		if err != nil {
			t.Fatalf("%s: decodeVerdicts error: %v", tc.name, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("%s: got %+v", tc.name, got)
		}
	}
}

func TestDecodeVerdictsRejectsGarbage(t *testing.T) {
	t.Parallel()

	for _, reply := range []string{
		"no json here",
		`{"note":"nothing list shaped"}`,
		`42`,
	} {
		if _, err := decodeVerdicts(reply); err == nil {
			t.Errorf("expected decode failure for %q", reply)
		}
	}
}

func TestApplyVerdicts(t *testing.T) {
	t.Parallel()

	records := []domain.Record{
		{Title: "kept", Source: "weekly.hankooki.com"},
		{Title: "dropped", Source: "뉴시스"},
		{Title: "untouched", Source: "한겨레"},
	}
	verdicts := []verdict{
		{ID: 0, IsDuplicate: false, CorrectedSource: "조선일보"},
		{ID: 1, IsDuplicate: true, CorrectedSource: ""},
		// id 2 intentionally absent: passes through unmodified
	}

	out := applyVerdicts(records, verdicts)

	if len(out) != 2 {
		t.Fatalf("expected 2 survivors, got %d", len(out))
	}
	if out[0].Source != "조선일보" {
		t.Fatalf("source not corrected: %q", out[0].Source)
	}
	if out[1].Title != "untouched" || out[1].Source != "한겨레" {
		t.Fatalf("record without verdict changed: %+v", out[1])
	}
}

func TestApplyVerdictsEmptyCorrectionKeepsSource(t *testing.T) {
	t.Parallel()

	records := []domain.Record{{Title: "a", Source: "한국일보"}}
	out := applyVerdicts(records, []verdict{{ID: 0, CorrectedSource: ""}})

	if out[0].Source != "한국일보" {
		t.Fatalf("empty correction must not clear the source: %q", out[0].Source)
	}
}

func newTestCurator(t *testing.T, handler http.HandlerFunc) *Curator {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	curator, err := NewCurator(config.OpenAIConfig{
		Endpoint: server.URL,
		Model:    "gpt-4o",
		APIKey:   "test-key",
	}, nil)
	if err != nil {
		t.Fatalf("NewCurator: %v", err)
	}
	curator.client.httpClient = server.Client()
	return curator
}

func chatReply(t *testing.T, w http.ResponseWriter, content string) {
	t.Helper()

	reply := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": content}},
		},
	}
	if err := json.NewEncoder(w).Encode(reply); err != nil {
		t.Errorf("encode reply: %v", err)
	}
}

func TestCurateAppliesVerdicts(t *testing.T) {
	t.Parallel()

	curator := newTestCurator(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token")
		}
		chatReply(t, w, `[{"id":0,"is_duplicate":false,"corrected_source":"조선일보"},{"id":1,"is_duplicate":true,"corrected_source":""}]`)
	})

	records := []domain.Record{
		{Title: "first", Source: "chosun.com"},
		{Title: "second", Source: "조선일보"},
	}

	out, err := curator.Curate(context.Background(), records)
	if err != nil {
		t.Fatalf("Curate error: %v", err)
	}
	if len(out) != 1 || out[0].Title != "first" || out[0].Source != "조선일보" {
		t.Fatalf("unexpected curation result: %+v", out)
	}
}

func TestCurateFailsOpenOnServiceError(t *testing.T) {
	t.Parallel()

	curator := newTestCurator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	records := []domain.Record{
		{Title: "a", Source: "KBS", PubDate: "2023-01-01 10:00:00"},
		{Title: "b", Source: "SBS", PubDate: "2023-01-01 11:00:00"},
	}

	out, err := curator.Curate(context.Background(), records)
	if err != nil {
		t.Fatalf("fail-open must not return an error, got %v", err)
	}
	if !reflect.DeepEqual(out, records) {
		t.Fatalf("fail-open must return the input unchanged: %+v", out)
	}
}

func TestCurateFailsOpenOnMalformedReply(t *testing.T) {
	t.Parallel()

	curator := newTestCurator(t, func(w http.ResponseWriter, r *http.Request) {
		chatReply(t, w, "I could not process that request.")
	})

	records := []domain.Record{{Title: "a", Source: "KBS"}}

	out, err := curator.Curate(context.Background(), records)
	if err != nil {
		t.Fatalf("fail-open must not return an error, got %v", err)
	}
	if !reflect.DeepEqual(out, records) {
		t.Fatalf("fail-open must return the input unchanged: %+v", out)
	}
}

func TestCuratePromptEnumeratesRecords(t *testing.T) {
	t.Parallel()

	var seen string
	curator := newTestCurator(t, func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
			ResponseFormat struct {
				Type string `json:"type"`
			} `json:"response_format"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if payload.ResponseFormat.Type != "json_object" {
			t.Errorf("expected json_object response format, got %q", payload.ResponseFormat.Type)
		}
		seen = payload.Messages[len(payload.Messages)-1].Content
		chatReply(t, w, "[]")
	})

	_, err := curator.Curate(context.Background(), []domain.Record{
		{Title: "제목", Source: "KBS", Link: "https://news.example/1"},
	})
	if err != nil {
		t.Fatalf("Curate error: %v", err)
	}

	want := "ID:0 | Source:KBS | Title:제목 | Link:https://news.example/1"
	if !strings.Contains(seen, want) {
		t.Fatalf("prompt missing record line %q:\n%s", want, seen)
	}
}

func TestNewCuratorRequiresKey(t *testing.T) {
	t.Parallel()

	if _, err := NewCurator(config.OpenAIConfig{Endpoint: "https://x", Model: "m"}, nil); err == nil {
		t.Fatal("expected configuration error without api key")
	}
}

func TestCurateEmptyInput(t *testing.T) {
	t.Parallel()

	curator := newTestCurator(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("empty input must not hit the service")
	})

	out, err := curator.Curate(context.Background(), nil)
	if err != nil || len(out) != 0 {
		t.Fatalf("unexpected result: %v, %v", out, err)
	}
}
