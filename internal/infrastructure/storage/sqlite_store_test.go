package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"NewsClipper/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "news_data", "articles.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndLoad(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	store.now = func() time.Time {
		return time.Date(2023, time.March, 10, 9, 30, 0, 0, domain.KST)
	}
	ctx := context.Background()

	article := domain.SavedArticle{
		Index:   3,
		Title:   "제목",
		Link:    "https://news.example/3",
		PubDate: "2023-03-09 18:00:00",
		Source:  "한겨레",
		Body:    "수기 본문",
	}
	if err := store.Save(ctx, article); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load(ctx, 3)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Source != "한겨레" || loaded.Body != "수기 본문" {
		t.Fatalf("unexpected article: %+v", loaded)
	}
	if loaded.SavedAt != "2023-03-10 09:30:00" {
		t.Fatalf("saved_at not written explicitly: %q", loaded.SavedAt)
	}
}

func TestSaveReplacesByIndex(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	first := domain.SavedArticle{Index: 1, Title: "v1", Link: "l", Source: "a", Body: "x"}
	second := domain.SavedArticle{Index: 1, Title: "v2", Link: "l", Source: "b", Body: "y"}
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("Save first: %v", err)
	}
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("Save second: %v", err)
	}

	all, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(all) != 1 || all[0].Title != "v2" {
		t.Fatalf("upsert by index failed: %+v", all)
	}
}

func TestLoadAllOrdered(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	for _, idx := range []int{5, 1, 3} {
		if err := store.Save(ctx, domain.SavedArticle{Index: idx, Title: "t", Link: "l"}); err != nil {
			t.Fatalf("Save %d: %v", idx, err)
		}
	}

	all, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(all) != 3 || all[0].Index != 1 || all[1].Index != 3 || all[2].Index != 5 {
		t.Fatalf("not ordered by index: %+v", all)
	}
}

func TestDelete(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, domain.SavedArticle{Index: 7, Title: "t", Link: "l"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(ctx, 7); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Load(ctx, 7); err == nil {
		t.Fatal("expected load failure after delete")
	}

	// Missing index is a no-op.
	if err := store.Delete(ctx, 99); err != nil {
		t.Fatalf("Delete missing: %v", err)
	}
}
