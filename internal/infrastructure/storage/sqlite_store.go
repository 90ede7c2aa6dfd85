// Package storage persists hand-curated articles in a local sqlite table.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite" // pure-Go sqlite driver

	"NewsClipper/internal/domain"
	"NewsClipper/internal/ports"
)

const articleColumns = "index_number, title, link, pub_date, source, body, saved_at"

// SQLiteStore implements ports.ArticleStore on a single local table keyed
// by the caller-assigned list index.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

var _ ports.ArticleStore = (*SQLiteStore)(nil)

// NewSQLiteStore opens (creating if needed) the database at path and
// applies the schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS articles (
		index_number INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		link TEXT NOT NULL,
		pub_date TEXT,
		source TEXT,
		body TEXT,
		saved_at TEXT
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save upserts the article under its index with an explicit save timestamp.
func (s *SQLiteStore) Save(ctx context.Context, article domain.SavedArticle) error {
	savedAt := s.now().Format(domain.PubDateLayout)

	_, err := sq.Insert("articles").
		Options("OR REPLACE").
		Columns("index_number", "title", "link", "pub_date", "source", "body", "saved_at").
		Values(article.Index, article.Title, article.Link, article.PubDate, article.Source, article.Body, savedAt).
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("save article %d: %w", article.Index, err)
	}
	return nil
}

// Load retrieves one article by index.
func (s *SQLiteStore) Load(ctx context.Context, index int) (domain.SavedArticle, error) {
	row := sq.Select(articleColumns).
		From("articles").
		Where(sq.Eq{"index_number": index}).
		RunWith(s.db).
		QueryRowContext(ctx)

	article, err := scanArticle(row)
	if err != nil {
		return domain.SavedArticle{}, fmt.Errorf("load article %d: %w", index, err)
	}
	return article, nil
}

// LoadAll returns every saved article ordered by index.
func (s *SQLiteStore) LoadAll(ctx context.Context) ([]domain.SavedArticle, error) {
	rows, err := sq.Select(articleColumns).
		From("articles").
		OrderBy("index_number").
		RunWith(s.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("load articles: %w", err)
	}
	defer rows.Close()

	var articles []domain.SavedArticle
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return articles, nil
}

// Delete removes one article by index. Deleting a missing index is a no-op.
func (s *SQLiteStore) Delete(ctx context.Context, index int) error {
	_, err := sq.Delete("articles").
		Where(sq.Eq{"index_number": index}).
		RunWith(s.db).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("delete article %d: %w", index, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(row scanner) (domain.SavedArticle, error) {
	var article domain.SavedArticle
	err := row.Scan(
		&article.Index,
		&article.Title,
		&article.Link,
		&article.PubDate,
		&article.Source,
		&article.Body,
		&article.SavedAt,
	)
	return article, err
}
