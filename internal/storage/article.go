package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/edpilots/psibot/internal/model"
)

type ArticleStorage struct {
	db *sqlx.DB
}

func NewArticleStorage(db *sqlx.DB) *ArticleStorage {
	return &ArticleStorage{db: db}
}

func (s *ArticleStorage) Store(ctx context.Context, article model.Article) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO articles (guid, title, content, link, published_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		article.GUID,
		article.Title,
		article.Content,
		article.Link,
		article.PublishedAt,
	)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// DedupKeys returns the snapshot the diff step works against: all stored
// GUIDs and normalized titles.
func (s *ArticleStorage) DedupKeys(ctx context.Context) (map[string]struct{}, map[string]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT guid, title FROM articles`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	guids := make(map[string]struct{})
	titles := make(map[string]struct{})
	for rows.Next() {
		var guid, title string
		if err := rows.Scan(&guid, &title); err != nil {
			return nil, nil, err
		}
		guids[guid] = struct{}{}
		titles[model.NormalizeTitle(title)] = struct{}{}
	}

	return guids, titles, rows.Err()
}

func (s *ArticleStorage) Latest(ctx context.Context) (*model.Article, error) {
	var article model.Article
	err := s.db.GetContext(ctx, &article,
		`SELECT id, guid, title, content, link, published_at, created_at
		 FROM articles
		 ORDER BY published_at DESC
		 LIMIT 1`,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (s *ArticleStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM articles`)
	return count, err
}
