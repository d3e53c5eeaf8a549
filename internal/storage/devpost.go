package storage

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/edpilots/psibot/internal/model"
)

type DevPostStorage struct {
	db *sqlx.DB
}

func NewDevPostStorage(db *sqlx.DB) *DevPostStorage {
	return &DevPostStorage{db: db}
}

func (s *DevPostStorage) Store(ctx context.Context, post model.DevPost) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO dev_posts (guid, author, title, content, link, published_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		post.GUID,
		post.Author,
		post.Title,
		post.Content,
		post.Link,
		post.PublishedAt,
	)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (s *DevPostStorage) GUIDs(ctx context.Context) (map[string]struct{}, error) {
	var guids []string
	if err := s.db.SelectContext(ctx, &guids, `SELECT guid FROM dev_posts`); err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(guids))
	for _, guid := range guids {
		set[guid] = struct{}{}
	}
	return set, nil
}

func (s *DevPostStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM dev_posts`)
	return count, err
}
