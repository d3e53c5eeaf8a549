// Package populate backfills an empty store from the spreadsheet's
// historical export at startup, so a fresh database doesn't re-post the
// entire feed history.
package populate

import (
	"context"
	"errors"
	"log"

	"github.com/edpilots/psibot/internal/model"
	"github.com/edpilots/psibot/internal/storage"
)

type ArticleStore interface {
	Store(ctx context.Context, article model.Article) error
	Count(ctx context.Context) (int64, error)
}

type DevPostStore interface {
	Store(ctx context.Context, post model.DevPost) error
	Count(ctx context.Context) (int64, error)
}

type HistoryReader interface {
	Articles(ctx context.Context) ([]model.Article, error)
	DevPosts(ctx context.Context) ([]model.DevPost, error)
}

func Articles(ctx context.Context, store ArticleStore, history HistoryReader) error {
	count, err := store.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Printf("[INFO] populate: articles already present, skipping backfill")
		return nil
	}

	articles, err := history.Articles(ctx)
	if err != nil {
		return err
	}

	log.Printf("[INFO] populate: backfilling %d articles", len(articles))
	for _, article := range articles {
		if err := store.Store(ctx, article); err != nil && !errors.Is(err, storage.ErrDuplicate) {
			return err
		}
	}
	return nil
}

func DevPosts(ctx context.Context, store DevPostStore, history HistoryReader) error {
	count, err := store.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Printf("[INFO] populate: dev posts already present, skipping backfill")
		return nil
	}

	posts, err := history.DevPosts(ctx)
	if err != nil {
		return err
	}

	log.Printf("[INFO] populate: backfilling %d dev posts", len(posts))
	for _, post := range posts {
		if err := store.Store(ctx, post); err != nil && !errors.Is(err, storage.ErrDuplicate) {
			return err
		}
	}
	return nil
}
