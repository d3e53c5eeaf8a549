// Package service contains the per-feed polling services. Each tick runs
// fetch → diff-against-store → persist-new → mirror → notify; failures are
// isolated at the smallest possible scope so one bad item or tick never
// disables future polling.
package service

import (
	"context"
	"errors"
	"log"

	"github.com/edpilots/psibot/internal/model"
	"github.com/edpilots/psibot/internal/render"
	"github.com/edpilots/psibot/internal/storage"
)

type ArticleStorage interface {
	Store(ctx context.Context, article model.Article) error
	DedupKeys(ctx context.Context) (guids map[string]struct{}, titles map[string]struct{}, err error)
}

type ArticleSource interface {
	Fetch(ctx context.Context) ([]model.Article, error)
}

type ArticleMirror interface {
	AppendArticle(ctx context.Context, article model.Article) error
}

type ChannelNotifier interface {
	Post(channelID int64, text string) (int, error)
}

type GalnetService struct {
	source       ArticleSource
	articles     ArticleStorage
	mirror       ArticleMirror
	notifier     ChannelNotifier
	channelID    int64
	dedupByTitle bool
}

func NewGalnetService(
	source ArticleSource,
	articles ArticleStorage,
	mirror ArticleMirror,
	notifier ChannelNotifier,
	channelID int64,
	dedupByTitle bool,
) *GalnetService {
	return &GalnetService{
		source:       source,
		articles:     articles,
		mirror:       mirror,
		notifier:     notifier,
		channelID:    channelID,
		dedupByTitle: dedupByTitle,
	}
}

func (s *GalnetService) Tick(ctx context.Context) error {
	items, err := s.source.Fetch(ctx)
	if err != nil {
		// Transient: zero new items this tick, the next tick retries.
		log.Printf("[ERROR] galnet: fetch failed: %v", err)
		return nil
	}

	guids, titles, err := s.articles.DedupKeys(ctx)
	if err != nil {
		return err
	}

	fresh := SelectNewArticles(Keyset{GUIDs: guids, Titles: titles}, items, s.dedupByTitle)

	added := 0
	for _, article := range fresh {
		if err := s.articles.Store(ctx, article); err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				log.Printf("[INFO] galnet: article %s already stored, skipping", article.GUID)
				continue
			}
			return err
		}

		if s.mirror != nil {
			if err := s.mirror.AppendArticle(ctx, article); err != nil {
				log.Printf("[ERROR] galnet: mirroring article %s: %v", article.GUID, err)
			}
		}

		if _, err := s.notifier.Post(s.channelID, render.Article(article)); err != nil {
			log.Printf("[ERROR] galnet: posting article %s: %v", article.GUID, err)
		}

		added++
	}

	if added > 0 {
		log.Printf("[INFO] galnet: added %d new articles", added)
	}
	return nil
}
