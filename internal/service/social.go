package service

import (
	"context"
	"errors"
	"log"

	"github.com/edpilots/psibot/internal/model"
	"github.com/edpilots/psibot/internal/render"
	"github.com/edpilots/psibot/internal/storage"
)

const socialCursorKey = "social_last_id"

type SocialSearcher interface {
	Search(ctx context.Context, authors []string, sinceID string) ([]model.SocialPost, string, error)
}

type RosterProvider interface {
	TrackedAuthors(ctx context.Context) ([]string, error)
}

type CursorStorage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// SocialService mirrors new posts by tracked authors. Dedup works by cursor
// rather than per-item records: only posts newer than the last observed ID
// are fetched at all.
type SocialService struct {
	client    SocialSearcher
	roster    RosterProvider
	settings  CursorStorage
	notifier  ChannelNotifier
	channelID int64
}

func NewSocialService(
	client SocialSearcher,
	roster RosterProvider,
	settings CursorStorage,
	notifier ChannelNotifier,
	channelID int64,
) *SocialService {
	return &SocialService{
		client:    client,
		roster:    roster,
		settings:  settings,
		notifier:  notifier,
		channelID: channelID,
	}
}

func (s *SocialService) Tick(ctx context.Context) error {
	cursor, err := s.settings.Get(ctx, socialCursorKey)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	authors, err := s.roster.TrackedAuthors(ctx)
	if err != nil {
		log.Printf("[ERROR] social: reading roster: %v", err)
		return nil
	}
	if len(authors) == 0 {
		return nil
	}

	posts, observed, err := s.client.Search(ctx, authors, cursor)
	if err != nil {
		log.Printf("[ERROR] social: search failed: %v", err)
		return nil
	}

	for _, post := range posts {
		if _, err := s.notifier.Post(s.channelID, render.SocialPost(post)); err != nil {
			log.Printf("[ERROR] social: posting %s: %v", post.ID, err)
		}
	}

	if len(posts) > 0 {
		log.Printf("[INFO] social: mirrored %d new posts", len(posts))
	}

	// Advance the cursor only when the search actually saw something newer.
	if observed != "" && observed != cursor {
		if err := s.settings.Set(ctx, socialCursorKey, observed); err != nil {
			return err
		}
	}
	return nil
}
