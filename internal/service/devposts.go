package service

import (
	"context"
	"errors"
	"log"

	"github.com/edpilots/psibot/internal/model"
	"github.com/edpilots/psibot/internal/render"
	"github.com/edpilots/psibot/internal/storage"
)

type DevPostStorage interface {
	Store(ctx context.Context, post model.DevPost) error
	GUIDs(ctx context.Context) (map[string]struct{}, error)
}

type DevPostSource interface {
	Fetch(ctx context.Context) ([]model.DevPost, error)
}

type DevPostMirror interface {
	AppendDevPost(ctx context.Context, post model.DevPost) error
}

type DevPostsService struct {
	source    DevPostSource
	posts     DevPostStorage
	mirror    DevPostMirror
	notifier  ChannelNotifier
	channelID int64
}

func NewDevPostsService(
	source DevPostSource,
	posts DevPostStorage,
	mirror DevPostMirror,
	notifier ChannelNotifier,
	channelID int64,
) *DevPostsService {
	return &DevPostsService{
		source:    source,
		posts:     posts,
		mirror:    mirror,
		notifier:  notifier,
		channelID: channelID,
	}
}

func (s *DevPostsService) Tick(ctx context.Context) error {
	items, err := s.source.Fetch(ctx)
	if err != nil {
		log.Printf("[ERROR] devposts: fetch failed: %v", err)
		return nil
	}

	existing, err := s.posts.GUIDs(ctx)
	if err != nil {
		return err
	}

	fresh := SelectNewPosts(existing, items)

	added := 0
	for _, post := range fresh {
		if err := s.posts.Store(ctx, post); err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				log.Printf("[INFO] devposts: post %s already stored, skipping", post.GUID)
				continue
			}
			return err
		}

		if s.mirror != nil {
			if err := s.mirror.AppendDevPost(ctx, post); err != nil {
				log.Printf("[ERROR] devposts: mirroring post %s: %v", post.GUID, err)
			}
		}

		if _, err := s.notifier.Post(s.channelID, render.DevPost(post)); err != nil {
			log.Printf("[ERROR] devposts: posting %s: %v", post.GUID, err)
		}

		added++
	}

	if added > 0 {
		log.Printf("[INFO] devposts: added %d new posts", added)
	}
	return nil
}
