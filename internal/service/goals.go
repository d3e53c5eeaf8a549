package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/edpilots/psibot/internal/model"
	"github.com/edpilots/psibot/internal/render"
	"github.com/edpilots/psibot/internal/storage"
)

type GoalSource interface {
	Fetch(ctx context.Context) []model.Goal
}

type GoalLinkStorage interface {
	Find(ctx context.Context, goalID string) (*model.GoalLink, error)
	Add(ctx context.Context, link model.GoalLink) error
	Update(ctx context.Context, link model.GoalLink) error
}

type GoalNotifier interface {
	Post(channelID int64, text string) (int, error)
	Edit(channelID int64, messageID int, text string) error
}

// GoalService keeps one channel message per community goal: created on first
// sight, edited in place while the goal is active, frozen once it ends.
type GoalService struct {
	source    GoalSource
	links     GoalLinkStorage
	notifier  GoalNotifier
	channelID int64
	interval  time.Duration

	now func() time.Time
}

func NewGoalService(
	source GoalSource,
	links GoalLinkStorage,
	notifier GoalNotifier,
	channelID int64,
	interval time.Duration,
) *GoalService {
	return &GoalService{
		source:    source,
		links:     links,
		notifier:  notifier,
		channelID: channelID,
		interval:  interval,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *GoalService) Tick(ctx context.Context) error {
	goals := s.source.Fetch(ctx)

	for _, goal := range goals {
		if err := s.reconcile(ctx, goal); err != nil {
			log.Printf("[ERROR] goals: processing goal %s: %v", goal.ID, err)
		}
	}
	return nil
}

func (s *GoalService) reconcile(ctx context.Context, goal model.Goal) error {
	now := s.now()

	link, err := s.links.Find(ctx, goal.ID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		messageID, err := s.notifier.Post(s.channelID, render.Goal(goal, s.interval, now))
		if err != nil {
			return err
		}
		return s.links.Add(ctx, model.GoalLink{
			GoalID:    goal.ID,
			MessageID: messageID,
			Goal:      goal,
			Ended:     goal.Ended(now),
		})

	case err != nil:
		return err

	case link.Ended:
		// Terminal: no further edits even if the feed reports changes.
		return nil

	default:
		if err := s.notifier.Edit(s.channelID, link.MessageID, render.Goal(goal, s.interval, now)); err != nil {
			return err
		}
		link.Goal = goal
		link.Ended = goal.Ended(now)
		return s.links.Update(ctx, *link)
	}
}
