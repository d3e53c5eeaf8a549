package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edpilots/psibot/internal/model"
)

// GoalLinkStorage tracks which chat message represents each community goal,
// together with the last-rendered snapshot of the goal.
type GoalLinkStorage struct {
	db *sqlx.DB
}

func NewGoalLinkStorage(db *sqlx.DB) *GoalLinkStorage {
	return &GoalLinkStorage{db: db}
}

func (s *GoalLinkStorage) Find(ctx context.Context, goalID string) (*model.GoalLink, error) {
	var row struct {
		GoalID    string `db:"goal_id"`
		MessageID int    `db:"message_id"`
		Goal      []byte `db:"goal"`
		Ended     bool   `db:"ended"`
	}

	err := s.db.GetContext(ctx, &row,
		`SELECT goal_id, message_id, goal, ended FROM goal_links WHERE goal_id = $1`,
		goalID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	link := model.GoalLink{
		GoalID:    row.GoalID,
		MessageID: row.MessageID,
		Ended:     row.Ended,
	}
	if err := json.Unmarshal(row.Goal, &link.Goal); err != nil {
		return nil, fmt.Errorf("decode goal snapshot: %w", err)
	}

	return &link, nil
}

func (s *GoalLinkStorage) Add(ctx context.Context, link model.GoalLink) error {
	snapshot, err := json.Marshal(link.Goal)
	if err != nil {
		return fmt.Errorf("encode goal snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO goal_links (goal_id, message_id, goal, ended)
		 VALUES ($1, $2, $3, $4)`,
		link.GoalID, link.MessageID, snapshot, link.Ended,
	)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (s *GoalLinkStorage) Update(ctx context.Context, link model.GoalLink) error {
	snapshot, err := json.Marshal(link.Goal)
	if err != nil {
		return fmt.Errorf("encode goal snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`UPDATE goal_links SET message_id = $2, goal = $3, ended = $4 WHERE goal_id = $1`,
		link.GoalID, link.MessageID, snapshot, link.Ended,
	)
	return err
}
