package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/edpilots/psibot/internal/model"
)

type SystemStorage struct {
	db *sqlx.DB
}

func NewSystemStorage(db *sqlx.DB) *SystemStorage {
	return &SystemStorage{db: db}
}

func (s *SystemStorage) FindByName(ctx context.Context, name string) (*model.System, error) {
	var system model.System
	err := s.db.GetContext(ctx, &system,
		`SELECT id, upper_name, name, edsm_id, id64, x, y, z,
		        require_permit, permit_name, allegiance, government,
		        population, security, economy, popularity
		 FROM systems
		 WHERE upper_name = $1`,
		strings.ToUpper(strings.TrimSpace(name)),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &system, nil
}

func (s *SystemStorage) Add(ctx context.Context, system model.System) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO systems (upper_name, name, edsm_id, id64, x, y, z,
		                      require_permit, permit_name, allegiance, government,
		                      population, security, economy, popularity)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		system.UpperName, system.Name, system.EDSMID, system.ID64,
		system.X, system.Y, system.Z,
		system.RequirePermit, system.PermitName, system.Allegiance,
		system.Government, system.Population, system.Security,
		system.Economy, system.Popularity,
	)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (s *SystemStorage) BumpPopularity(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE systems SET popularity = popularity + 1 WHERE upper_name = $1`,
		strings.ToUpper(strings.TrimSpace(name)),
	)
	return err
}

func (s *SystemStorage) MostPopular(ctx context.Context, limit int) ([]model.System, error) {
	var systems []model.System
	err := s.db.SelectContext(ctx, &systems,
		`SELECT id, upper_name, name, edsm_id, id64, x, y, z,
		        require_permit, permit_name, allegiance, government,
		        population, security, economy, popularity
		 FROM systems
		 ORDER BY popularity DESC
		 LIMIT $1`,
		limit,
	)
	return systems, err
}
