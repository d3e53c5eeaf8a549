// Package distance resolves star systems and computes the distance between
// them for the /distance command.
package distance

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/edpilots/psibot/internal/model"
	"github.com/edpilots/psibot/internal/storage"
)

var ErrSystemNotFound = errors.New("system not found")

type SystemStorage interface {
	FindByName(ctx context.Context, name string) (*model.System, error)
	Add(ctx context.Context, system model.System) error
	BumpPopularity(ctx context.Context, name string) error
}

type SystemsAPI interface {
	Systems(ctx context.Context, names []string) ([]model.System, error)
}

type Calculator struct {
	systems SystemStorage
	api     SystemsAPI
}

func NewCalculator(systems SystemStorage, api SystemsAPI) *Calculator {
	return &Calculator{systems: systems, api: api}
}

// Between returns the distance in light years between two systems, rounded
// to two decimals.
func (c *Calculator) Between(ctx context.Context, origin, destination string) (float64, []model.System, error) {
	systems, err := c.Resolve(ctx, origin, destination)
	if err != nil {
		return 0, nil, err
	}
	if len(systems) != 2 {
		return 0, nil, ErrSystemNotFound
	}

	d := math.Sqrt(
		(systems[0].X-systems[1].X)*(systems[0].X-systems[1].X) +
			(systems[0].Y-systems[1].Y)*(systems[0].Y-systems[1].Y) +
			(systems[0].Z-systems[1].Z)*(systems[0].Z-systems[1].Z),
	)

	return math.Round(d*100) / 100, systems, nil
}

// Resolve looks each system up in the store first, then falls back to the
// systems API. API results with locked coordinates are cached in the store.
func (c *Calculator) Resolve(ctx context.Context, names ...string) ([]model.System, error) {
	var (
		resolved []model.System
		missing  []string
	)

	for _, name := range names {
		system, err := c.systems.FindByName(ctx, name)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			missing = append(missing, name)
		case err != nil:
			return nil, fmt.Errorf("lookup system %q: %w", name, err)
		default:
			resolved = append(resolved, *system)
		}
	}

	if len(missing) == 0 {
		return resolved, nil
	}

	fetched, err := c.api.Systems(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("resolve systems %v: %w", missing, err)
	}

	for _, system := range fetched {
		resolved = append(resolved, system)
		if !system.CoordsLocked {
			continue
		}
		if err := c.systems.Add(ctx, system); err != nil && !errors.Is(err, storage.ErrDuplicate) {
			log.Printf("[ERROR] distance: caching system %s: %v", system.Name, err)
		}
	}

	return resolved, nil
}

// Bump records a lookup against the named systems, feeding the popularity
// ordering used elsewhere.
func (c *Calculator) Bump(ctx context.Context, names ...string) {
	for _, name := range names {
		if err := c.systems.BumpPopularity(ctx, name); err != nil {
			log.Printf("[ERROR] distance: bumping popularity of %s: %v", name, err)
		}
	}
}
