package distance

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edpilots/psibot/internal/model"
	"github.com/edpilots/psibot/internal/storage"
)

type fakeSystemStorage struct {
	systems map[string]model.System
	bumped  []string
}

func newFakeSystemStorage(systems ...model.System) *fakeSystemStorage {
	f := &fakeSystemStorage{systems: make(map[string]model.System)}
	for _, s := range systems {
		f.systems[strings.ToUpper(s.Name)] = s
	}
	return f
}

func (f *fakeSystemStorage) FindByName(_ context.Context, name string) (*model.System, error) {
	s, ok := f.systems[strings.ToUpper(name)]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &s, nil
}

func (f *fakeSystemStorage) Add(_ context.Context, system model.System) error {
	key := strings.ToUpper(system.Name)
	if _, ok := f.systems[key]; ok {
		return storage.ErrDuplicate
	}
	f.systems[key] = system
	return nil
}

func (f *fakeSystemStorage) BumpPopularity(_ context.Context, name string) error {
	f.bumped = append(f.bumped, name)
	return nil
}

type fakeSystemsAPI struct {
	systems map[string]model.System
	queried [][]string
}

func (f *fakeSystemsAPI) Systems(_ context.Context, names []string) ([]model.System, error) {
	f.queried = append(f.queried, names)
	var out []model.System
	for _, name := range names {
		if s, ok := f.systems[strings.ToUpper(name)]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func TestBetweenUsesCachedSystems(t *testing.T) {
	store := newFakeSystemStorage(
		model.System{Name: "Sol", X: 0, Y: 0, Z: 0},
		model.System{Name: "Alpha Centauri", X: 3.03125, Y: -0.09375, Z: 3.15625},
	)
	api := &fakeSystemsAPI{}

	c := NewCalculator(store, api)
	d, systems, err := c.Between(context.Background(), "Sol", "Alpha Centauri")
	require.NoError(t, err)

	assert.InDelta(t, 4.38, d, 0.001)
	assert.Len(t, systems, 2)
	assert.Empty(t, api.queried, "cached systems must not hit the API")
}

func TestBetweenFallsBackToAPIAndCaches(t *testing.T) {
	store := newFakeSystemStorage(model.System{Name: "Sol"})
	api := &fakeSystemsAPI{systems: map[string]model.System{
		"SHINRARTA DEZHRA": {Name: "Shinrarta Dezhra", X: 55.71875, Y: 17.59375, Z: 27.15625, CoordsLocked: true},
	}}

	c := NewCalculator(store, api)
	_, _, err := c.Between(context.Background(), "Sol", "Shinrarta Dezhra")
	require.NoError(t, err)

	require.Len(t, api.queried, 1)
	assert.Equal(t, []string{"Shinrarta Dezhra"}, api.queried[0])

	// Locked coordinates are cached: the second lookup is local.
	_, _, err = c.Between(context.Background(), "Sol", "Shinrarta Dezhra")
	require.NoError(t, err)
	assert.Len(t, api.queried, 1)
}

func TestResolveDoesNotCacheUnlockedCoords(t *testing.T) {
	store := newFakeSystemStorage()
	api := &fakeSystemsAPI{systems: map[string]model.System{
		"COL 285 SECTOR": {Name: "Col 285 Sector", X: 100, CoordsLocked: false},
	}}

	c := NewCalculator(store, api)
	systems, err := c.Resolve(context.Background(), "Col 285 Sector")
	require.NoError(t, err)
	require.Len(t, systems, 1)

	_, err = store.FindByName(context.Background(), "Col 285 Sector")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestBetweenUnknownSystem(t *testing.T) {
	store := newFakeSystemStorage(model.System{Name: "Sol"})
	api := &fakeSystemsAPI{}

	c := NewCalculator(store, api)
	_, _, err := c.Between(context.Background(), "Sol", "Nowhere")
	assert.ErrorIs(t, err, ErrSystemNotFound)
}

func TestBump(t *testing.T) {
	store := newFakeSystemStorage()
	c := NewCalculator(store, &fakeSystemsAPI{})
	c.Bump(context.Background(), "Sol", "Lave")
	assert.Equal(t, []string{"Sol", "Lave"}, store.bumped)
}
