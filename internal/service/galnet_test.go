package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edpilots/psibot/internal/model"
	"github.com/edpilots/psibot/internal/storage"
)

type fakeArticleStorage struct {
	stored   map[string]model.Article
	titles   map[string]struct{}
	storeErr map[string]error
}

func newFakeArticleStorage() *fakeArticleStorage {
	return &fakeArticleStorage{
		stored:   make(map[string]model.Article),
		titles:   make(map[string]struct{}),
		storeErr: make(map[string]error),
	}
}

func (f *fakeArticleStorage) Store(_ context.Context, article model.Article) error {
	if err, ok := f.storeErr[article.GUID]; ok {
		return err
	}
	if _, ok := f.stored[article.GUID]; ok {
		return storage.ErrDuplicate
	}
	f.stored[article.GUID] = article
	f.titles[model.NormalizeTitle(article.Title)] = struct{}{}
	return nil
}

func (f *fakeArticleStorage) DedupKeys(_ context.Context) (map[string]struct{}, map[string]struct{}, error) {
	guids := make(map[string]struct{}, len(f.stored))
	for guid := range f.stored {
		guids[guid] = struct{}{}
	}
	titles := make(map[string]struct{}, len(f.titles))
	for title := range f.titles {
		titles[title] = struct{}{}
	}
	return guids, titles, nil
}

type fakeArticleSource struct {
	items []model.Article
	err   error
}

func (f *fakeArticleSource) Fetch(context.Context) ([]model.Article, error) {
	return f.items, f.err
}

type fakeNotifier struct {
	posted []string
	edited map[int]string
	failOn map[string]error
	nextID int
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{
		edited: make(map[int]string),
		failOn: make(map[string]error),
	}
}

func (f *fakeNotifier) Post(_ int64, text string) (int, error) {
	for substr, err := range f.failOn {
		if substr != "" && strings.Contains(text, substr) {
			return 0, err
		}
	}
	f.posted = append(f.posted, text)
	f.nextID++
	return f.nextID, nil
}

func (f *fakeNotifier) Edit(_ int64, messageID int, text string) error {
	f.edited[messageID] = text
	return nil
}

func TestGalnetTickInsertsAndPostsNewItems(t *testing.T) {
	store := newFakeArticleStorage()
	src := &fakeArticleSource{items: []model.Article{
		{GUID: "a1", Title: "One"},
		{GUID: "a2", Title: "Two"},
	}}
	n := newFakeNotifier()

	svc := NewGalnetService(src, store, nil, n, 1, true)
	require.NoError(t, svc.Tick(context.Background()))

	assert.Len(t, store.stored, 2)
	assert.Len(t, n.posted, 2)

	// Second tick: a1 re-fetched, a3 appears.
	src.items = []model.Article{
		{GUID: "a1", Title: "One"},
		{GUID: "a3", Title: "Three"},
	}
	require.NoError(t, svc.Tick(context.Background()))

	assert.Len(t, store.stored, 3)
	assert.Contains(t, store.stored, "a3")
	assert.Len(t, n.posted, 3)
}

func TestGalnetTickFetchFailureIsTransient(t *testing.T) {
	store := newFakeArticleStorage()
	src := &fakeArticleSource{err: errors.New("connection refused")}
	n := newFakeNotifier()

	svc := NewGalnetService(src, store, nil, n, 1, true)
	assert.NoError(t, svc.Tick(context.Background()))
	assert.Empty(t, n.posted)
}

func TestGalnetTickDuplicateKeyContinues(t *testing.T) {
	store := newFakeArticleStorage()
	store.storeErr["a1"] = storage.ErrDuplicate
	src := &fakeArticleSource{items: []model.Article{
		{GUID: "a1", Title: "One"},
		{GUID: "a2", Title: "Two"},
	}}
	n := newFakeNotifier()

	svc := NewGalnetService(src, store, nil, n, 1, true)
	require.NoError(t, svc.Tick(context.Background()))

	// a1's concurrent-duplicate rejection is swallowed; a2 still posted.
	assert.Contains(t, store.stored, "a2")
	assert.Len(t, n.posted, 1)
}

func TestGalnetTickPersistenceErrorAbortsTick(t *testing.T) {
	store := newFakeArticleStorage()
	store.storeErr["a1"] = errors.New("disk full")
	src := &fakeArticleSource{items: []model.Article{{GUID: "a1", Title: "One"}}}
	n := newFakeNotifier()

	svc := NewGalnetService(src, store, nil, n, 1, true)
	assert.Error(t, svc.Tick(context.Background()))
	assert.Empty(t, n.posted)
}

func TestGalnetTickNotifyFailureDoesNotBlockSiblings(t *testing.T) {
	store := newFakeArticleStorage()
	src := &fakeArticleSource{items: []model.Article{
		{GUID: "a1", Title: "Bad"},
		{GUID: "a2", Title: "Good"},
	}}
	n := newFakeNotifier()
	n.failOn["Bad"] = errors.New("flood limit")

	svc := NewGalnetService(src, store, nil, n, 1, true)
	require.NoError(t, svc.Tick(context.Background()))

	// Both stored, only the healthy one posted.
	assert.Len(t, store.stored, 2)
	assert.Len(t, n.posted, 1)
}
