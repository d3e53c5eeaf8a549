package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edpilots/psibot/internal/model"
)

func keyset(guids, titles []string) Keyset {
	k := Keyset{
		GUIDs:  make(map[string]struct{}),
		Titles: make(map[string]struct{}),
	}
	for _, g := range guids {
		k.GUIDs[g] = struct{}{}
	}
	for _, t := range titles {
		k.Titles[model.NormalizeTitle(t)] = struct{}{}
	}
	return k
}

func TestSelectNewArticles(t *testing.T) {
	fetched := []model.Article{
		{GUID: "a1", Title: "First"},
		{GUID: "a2", Title: "Second"},
		{GUID: "a3", Title: "Third"},
	}

	t.Run("empty store keeps everything", func(t *testing.T) {
		fresh := SelectNewArticles(keyset(nil, nil), fetched, true)
		assert.Len(t, fresh, 3)
	})

	t.Run("known guids are dropped", func(t *testing.T) {
		fresh := SelectNewArticles(keyset([]string{"a1", "a3"}, nil), fetched, true)
		assert.Equal(t, []model.Article{{GUID: "a2", Title: "Second"}}, fresh)
	})

	t.Run("title fallback drops re-published items", func(t *testing.T) {
		// Same title under a new GUID: upstream GUID churn.
		fresh := SelectNewArticles(keyset(nil, []string{"second"}), fetched, true)
		assert.Len(t, fresh, 2)
		for _, a := range fresh {
			assert.NotEqual(t, "a2", a.GUID)
		}
	})

	t.Run("title fallback disabled keeps them", func(t *testing.T) {
		fresh := SelectNewArticles(keyset(nil, []string{"second"}), fetched, false)
		assert.Len(t, fresh, 3)
	})
}

func TestSelectNewPosts(t *testing.T) {
	fetched := []model.DevPost{
		{GUID: "p1"},
		{GUID: "p2"},
	}

	fresh := SelectNewPosts(map[string]struct{}{"p1": {}}, fetched)
	assert.Equal(t, []model.DevPost{{GUID: "p2"}}, fresh)
}
