package service

import "github.com/edpilots/psibot/internal/model"

// Keyset is a snapshot of the store's dedup keys at the start of a tick.
type Keyset struct {
	GUIDs  map[string]struct{}
	Titles map[string]struct{}
}

func (k Keyset) hasGUID(guid string) bool {
	_, ok := k.GUIDs[guid]
	return ok
}

func (k Keyset) hasTitle(title string) bool {
	_, ok := k.Titles[model.NormalizeTitle(title)]
	return ok
}

// SelectNewArticles returns the fetched articles absent from the store.
// With matchTitle set, an item is also considered seen when its normalized
// title matches a stored one, tolerating feeds that change GUIDs on
// re-publish.
func SelectNewArticles(existing Keyset, fetched []model.Article, matchTitle bool) []model.Article {
	var fresh []model.Article
	for _, article := range fetched {
		if existing.hasGUID(article.GUID) {
			continue
		}
		if matchTitle && existing.hasTitle(article.Title) {
			continue
		}
		fresh = append(fresh, article)
	}
	return fresh
}

// SelectNewPosts returns the fetched dev posts whose GUID is absent from the
// store.
func SelectNewPosts(existing map[string]struct{}, fetched []model.DevPost) []model.DevPost {
	var fresh []model.DevPost
	for _, post := range fetched {
		if _, ok := existing[post.GUID]; ok {
			continue
		}
		fresh = append(fresh, post)
	}
	return fresh
}
