package source

import (
	"context"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/edpilots/psibot/internal/model"
)

// DevPostSource reads the developer-post feed. It uses gofeed rather than
// the rss package because the feed carries the post author in dc:creator,
// which gofeed surfaces.
type DevPostSource struct {
	url    string
	tag    string
	parser *gofeed.Parser
}

// NewDevPostSource returns a source that keeps only items tagged with tag;
// an empty tag keeps everything.
func NewDevPostSource(url, tag string) *DevPostSource {
	return &DevPostSource{
		url:    url,
		tag:    tag,
		parser: gofeed.NewParser(),
	}
}

func (s *DevPostSource) Fetch(ctx context.Context) ([]model.DevPost, error) {
	feed, err := s.parser.ParseURLWithContext(s.url, ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var posts []model.DevPost
	for _, item := range feed.Items {
		if s.tag != "" && !hasCategory(item, s.tag) {
			continue
		}
		posts = append(posts, model.DevPost{
			GUID:        model.NormalizeGUID(item.GUID),
			Author:      itemCreator(item),
			Title:       item.Title,
			Content:     itemBody(item),
			Link:        item.Link,
			PublishedAt: itemDate(item, now),
		})
	}

	return posts, nil
}

func hasCategory(item *gofeed.Item, tag string) bool {
	for _, category := range item.Categories {
		if strings.EqualFold(category, tag) {
			return true
		}
	}
	return false
}

func itemCreator(item *gofeed.Item) string {
	if item.DublinCoreExt != nil && len(item.DublinCoreExt.Creator) > 0 {
		return item.DublinCoreExt.Creator[0]
	}
	if item.Author != nil {
		return item.Author.Name
	}
	return ""
}

func itemBody(item *gofeed.Item) string {
	if c := strings.TrimSpace(item.Content); c != "" {
		return c
	}
	return strings.TrimSpace(item.Description)
}

func itemDate(item *gofeed.Item, now time.Time) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	return now
}
