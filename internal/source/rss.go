// Package source implements the clients that fetch and normalize the remote
// feeds: the Galnet news RSS, the developer-post RSS, the community-goals XML
// feed, the social search API, and the EDSM systems API.
package source

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/SlyMarbo/rss"
	"github.com/samber/lo"

	"github.com/edpilots/psibot/internal/model"
)

// contextTransport injects a context into every outgoing request so that
// context cancellation and deadlines propagate through the rss library.
type contextTransport struct {
	ctx  context.Context
	base http.RoundTripper
}

func (t contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.base.RoundTrip(req.WithContext(t.ctx))
}

type GalnetSource struct {
	url string
}

func NewGalnetSource(url string) *GalnetSource {
	return &GalnetSource{url: url}
}

func (s *GalnetSource) Fetch(ctx context.Context) ([]model.Article, error) {
	feed, err := loadFeed(ctx, s.url)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return lo.Map(feed.Items, func(item *rss.Item, _ int) model.Article {
		return model.Article{
			GUID:        model.NormalizeGUID(item.ID),
			Title:       item.Title,
			Content:     collapseBlankLines(itemText(item)),
			Link:        item.Link,
			PublishedAt: fixFutureDate(item.Date, now),
		}
	}), nil
}

var redundantNewLines = regexp.MustCompile(`(\r\n|\r|\n){2,}`)

func collapseBlankLines(text string) string {
	return redundantNewLines.ReplaceAllString(text, "\n\n")
}

// fixFutureDate pulls in-game dates back to the present era. The feed stamps
// articles with the in-universe year, 1286 years ahead.
func fixFutureDate(date, now time.Time) time.Time {
	if date.After(now.Add(24 * time.Hour)) {
		return date.AddDate(-1286, 0, 0)
	}
	return date
}

// itemText returns the richest available text for an item.
// Content (full body) is preferred over Summary (short excerpt).
func itemText(item *rss.Item) string {
	if c := strings.TrimSpace(item.Content); c != "" {
		return c
	}
	return strings.TrimSpace(item.Summary)
}

func loadFeed(ctx context.Context, url string) (*rss.Feed, error) {
	client := &http.Client{
		Transport: contextTransport{ctx: ctx, base: http.DefaultTransport},
		Timeout:   30 * time.Second,
	}
	return rss.FetchByClient(url, client)
}
