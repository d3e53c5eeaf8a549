package render

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/edpilots/psibot/internal/model"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 100))

	long := strings.Repeat("x", 200)
	got := Truncate(long, 50)
	assert.LessOrEqual(t, len(got), 50)
	assert.True(t, strings.HasSuffix(got, truncationMarker))
}

func TestTruncateDoesNotSplitRunes(t *testing.T) {
	long := strings.Repeat("é", 100)
	got := Truncate(long, 51)
	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasSuffix(got, truncationMarker))
}

func TestArticleEscapesMarkdownSyntax(t *testing.T) {
	article := model.Article{
		Title:   "Week in Review (Special!)",
		Content: "Pilots earned 1.2 billion credits.",
		Link:    "https://example.com/galnet/week-in-review",
	}

	text := Article(article)

	assert.Contains(t, text, "*Week in Review \\(Special\\!\\)*")
	assert.Contains(t, text, "1\\.2 billion")
	assert.Contains(t, text, "week\\-in\\-review")
}

func TestDevPostAuthorFallback(t *testing.T) {
	post := model.DevPost{
		Title:       "Update 19 notes",
		Content:     "Fixed several crashes.",
		Link:        "https://example.com/post/1",
		PublishedAt: time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC),
	}

	text := DevPost(post)
	// The placeholder goes through MarkdownV2 escaping like any author name.
	assert.Contains(t, text, `_<Unknown\>_`)
	assert.Contains(t, text, "Posted 2024\\-06\\-01 09:30 UTC")

	post.Author = "Bruce"
	assert.Contains(t, DevPost(post), "_Bruce_")
}

func TestDevPostStripsHTML(t *testing.T) {
	post := model.DevPost{
		Title:       "Patch notes",
		Author:      "Arthur",
		Content:     "<html><body><p>First paragraph of the patch notes text, long enough for extraction to keep.</p><p>Second paragraph with more detail about what changed.</p></body></html>",
		PublishedAt: time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC),
	}

	text := DevPost(post)
	assert.NotContains(t, text, "<p>")
	assert.Contains(t, text, "First paragraph")
}

func TestSocialPost(t *testing.T) {
	text := SocialPost(model.SocialPost{Author: "EliteDangerous", Text: "Server maintenance at 7AM UTC"})
	assert.Contains(t, text, "*@EliteDangerous*")
	assert.Contains(t, text, "Server maintenance")
}
