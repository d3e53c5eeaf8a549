// Package render builds the MarkdownV2 message texts posted to the channels.
package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-shiori/go-readability"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/edpilots/psibot/internal/botkit/markup"
	"github.com/edpilots/psibot/internal/model"
)

// maxContentLength caps the body of a posted item; longer bodies are cut
// with a trailing marker.
const maxContentLength = 4096

const truncationMarker = " [...]"

var numberPrinter = message.NewPrinter(language.English)

func Article(article model.Article) string {
	return fmt.Sprintf(
		"*%s*\n\n%s\n\n%s",
		markup.EscapeForMarkdown(article.Title),
		markup.EscapeForMarkdown(Truncate(article.Content, maxContentLength)),
		markup.EscapeForMarkdown(article.Link),
	)
}

// DevPost reduces the HTML body to readable text before posting and appends
// the original publication time.
func DevPost(post model.DevPost) string {
	author := post.Author
	if author == "" {
		author = "<Unknown>"
	}

	posted := fmt.Sprintf("Posted %s", post.PublishedAt.UTC().Format("2006-01-02 15:04 UTC"))
	body := Truncate(extractText(post.Content), maxContentLength-len(posted)-2)

	return fmt.Sprintf(
		"*%s*\n_%s_\n\n%s\n\n%s\n%s",
		markup.EscapeForMarkdown(post.Title),
		markup.EscapeForMarkdown(author),
		markup.EscapeForMarkdown(body),
		markup.EscapeForMarkdown(posted),
		markup.EscapeForMarkdown(post.Link),
	)
}

func SocialPost(post model.SocialPost) string {
	author := post.Author
	if author == "" {
		author = "<Unknown>"
	}
	return fmt.Sprintf(
		"*@%s*\n\n%s",
		markup.EscapeForMarkdown(author),
		markup.EscapeForMarkdown(post.Text),
	)
}

// extractText strips the HTML markup feeds wrap their post bodies in,
// falling back to the raw content when extraction fails.
func extractText(content string) string {
	if !strings.Contains(content, "<") {
		return content
	}
	doc, err := readability.FromReader(strings.NewReader(content), nil)
	if err != nil || strings.TrimSpace(doc.TextContent) == "" {
		return content
	}
	return strings.TrimSpace(doc.TextContent)
}

func Truncate(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := max - len(truncationMarker)
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + truncationMarker
}
