// Package sheets mirrors stored records into a Google spreadsheet as a
// best-effort historical export, and reads the tracked-authors roster used
// by the social search. The mirror has no read-back role in dedup.
package sheets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/edpilots/psibot/internal/model"
)

const (
	articlesSheet = "Galnet"
	devPostsSheet = "EliteDevPosts"
	rosterSheet   = "EliteDevs"

	dateLayout = "2006/01/02"
)

type Mirror struct {
	srv           *gsheets.Service
	spreadsheetID string
}

func New(ctx context.Context, clientEmail, privateKey, spreadsheetID string) (*Mirror, error) {
	if clientEmail == "" || privateKey == "" || spreadsheetID == "" {
		return nil, fmt.Errorf("google credentials not found in configuration")
	}

	conf := &jwt.Config{
		Email:      clientEmail,
		PrivateKey: []byte(privateKey),
		Scopes:     []string{gsheets.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}

	srv, err := gsheets.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Mirror{srv: srv, spreadsheetID: spreadsheetID}, nil
}

func (m *Mirror) AppendArticle(ctx context.Context, article model.Article) error {
	return m.appendRow(ctx, articlesSheet, []interface{}{
		article.GUID,
		article.PublishedAt.UTC().Format(dateLayout),
		article.Title,
		article.Content,
		article.Link,
	})
}

func (m *Mirror) AppendDevPost(ctx context.Context, post model.DevPost) error {
	return m.appendRow(ctx, devPostsSheet, []interface{}{
		post.GUID,
		post.PublishedAt.UTC().Format(time.RFC3339),
		post.Author,
		post.Title,
		post.Content,
	})
}

func (m *Mirror) appendRow(ctx context.Context, sheet string, row []interface{}) error {
	_, err := m.srv.Spreadsheets.Values.
		Append(m.spreadsheetID, sheet+"!A:E", &gsheets.ValueRange{
			Values: [][]interface{}{row},
		}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append to %s: %w", sheet, err)
	}
	return nil
}

// TrackedAuthors reads the social handles of the tracked developers.
func (m *Mirror) TrackedAuthors(ctx context.Context) ([]string, error) {
	resp, err := m.srv.Spreadsheets.Values.
		Get(m.spreadsheetID, rosterSheet+"!B2:B").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}

	var authors []string
	for _, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		if handle, ok := row[0].(string); ok && strings.TrimSpace(handle) != "" {
			authors = append(authors, strings.TrimSpace(handle))
		}
	}

	return authors, nil
}

// Articles reads back the mirrored article history, used only to backfill
// an empty store at startup.
func (m *Mirror) Articles(ctx context.Context) ([]model.Article, error) {
	resp, err := m.srv.Spreadsheets.Values.
		Get(m.spreadsheetID, articlesSheet+"!A2:E").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", articlesSheet, err)
	}

	var articles []model.Article
	for _, row := range resp.Values {
		if len(row) < 3 {
			continue
		}
		articles = append(articles, model.Article{
			GUID:        model.NormalizeGUID(cell(row, 0)),
			PublishedAt: parseDate(cell(row, 1)),
			Title:       cell(row, 2),
			Content:     cell(row, 3),
			Link:        cell(row, 4),
		})
	}

	return articles, nil
}

// DevPosts reads back the mirrored dev-post history for backfill.
func (m *Mirror) DevPosts(ctx context.Context) ([]model.DevPost, error) {
	resp, err := m.srv.Spreadsheets.Values.
		Get(m.spreadsheetID, devPostsSheet+"!A2:E").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", devPostsSheet, err)
	}

	var posts []model.DevPost
	for _, row := range resp.Values {
		if len(row) < 4 {
			continue
		}
		posts = append(posts, model.DevPost{
			GUID:        model.NormalizeGUID(cell(row, 0)),
			PublishedAt: parseDate(cell(row, 1)),
			Author:      cell(row, 2),
			Title:       cell(row, 3),
			Content:     cell(row, 4),
		})
	}

	return posts, nil
}

func cell(row []interface{}, i int) string {
	if i >= len(row) {
		return ""
	}
	s, _ := row[i].(string)
	return s
}

func parseDate(value string) time.Time {
	for _, layout := range []string{time.RFC3339, dateLayout} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
