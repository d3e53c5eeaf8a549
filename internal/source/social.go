package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/edpilots/psibot/internal/model"
)

// SocialClient queries the social search API for posts by a set of tracked
// authors. It pages through the whole result window and reports the maximum
// observed post ID so the next search can resume from there.
type SocialClient struct {
	baseURL         string
	token           string
	includeReplies  bool
	includeRetweets bool
	client          *http.Client
}

func NewSocialClient(baseURL, token string, includeReplies, includeRetweets bool) *SocialClient {
	return &SocialClient{
		baseURL:         strings.TrimRight(baseURL, "/"),
		token:           token,
		includeReplies:  includeReplies,
		includeRetweets: includeRetweets,
		client:          &http.Client{Timeout: 30 * time.Second},
	}
}

type postReference struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type searchResponse struct {
	Data []struct {
		ID              string          `json:"id"`
		Text            string          `json:"text"`
		AuthorID        string          `json:"author_id"`
		InReplyToUserID string          `json:"in_reply_to_user_id"`
		ReferencedPosts []postReference `json:"referenced_tweets"`
	} `json:"data"`
	Includes struct {
		Users []struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"users"`
	} `json:"includes"`
	Meta struct {
		NextToken string `json:"next_token"`
	} `json:"meta"`
}

// Search returns posts from the tracked authors newer than sinceID, oldest
// first, along with the maximum observed ID ("" when nothing was seen).
// On the first run (empty sinceID) the window starts one day back.
func (c *SocialClient) Search(ctx context.Context, authors []string, sinceID string) ([]model.SocialPost, string, error) {
	if len(authors) == 0 {
		return nil, "", nil
	}

	from := make([]string, len(authors))
	for i, a := range authors {
		from[i] = "from:" + a
	}
	query := "(" + strings.Join(from, " OR ") + ")"

	var (
		posts     []model.SocialPost
		usernames = map[string]string{}
		maxID     int64
		nextToken string
	)

	for {
		page, err := c.searchPage(ctx, query, sinceID, nextToken)
		if err != nil {
			return nil, "", err
		}

		for _, user := range page.Includes.Users {
			usernames[user.ID] = user.Username
		}

		for _, item := range page.Data {
			if id, err := strconv.ParseInt(item.ID, 10, 64); err == nil && id > maxID {
				maxID = id
			}

			if !c.includeReplies && item.InReplyToUserID != "" {
				continue
			}
			if !c.includeRetweets && isRetweet(item.ReferencedPosts) {
				continue
			}

			posts = append(posts, model.SocialPost{
				ID:     item.ID,
				Author: usernames[item.AuthorID],
				Text:   item.Text,
			})
		}

		nextToken = page.Meta.NextToken
		if nextToken == "" {
			break
		}
	}

	sort.Slice(posts, func(i, j int) bool {
		a, _ := strconv.ParseInt(posts[i].ID, 10, 64)
		b, _ := strconv.ParseInt(posts[j].ID, 10, 64)
		return a < b
	})

	observed := ""
	if maxID > 0 {
		observed = strconv.FormatInt(maxID, 10)
	}
	return posts, observed, nil
}

func isRetweet(refs []postReference) bool {
	for _, ref := range refs {
		if ref.Type == "retweeted" {
			return true
		}
	}
	return false
}

func (c *SocialClient) searchPage(ctx context.Context, query, sinceID, nextToken string) (*searchResponse, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("max_results", "100")
	params.Set("tweet.fields", "in_reply_to_user_id,referenced_tweets,author_id")
	params.Set("expansions", "author_id")
	params.Set("user.fields", "username")
	if sinceID != "" {
		params.Set("since_id", sinceID)
	} else {
		params.Set("start_time", time.Now().UTC().Add(-24*time.Hour).Format(time.RFC3339))
	}
	if nextToken != "" {
		params.Set("next_token", nextToken)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/tweets/search/recent?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("social search: unexpected status %d", resp.StatusCode)
	}

	var page searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("social search: decoding response: %w", err)
	}
	return &page, nil
}
