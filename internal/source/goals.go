package source

import (
	"context"
	"encoding/xml"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/edpilots/psibot/internal/model"
)

// GoalsClient fetches the community-goals XML feed. Network failures and
// malformed payloads degrade to an empty goal list: the feed is flaky and a
// bad tick must never disable future polling.
type GoalsClient struct {
	url    string
	client *http.Client
}

func NewGoalsClient(url string) *GoalsClient {
	return &GoalsClient{
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type goalsDocument struct {
	XMLName xml.Name   `xml:"data"`
	Items   []goalItem `xml:"activeInitiatives>item"`
}

type goalItem struct {
	ID          string `xml:"id"`
	Title       string `xml:"title"`
	Bulletin    string `xml:"bulletin"`
	System      string `xml:"starsystem_name"`
	Station     string `xml:"market_name"`
	Activity    string `xml:"activityType"`
	Objective   string `xml:"objective"`
	Commodities string `xml:"target_commodity_list"`
	Expiry      string `xml:"expiry"`
	Qty         string `xml:"qty"`
	TargetQty   string `xml:"target_qty"`
}

// Fetch returns the active goals sorted by ID for deterministic processing.
func (c *GoalsClient) Fetch(ctx context.Context) []model.Goal {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		log.Printf("[ERROR] goals feed: building request: %v", err)
		return nil
	}
	req.Header.Set("Accept", "text/xml")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("[ERROR] goals feed: fetch failed: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[ERROR] goals feed: unexpected status %d", resp.StatusCode)
		return nil
	}

	var doc goalsDocument
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		log.Printf("[ERROR] goals feed: decoding response: %v", err)
		return nil
	}

	goals := make([]model.Goal, 0, len(doc.Items))
	for _, item := range doc.Items {
		goals = append(goals, model.Goal{
			ID:          item.ID,
			Title:       item.Title,
			Bulletin:    item.Bulletin,
			System:      item.System,
			Station:     item.Station,
			Activity:    item.Activity,
			Objective:   item.Objective,
			Commodities: splitCommodities(item.Commodities),
			Expiry:      parseExpiry(item.Expiry),
			Qty:         parseQty(item.Qty),
			TargetQty:   parseQty(item.TargetQty),
		})
	}

	sort.Slice(goals, func(i, j int) bool { return goals[i].ID < goals[j].ID })

	return goals
}

func splitCommodities(list string) []string {
	list = strings.TrimSpace(list)
	if list == "" {
		return nil
	}
	parts := strings.Split(list, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func parseExpiry(value string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, strings.TrimSpace(value)); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parseQty(value string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
