// Package model defines the data structures shared across psibot: Galnet
// articles, developer posts, social posts, community goals and their tracked
// chat messages, and star systems used by the distance command.
package model

import (
	"strings"
	"time"
)

type Article struct {
	ID          int64     `db:"id"`
	GUID        string    `db:"guid"`
	Title       string    `db:"title"`
	Content     string    `db:"content"`
	Link        string    `db:"link"`
	PublishedAt time.Time `db:"published_at"`
	CreatedAt   time.Time `db:"created_at"`
}

type DevPost struct {
	ID          int64     `db:"id"`
	GUID        string    `db:"guid"`
	Author      string    `db:"author"`
	Title       string    `db:"title"`
	Content     string    `db:"content"`
	Link        string    `db:"link"`
	PublishedAt time.Time `db:"published_at"`
	CreatedAt   time.Time `db:"created_at"`
}

// SocialPost is not persisted as a record; dedup for the social feed is
// handled by the last-seen cursor instead.
type SocialPost struct {
	ID     string
	Author string
	Text   string
}

type Goal struct {
	ID          string
	Title       string
	Bulletin    string
	System      string
	Station     string
	Activity    string
	Objective   string
	Commodities []string
	Expiry      time.Time
	Qty         int64
	TargetQty   int64
}

// Ended reports whether the goal reached its target or expired. A goal with
// missing quantity data can only end by expiry; a zero Expiry means the feed
// did not report a parseable date and never ends the goal on its own, so a
// format hiccup cannot freeze the message.
func (g Goal) Ended(now time.Time) bool {
	if g.Qty > 0 && g.TargetQty > 0 && g.Qty >= g.TargetQty {
		return true
	}
	return !g.Expiry.IsZero() && !g.Expiry.After(now)
}

// GoalLink ties a goal to the chat message currently representing it, with a
// snapshot of what was last rendered. Once Ended is true the link is terminal
// and the message is never edited again.
type GoalLink struct {
	GoalID    string
	MessageID int
	Goal      Goal
	Ended     bool
}

type System struct {
	ID            int64   `db:"id"`
	UpperName     string  `db:"upper_name"`
	Name          string  `db:"name"`
	EDSMID        int64   `db:"edsm_id"`
	ID64          int64   `db:"id64"`
	X             float64 `db:"x"`
	Y             float64 `db:"y"`
	Z             float64 `db:"z"`
	RequirePermit bool    `db:"require_permit"`
	PermitName    string  `db:"permit_name"`
	Allegiance    string  `db:"allegiance"`
	Government    string  `db:"government"`
	Population    int64   `db:"population"`
	Security      string  `db:"security"`
	Economy       string  `db:"economy"`
	Popularity    int64   `db:"popularity"`

	// CoordsLocked is reported by the systems API and decides whether the
	// system is worth caching; it is not stored.
	CoordsLocked bool `db:"-"`
}

// NormalizeGUID lower-cases a feed GUID and strips any URL prefix, so that
// feeds which switch between bare IDs and full permalink GUIDs still
// deduplicate against each other.
func NormalizeGUID(guid string) string {
	guid = strings.TrimSpace(guid)
	if strings.Contains(guid, "://") {
		guid = strings.TrimRight(guid, "/")
		if i := strings.LastIndex(guid, "/"); i >= 0 {
			guid = guid[i+1:]
		}
	}
	return strings.ToLower(guid)
}

// NormalizeTitle produces the comparison form used by the title-fallback
// dedup rule.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.Join(strings.Fields(title), " "))
}
