package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/edpilots/psibot/internal/botkit/markup"
	"github.com/edpilots/psibot/internal/model"
)

const (
	barSegments = 20
	barFull     = "🟩"
	barEmpty    = "⬜"
)

var activityNames = map[string]string{
	"tradelist": "Trade",
}

// Goal renders the community-goal card. Active goals show a countdown and a
// progress bar; ended goals show "GOAL REACHED" and get no next-update line.
func Goal(goal model.Goal, nextUpdate time.Duration, now time.Time) string {
	ended := goal.Ended(now)

	var b strings.Builder

	fmt.Fprintf(&b, "*%s*\n", markup.EscapeForMarkdown(goal.Title))
	if goal.Bulletin != "" {
		fmt.Fprintf(&b, "%s\n", markup.EscapeForMarkdown(Truncate(goal.Bulletin, maxContentLength)))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "System: *%s*  Station: *%s*  Activity: *%s*\n",
		markup.EscapeForMarkdown(goal.System),
		markup.EscapeForMarkdown(goal.Station),
		markup.EscapeForMarkdown(activityName(goal.Activity)),
	)

	if len(goal.Commodities) > 0 {
		fmt.Fprintf(&b, "Commodities: %s\n",
			markup.EscapeForMarkdown(strings.Join(goal.Commodities, ", ")))
	}

	if ended {
		b.WriteString("Time Left: *GOAL REACHED*\n")
	} else {
		fmt.Fprintf(&b, "Time Left: *%s*  Expires: %s\n",
			markup.EscapeForMarkdown(TimeLeft(goal.Expiry.Sub(now))),
			markup.EscapeForMarkdown(goal.Expiry.UTC().Format("2006-01-02 15:04 UTC")),
		)
	}

	if goal.Qty > 0 {
		fmt.Fprintf(&b, "Delivered: %s\n",
			markup.EscapeForMarkdown(numberPrinter.Sprintf("%d", goal.Qty)))
	}
	if goal.TargetQty > 0 {
		fmt.Fprintf(&b, "Requested: %s\n",
			markup.EscapeForMarkdown(numberPrinter.Sprintf("%d", goal.TargetQty)))
	}

	bar := ProgressBar(goal.Qty, goal.TargetQty)
	if bar == "" {
		b.WriteString(markup.EscapeForMarkdown("No progress data reported yet.") + "\n")
	} else {
		b.WriteString(bar + "\n")
	}

	if !ended {
		fmt.Fprintf(&b, "\nNext update: in %s",
			markup.EscapeForMarkdown(formatInterval(nextUpdate)))
	}

	return strings.TrimRight(b.String(), "\n")
}

func activityName(activity string) string {
	if name, ok := activityNames[activity]; ok {
		return name
	}
	return activity
}

// ProgressBar quantizes qty/target into a fixed number of segments. Returns
// "" when either quantity is missing so the caller can render a placeholder.
func ProgressBar(qty, target int64) string {
	if qty <= 0 || target <= 0 {
		return ""
	}

	filled := float64(qty) * barSegments / float64(target)

	var b strings.Builder
	for i := 0; i < barSegments; i++ {
		if float64(i) < filled {
			b.WriteString(barFull)
		} else {
			b.WriteString(barEmpty)
		}
	}
	return b.String()
}

// TimeLeft decomposes the remaining time into weeks, days, hours and minutes.
// Leading zero-valued units are omitted; once a unit is emitted, smaller
// units follow even when zero, so the string always ends with minutes.
func TimeLeft(remaining time.Duration) string {
	secs := int64(remaining.Seconds())
	if secs < 0 {
		secs = 0
	}

	units := []struct {
		suffix  string
		seconds int64
	}{
		{"W", 7 * 24 * 3600},
		{"D", 24 * 3600},
		{"H", 3600},
		{"M", 60},
	}

	var parts []string
	for _, unit := range units {
		value := secs / unit.seconds
		secs -= value * unit.seconds

		if value == 0 && len(parts) == 0 && unit.suffix != "M" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%d%s", value, unit.suffix))
	}

	return strings.Join(parts, " ")
}

func formatInterval(interval time.Duration) string {
	return strings.TrimSuffix(interval.String(), "0s")
}
