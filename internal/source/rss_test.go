package source

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixFutureDate(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	// In-universe stamp, 1286 years ahead.
	future := time.Date(3310, 6, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 2024, fixFutureDate(future, now).Year())

	// Real-era stamps pass through, including slightly ahead of the clock.
	recent := now.Add(-2 * time.Hour)
	assert.Equal(t, recent, fixFutureDate(recent, now))
	ahead := now.Add(12 * time.Hour)
	assert.Equal(t, ahead, fixFutureDate(ahead, now))
}

func TestCollapseBlankLines(t *testing.T) {
	in := "first\r\n\r\n\r\nsecond\n\n\n\nthird\nfourth"
	assert.Equal(t, "first\n\nsecond\n\nthird\nfourth", collapseBlankLines(in))
}
