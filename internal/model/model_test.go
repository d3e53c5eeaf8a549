package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeGUID(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare id", "ABC123", "abc123"},
		{"already lower", "abc123", "abc123"},
		{"permalink", "https://community.elitedangerous.com/galnet/uid/ABC123", "abc123"},
		{"trailing slash", "https://example.com/uid/ABC123/", "abc123"},
		{"whitespace", "  ABC123 ", "abc123"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeGUID(tc.in))
		})
	}
}

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "witch head nebula", NormalizeTitle("  Witch   Head\nNebula "))
}

func TestGoalEnded(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(48 * time.Hour)
	past := now.Add(-time.Hour)

	cases := []struct {
		name string
		goal Goal
		want bool
	}{
		{"target reached", Goal{Qty: 100, TargetQty: 100, Expiry: future}, true},
		{"target exceeded", Goal{Qty: 120, TargetQty: 100, Expiry: future}, true},
		{"in progress", Goal{Qty: 50, TargetQty: 100, Expiry: future}, false},
		{"expired", Goal{Qty: 50, TargetQty: 100, Expiry: past}, true},
		{"no progress data, active", Goal{Expiry: future}, false},
		{"no progress data, expired", Goal{Expiry: past}, true},
		{"expiry boundary", Goal{Qty: 1, TargetQty: 100, Expiry: now}, true},
		{"unparsed expiry stays active", Goal{Qty: 50, TargetQty: 100}, false},
		{"unparsed expiry, target reached", Goal{Qty: 100, TargetQty: 100}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.goal.Ended(now))
		})
	}
}
