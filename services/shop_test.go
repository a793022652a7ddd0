package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtendPremium_LapsedStartsFromNow(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	lapsed := now.AddDate(0, -2, 0)

	until := extendPremium(now, &lapsed, 1)
	assert.Equal(t, now.AddDate(0, 1, 0), until)
}

func TestExtendPremium_FirstSubscription(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	until := extendPremium(now, nil, 3)
	assert.Equal(t, now.AddDate(0, 3, 0), until)
}

func TestExtendPremium_ActiveStacks(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	active := now.AddDate(0, 2, 0)

	// Buying more months while still premium extends from the paid-until
	// date, not from today.
	until := extendPremium(now, &active, 1)
	assert.Equal(t, active.AddDate(0, 1, 0), until)
}
