package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAdvanceStreak_FirstActivity(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, advanceStreak(0, nil, now))
}

func TestAdvanceStreak_SameDayKeepsStreak(t *testing.T) {
	now := time.Date(2026, 3, 10, 21, 0, 0, 0, time.UTC)
	earlier := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, 4, advanceStreak(4, &earlier, now))
}

func TestAdvanceStreak_NextDayExtends(t *testing.T) {
	now := time.Date(2026, 3, 11, 7, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)

	assert.Equal(t, 5, advanceStreak(4, &yesterday, now))
}

func TestAdvanceStreak_GapResets(t *testing.T) {
	now := time.Date(2026, 3, 14, 7, 0, 0, 0, time.UTC)
	lastWeek := time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, advanceStreak(9, &lastWeek, now))
}

func TestDecodeStringList(t *testing.T) {
	assert.Equal(t, []string{}, decodeStringList(nil))
	assert.Equal(t, []string{}, decodeStringList([]byte("not json")))
	assert.Equal(t, []string{"a", "b"}, decodeStringList([]byte(`["a","b"]`)))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	list := []string{"book-1", "book-2"}
	assert.Equal(t, list, decodeStringList(encodeStringList(list)))
}
