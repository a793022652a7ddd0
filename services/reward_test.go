package services

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orydia-app/orydia_api/model"
	"github.com/orydia-app/orydia_api/shared"
)

func wheelTable(entries ...model.RewardEntry) *model.RewardTable {
	return &model.RewardTable{
		ID:      "table-1",
		Name:    "test_wheel",
		Kind:    shared.RewardKindWheel,
		Entries: entries,
	}
}

func TestRoll_SingleEntryFixedQuantity(t *testing.T) {
	svc := &RewardService{}
	table := wheelTable(model.RewardEntry{
		ID: "e1", Order: 0, Label: "five tensens",
		Currency: shared.CurrencyTensens, Weight: 1, MinQuantity: 5, MaxQuantity: 5,
	})

	rng := rand.New(rand.NewSource(1))
	outcome, err := svc.Roll(table, rng, 0)
	require.NoError(t, err)

	assert.Equal(t, "e1", outcome.EntryID)
	assert.Equal(t, 5, outcome.Quantity)
	assert.Equal(t, shared.CurrencyTensens, outcome.Currency)
	assert.NotEmpty(t, outcome.RollID)
}

func TestRoll_EmptyTable(t *testing.T) {
	svc := &RewardService{}

	_, err := svc.Roll(wheelTable(), rand.New(rand.NewSource(1)), 0)
	require.Error(t, err)

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 500, appErr.StatusCode)
}

func TestRoll_NilTable(t *testing.T) {
	svc := &RewardService{}

	_, err := svc.Roll(nil, rand.New(rand.NewSource(1)), 0)
	assert.Error(t, err)
}

func TestRoll_ZeroTotalWeight(t *testing.T) {
	svc := &RewardService{}
	table := wheelTable(
		model.RewardEntry{ID: "e1", Weight: 0, MinQuantity: 1, MaxQuantity: 1},
		model.RewardEntry{ID: "e2", Weight: 0, MinQuantity: 1, MaxQuantity: 1},
	)

	_, err := svc.Roll(table, rand.New(rand.NewSource(1)), 0)
	require.Error(t, err)

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 500, appErr.StatusCode)
}

func TestRoll_NegativeWeight(t *testing.T) {
	svc := &RewardService{}
	table := wheelTable(
		model.RewardEntry{ID: "e1", Weight: -5, MinQuantity: 1, MaxQuantity: 1},
		model.RewardEntry{ID: "e2", Weight: 10, MinQuantity: 1, MaxQuantity: 1},
	)

	_, err := svc.Roll(table, rand.New(rand.NewSource(1)), 0)
	assert.Error(t, err)
}

func TestRoll_RelativeWeightDistribution(t *testing.T) {
	svc := &RewardService{}

	// Weights 3:1, nothing near 100. 50-50 would fail; expect ~75/25.
	table := wheelTable(
		model.RewardEntry{ID: "heavy", Order: 0, Weight: 3, MinQuantity: 1, MaxQuantity: 1},
		model.RewardEntry{ID: "light", Order: 1, Weight: 1, MinQuantity: 1, MaxQuantity: 1},
	)

	rng := rand.New(rand.NewSource(42))
	const rolls = 100000
	counts := map[string]int{}
	for i := 0; i < rolls; i++ {
		outcome, err := svc.Roll(table, rng, 0)
		require.NoError(t, err)
		counts[outcome.EntryID]++
	}

	heavyShare := float64(counts["heavy"]) / rolls
	assert.InDelta(t, 0.75, heavyShare, 0.01)
	assert.Equal(t, rolls, counts["heavy"]+counts["light"])
}

func TestRoll_EqualWeightDistribution(t *testing.T) {
	svc := &RewardService{}

	table := wheelTable(
		model.RewardEntry{ID: "a", Order: 0, Weight: 50, MinQuantity: 1, MaxQuantity: 1},
		model.RewardEntry{ID: "b", Order: 1, Weight: 50, MinQuantity: 1, MaxQuantity: 1},
	)

	rng := rand.New(rand.NewSource(99))
	const rolls = 100000
	counts := map[string]int{}
	for i := 0; i < rolls; i++ {
		outcome, err := svc.Roll(table, rng, 0)
		require.NoError(t, err)
		counts[outcome.EntryID]++
	}

	assert.InDelta(t, 0.5, float64(counts["a"])/rolls, 0.01)
	assert.InDelta(t, 0.5, float64(counts["b"])/rolls, 0.01)
}

func TestRoll_QuantityWithinRange(t *testing.T) {
	svc := &RewardService{}
	table := wheelTable(model.RewardEntry{
		ID: "e1", Weight: 1, MinQuantity: 10, MaxQuantity: 20,
	})

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		outcome, err := svc.Roll(table, rng, 0)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, outcome.Quantity, 10)
		assert.LessOrEqual(t, outcome.Quantity, 20)
	}
}

func TestRoll_StreakMultiplierScalesQuantity(t *testing.T) {
	svc := &RewardService{}
	table := wheelTable(model.RewardEntry{
		ID: "e1", Weight: 1, MinQuantity: 10, MaxQuantity: 10,
	})

	rng := rand.New(rand.NewSource(1))

	outcome, err := svc.Roll(table, rng, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, outcome.Quantity)

	outcome, err = svc.Roll(table, rng, 7)
	require.NoError(t, err)
	assert.Equal(t, 15, outcome.Quantity)

	outcome, err = svc.Roll(table, rng, 30)
	require.NoError(t, err)
	assert.Equal(t, 20, outcome.Quantity)
}

func TestRoll_UniqueRollIDs(t *testing.T) {
	svc := &RewardService{}
	table := wheelTable(model.RewardEntry{ID: "e1", Weight: 1, MinQuantity: 1, MaxQuantity: 1})

	rng := rand.New(rand.NewSource(1))
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		outcome, err := svc.Roll(table, rng, 0)
		require.NoError(t, err)
		assert.False(t, seen[outcome.RollID])
		seen[outcome.RollID] = true
	}
}

func TestStreakQuantityMultiplier(t *testing.T) {
	assert.Equal(t, 1.0, streakQuantityMultiplier(0))
	assert.Equal(t, 1.0, streakQuantityMultiplier(6))
	assert.Equal(t, 1.5, streakQuantityMultiplier(7))
	assert.Equal(t, 1.5, streakQuantityMultiplier(29))
	assert.Equal(t, 2.0, streakQuantityMultiplier(30))
}
