package seeders

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/orydia-app/orydia_api/model"
	"github.com/orydia-app/orydia_api/shared"
)

// RewardSeeder handles seeding the wheel and chest tables
type RewardSeeder struct {
	db *gorm.DB
}

// NewRewardSeeder creates a new reward seeder
func NewRewardSeeder(db *gorm.DB) *RewardSeeder {
	return &RewardSeeder{db: db}
}

type entrySpec struct {
	Label       string
	Currency    string
	Weight      int
	MinQuantity int
	MaxQuantity int
}

// SeedRewardTables inserts the daily wheel and the standard chest, skipping
// tables that already exist. Weights sum to 100 here so the wheel chances
// read as percentages, but the roller treats them as relative.
func (s *RewardSeeder) SeedRewardTables() error {
	tables := map[string]struct {
		Kind    string
		Entries []entrySpec
	}{
		"daily_wheel": {
			Kind: shared.RewardKindWheel,
			Entries: []entrySpec{
				{Label: "Small pile of Tensens", Currency: shared.CurrencyTensens, Weight: 40, MinQuantity: 10, MaxQuantity: 25},
				{Label: "Handful of Tensens", Currency: shared.CurrencyTensens, Weight: 30, MinQuantity: 25, MaxQuantity: 50},
				{Label: "Bag of Tensens", Currency: shared.CurrencyTensens, Weight: 20, MinQuantity: 50, MaxQuantity: 100},
				{Label: "A few Orydors", Currency: shared.CurrencyOrydors, Weight: 8, MinQuantity: 1, MaxQuantity: 3},
				{Label: "Orydor jackpot", Currency: shared.CurrencyOrydors, Weight: 2, MinQuantity: 5, MaxQuantity: 10},
			},
		},
		"standard_chest": {
			Kind: shared.RewardKindChest,
			Entries: []entrySpec{
				{Label: "Tensens stash", Currency: shared.CurrencyTensens, Weight: 60, MinQuantity: 50, MaxQuantity: 150},
				{Label: "Tensens hoard", Currency: shared.CurrencyTensens, Weight: 30, MinQuantity: 150, MaxQuantity: 300},
				{Label: "Orydor cache", Currency: shared.CurrencyOrydors, Weight: 10, MinQuantity: 3, MaxQuantity: 8},
			},
		},
	}

	for name, spec := range tables {
		var existing model.RewardTable
		if err := s.db.Where("name = ?", name).First(&existing).Error; err == nil {
			continue
		}

		table := model.RewardTable{
			ID:        newID(),
			Name:      name,
			Kind:      spec.Kind,
			IsActive:  true,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := s.db.Create(&table).Error; err != nil {
			log.Printf("Error creating reward table %s: %v", name, err)
			return err
		}

		for i, e := range spec.Entries {
			entry := model.RewardEntry{
				ID:          newID(),
				TableID:     table.ID,
				Order:       i,
				Label:       e.Label,
				Currency:    e.Currency,
				Weight:      e.Weight,
				MinQuantity: e.MinQuantity,
				MaxQuantity: e.MaxQuantity,
				CreatedAt:   time.Now(),
			}
			if err := s.db.Create(&entry).Error; err != nil {
				log.Printf("Error creating reward entry %s/%s: %v", name, e.Label, err)
				return err
			}
		}

		log.Printf("Seeded reward table %s with %d entries", name, len(spec.Entries))
	}

	return nil
}

func newID() string {
	id, _ := uuid.NewV7()
	return id.String()
}
