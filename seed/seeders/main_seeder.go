package seeders

import (
	"log"

	"gorm.io/gorm"
)

// MainSeeder coordinates all seeding operations
type MainSeeder struct {
	db *gorm.DB
}

// NewMainSeeder creates a new main seeder
func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{db: db}
}

// SeedAll runs all seeders in order
func (s *MainSeeder) SeedAll() error {
	log.Println("Starting database seeding...")

	achievementSeeder := NewAchievementSeeder(s.db)
	if err := achievementSeeder.SeedAchievements(); err != nil {
		log.Printf("Achievement seeding failed: %v", err)
		return err
	}

	rewardSeeder := NewRewardSeeder(s.db)
	if err := rewardSeeder.SeedRewardTables(); err != nil {
		log.Printf("Reward table seeding failed: %v", err)
		return err
	}

	bookSeeder := NewBookSeeder(s.db)
	if err := bookSeeder.SeedBooks(); err != nil {
		log.Printf("Book seeding failed: %v", err)
		return err
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

// SeedAchievementsOnly seeds only achievement display rows
func (s *MainSeeder) SeedAchievementsOnly() error {
	return NewAchievementSeeder(s.db).SeedAchievements()
}

// SeedRewardsOnly seeds only the wheel and chest tables
func (s *MainSeeder) SeedRewardsOnly() error {
	return NewRewardSeeder(s.db).SeedRewardTables()
}

// SeedBooksOnly seeds only the starter catalog
func (s *MainSeeder) SeedBooksOnly() error {
	return NewBookSeeder(s.db).SeedBooks()
}
