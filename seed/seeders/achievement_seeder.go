package seeders

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/orydia-app/orydia_api/model"
)

// AchievementSeeder handles seeding achievement display rows. The ids must
// match the definition registry in the achievement service.
type AchievementSeeder struct {
	db *gorm.DB
}

// NewAchievementSeeder creates a new achievement seeder
func NewAchievementSeeder(db *gorm.DB) *AchievementSeeder {
	return &AchievementSeeder{db: db}
}

// SeedAchievements inserts the achievement rows, skipping ones that exist
func (s *AchievementSeeder) SeedAchievements() error {
	achievements := []model.Achievement{
		{ID: "first_book", Name: "First Steps", Description: "Finish your first book", Category: "reading", BadgeURL: "/badges/first_book.png"},
		{ID: "bookworm", Name: "Bookworm", Description: "Finish 5 books", Category: "reading", BadgeURL: "/badges/bookworm.png"},
		{ID: "librarian", Name: "Librarian", Description: "Finish 25 books", Category: "reading", BadgeURL: "/badges/librarian.png"},
		{ID: "scholar", Name: "Scholar", Description: "Finish 100 books", Category: "reading", BadgeURL: "/badges/scholar.png"},
		{ID: "pocket_money", Name: "Pocket Money", Description: "Earn 100 Tensens", Category: "currency", BadgeURL: "/badges/pocket_money.png"},
		{ID: "treasurer", Name: "Treasurer", Description: "Earn 1000 Tensens", Category: "currency", BadgeURL: "/badges/treasurer.png"},
		{ID: "tensens_tycoon", Name: "Tensens Tycoon", Description: "Earn 10000 Tensens", Category: "currency", BadgeURL: "/badges/tycoon.png"},
		{ID: "premium_member", Name: "Premium Member", Description: "Become a premium member", Category: "premium", BadgeURL: "/badges/premium.png"},
		{ID: "quick_learner", Name: "Quick Learner", Description: "Complete the tutorial", Category: "tutorial", BadgeURL: "/badges/tutorial.png"},
	}

	seeded := 0
	for _, achievement := range achievements {
		var existing model.Achievement
		if err := s.db.Where("id = ?", achievement.ID).First(&existing).Error; err == nil {
			continue
		}

		achievement.IsActive = true
		achievement.CreatedAt = time.Now()
		achievement.UpdatedAt = time.Now()

		if err := s.db.Create(&achievement).Error; err != nil {
			log.Printf("Error creating achievement %s: %v", achievement.ID, err)
			return err
		}
		seeded++
	}

	log.Printf("Seeded %d achievements", seeded)
	return nil
}
