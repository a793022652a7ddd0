package seeders

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/orydia-app/orydia_api/model"
)

// BookSeeder handles seeding a starter catalog
type BookSeeder struct {
	db *gorm.DB
}

// NewBookSeeder creates a new book seeder
func NewBookSeeder(db *gorm.DB) *BookSeeder {
	return &BookSeeder{db: db}
}

type bookSpec struct {
	Title          string
	Author         string
	Description    string
	Tags           []string
	SourceLanguage string
	IsPremium      bool
	TensensReward  int
	Chapters       int
}

// SeedBooks inserts the starter catalog with chapters, skipping titles that
// already exist
func (s *BookSeeder) SeedBooks() error {
	books := []bookSpec{
		{
			Title:          "The Dragon's Apprentice",
			Author:         "Mira Solenne",
			Description:    "A young scribe is taken in by the last dragon of the northern reaches.",
			Tags:           []string{"fantasy", "dragon", "medieval"},
			SourceLanguage: "en",
			TensensReward:  50,
			Chapters:       12,
		},
		{
			Title:          "Signals from Kepler",
			Author:         "Tomas Reyes",
			Description:    "A relay engineer on a deep-space station decodes a message that should not exist.",
			Tags:           []string{"sci-fi", "space"},
			SourceLanguage: "en",
			TensensReward:  60,
			Chapters:       10,
		},
		{
			Title:          "Le Jardin des Secrets",
			Author:         "Claire Aubert",
			Description:    "Dans un village provençal, un jardin abandonné révèle une histoire d'amour oubliée.",
			Tags:           []string{"romance", "mystery"},
			SourceLanguage: "fr",
			IsPremium:      true,
			TensensReward:  80,
			Chapters:       8,
		},
	}

	seeded := 0
	for _, spec := range books {
		var existing model.Book
		if err := s.db.Where("title = ?", spec.Title).First(&existing).Error; err == nil {
			continue
		}

		tags, _ := json.Marshal(spec.Tags)
		book := model.Book{
			ID:             newID(),
			Title:          spec.Title,
			Author:         spec.Author,
			Description:    spec.Description,
			Tags:           tags,
			SourceLanguage: spec.SourceLanguage,
			IsPremium:      spec.IsPremium,
			TensensReward:  spec.TensensReward,
			IsActive:       true,
			CreatedAt:      time.Now(),
			UpdatedAt:      time.Now(),
		}
		if err := s.db.Create(&book).Error; err != nil {
			log.Printf("Error creating book %s: %v", spec.Title, err)
			return err
		}

		for i := 1; i <= spec.Chapters; i++ {
			chapter := model.Chapter{
				ID:        newID(),
				BookID:    book.ID,
				Title:     fmt.Sprintf("Chapter %d", i),
				Order:     i,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}
			if err := s.db.Create(&chapter).Error; err != nil {
				log.Printf("Error creating chapter %d of %s: %v", i, spec.Title, err)
				return err
			}
		}

		seeded++
	}

	log.Printf("Seeded %d books", seeded)
	return nil
}
