package services

import (
	"strings"

	"github.com/alphabatem/common/context"

	"github.com/orydia-app/orydia_api/model"
)

type GenreService struct {
	context.DefaultService

	postgres *PostgresService
}

const GENRE_SVC = "genre_svc"

// genreRule maps keyword fragments onto one genre label. Matching is
// case-insensitive substring over the book's tags and title.
type genreRule struct {
	Genre    string
	Keywords []string
}

// genreTaxonomy is ordered; extracted genres come back in this order
// regardless of which tag matched first.
var genreTaxonomy = []genreRule{
	{Genre: "Fantasy", Keywords: []string{"fantasy", "magic", "dragon", "medieval", "wizard", "quest"}},
	{Genre: "Science Fiction", Keywords: []string{"sci-fi", "science fiction", "space", "robot", "cyber", "dystopi"}},
	{Genre: "Romance", Keywords: []string{"romance", "love", "heart"}},
	{Genre: "Mystery", Keywords: []string{"mystery", "detective", "crime", "thriller"}},
	{Genre: "Horror", Keywords: []string{"horror", "ghost", "haunt", "vampire"}},
	{Genre: "Adventure", Keywords: []string{"adventure", "journey", "expedition", "survival"}},
	{Genre: "History", Keywords: []string{"history", "historical", "war", "ancient"}},
	{Genre: "Biography", Keywords: []string{"biography", "memoir", "autobiograph"}},
	{Genre: "Children", Keywords: []string{"children", "kids", "fairy tale", "bedtime"}},
	{Genre: "Poetry", Keywords: []string{"poetry", "poem", "verse"}},
}

// GenreGeneral is the fallback label when no rule matches.
const GenreGeneral = "General"

func (svc GenreService) Id() string {
	return GENRE_SVC
}

func (svc *GenreService) Start() error {
	svc.postgres = svc.Service(POSTGRES_SVC).(*PostgresService)
	return nil
}

// ExtractGenres derives genre labels from free-form tags plus the title.
// Results follow taxonomy order and contain no duplicates. When nothing
// matches the result is exactly [General].
func ExtractGenres(tags []string, title string) []string {
	haystack := make([]string, 0, len(tags)+1)
	for _, tag := range tags {
		haystack = append(haystack, strings.ToLower(tag))
	}
	if title != "" {
		haystack = append(haystack, strings.ToLower(title))
	}

	var genres []string
	for _, rule := range genreTaxonomy {
		if ruleMatches(rule, haystack) {
			genres = append(genres, rule.Genre)
		}
	}

	if len(genres) == 0 {
		return []string{GenreGeneral}
	}
	return genres
}

func ruleMatches(rule genreRule, haystack []string) bool {
	for _, kw := range rule.Keywords {
		for _, h := range haystack {
			if strings.Contains(h, kw) {
				return true
			}
		}
	}
	return false
}

// ExtractBookGenres runs extraction over a stored book row.
func (svc *GenreService) ExtractBookGenres(book *model.Book) []string {
	return ExtractGenres(book.TagList(), book.Title)
}

// RecordPreferences bumps the user's affinity score for each genre of a book
// they just finished.
func (svc *GenreService) RecordPreferences(userID string, genres []string) error {
	for _, genre := range genres {
		if err := svc.postgres.IncrementGenreScore(userID, genre, 1); err != nil {
			return svc.postgres.HandleError(err)
		}
	}
	return nil
}
