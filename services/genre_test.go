package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractGenres_FantasyKeywords(t *testing.T) {
	genres := ExtractGenres([]string{"medieval"}, "")
	assert.Equal(t, []string{"Fantasy"}, genres)

	genres = ExtractGenres([]string{"dragon-slayer"}, "")
	assert.Equal(t, []string{"Fantasy"}, genres)
}

func TestExtractGenres_NoMatchFallsBackToGeneral(t *testing.T) {
	genres := ExtractGenres([]string{"foobar"}, "")
	assert.Equal(t, []string{"General"}, genres)

	genres = ExtractGenres(nil, "")
	assert.Equal(t, []string{"General"}, genres)
}

func TestExtractGenres_CaseInsensitive(t *testing.T) {
	genres := ExtractGenres([]string{"FANTASY"}, "")
	assert.Equal(t, []string{"Fantasy"}, genres)
}

func TestExtractGenres_TitleContributes(t *testing.T) {
	genres := ExtractGenres(nil, "The Dragon's Apprentice")
	assert.Equal(t, []string{"Fantasy"}, genres)
}

func TestExtractGenres_TaxonomyOrder(t *testing.T) {
	// Tags listed romance-first still come back in taxonomy order.
	genres := ExtractGenres([]string{"romance", "space", "magic"}, "")
	assert.Equal(t, []string{"Fantasy", "Science Fiction", "Romance"}, genres)
}

func TestExtractGenres_NoDuplicates(t *testing.T) {
	genres := ExtractGenres([]string{"dragon", "wizard", "magic"}, "")
	assert.Equal(t, []string{"Fantasy"}, genres)
}

func TestExtractGenres_GeneralNotMixedWithMatches(t *testing.T) {
	genres := ExtractGenres([]string{"foobar", "detective"}, "")
	assert.Equal(t, []string{"Mystery"}, genres)
}
