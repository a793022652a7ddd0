package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveMediaURL_ObjectNameGetsPresigned(t *testing.T) {
	url := resolveMediaURL("covers/book-1.jpg", func(object string) (string, error) {
		return "https://cdn.example.com/" + object + "?sig=abc", nil
	})

	assert.Equal(t, "https://cdn.example.com/covers/book-1.jpg?sig=abc", url)
}

func TestResolveMediaURL_AbsoluteURLPassesThrough(t *testing.T) {
	url := resolveMediaURL("https://example.com/cover.jpg", func(string) (string, error) {
		t.Fatal("absolute URLs must not be presigned")
		return "", nil
	})

	assert.Equal(t, "https://example.com/cover.jpg", url)
}

func TestResolveMediaURL_EmptyAndFailedPresign(t *testing.T) {
	assert.Equal(t, "", resolveMediaURL("", func(string) (string, error) {
		t.Fatal("empty values must not be presigned")
		return "", nil
	}))

	// Presign failure falls back to the stored value rather than erroring a
	// whole catalog response.
	url := resolveMediaURL("covers/book-1.jpg", func(string) (string, error) {
		return "", errors.New("no client")
	})
	assert.Equal(t, "covers/book-1.jpg", url)
}
