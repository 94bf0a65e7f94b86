package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMovieChangesApply(t *testing.T) {
	year := 1984
	movie := Movie{
		ID:          "abc",
		Title:       "Dune",
		Description: "Desert planet",
		Genre:       "Sci-Fi",
		ReleaseYear: &year,
		Images:      []string{"/uploads/a.png"},
	}

	title := "Dune: Part One"
	newYear := 2021
	now := time.Now().UTC()
	MovieChanges{Title: &title, ReleaseYear: &newYear, UpdatedAt: now}.Apply(&movie)

	assert.Equal(t, "abc", movie.ID)
	assert.Equal(t, "Dune: Part One", movie.Title)
	assert.Equal(t, "Desert planet", movie.Description)
	assert.Equal(t, "Sci-Fi", movie.Genre)
	assert.Equal(t, 2021, *movie.ReleaseYear)
	assert.Equal(t, 1984, year)
	assert.Equal(t, []string{"/uploads/a.png"}, movie.Images)
	assert.Equal(t, now, movie.UpdatedAt)
}

func TestMovieChangesApplyReplacesImages(t *testing.T) {
	movie := Movie{Images: []string{"/uploads/a.png", "/uploads/b.png"}}
	images := []string{"/uploads/c.png"}

	MovieChanges{Images: &images}.Apply(&movie)
	images[0] = "mutated"

	assert.Equal(t, []string{"/uploads/c.png"}, movie.Images)
}
