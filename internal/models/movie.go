package models

import (
	"time"
)

type Movie struct {
	ID          string    `json:"id" example:"6650f1c2e4b0a1b2c3d4e5f6"`
	Title       string    `json:"title" example:"Dune"`
	Description string    `json:"description" example:"Sci-fi epic"`
	Genre       string    `json:"genre,omitempty" example:"Sci-Fi"`
	ReleaseYear *int      `json:"releaseYear,omitempty" example:"2021"`
	Images      []string  `json:"images" example:"/uploads/0b6f1c9e-8d4a-4c1e-9a57-3f2d1e0c9b8a.png"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MovieChanges is a partial update. Nil fields are left untouched.
type MovieChanges struct {
	Title       *string
	Description *string
	Genre       *string
	ReleaseYear *int
	Images      *[]string
	UpdatedAt   time.Time
}

// Apply merges the supplied fields into m.
func (c MovieChanges) Apply(m *Movie) {
	if c.Title != nil {
		m.Title = *c.Title
	}
	if c.Description != nil {
		m.Description = *c.Description
	}
	if c.Genre != nil {
		m.Genre = *c.Genre
	}
	if c.ReleaseYear != nil {
		year := *c.ReleaseYear
		m.ReleaseYear = &year
	}
	if c.Images != nil {
		m.Images = append([]string{}, (*c.Images)...)
	}
	if !c.UpdatedAt.IsZero() {
		m.UpdatedAt = c.UpdatedAt
	}
}
