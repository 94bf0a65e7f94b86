package handlers

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strings"

	"movie-catalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

const imagesField = "images"

// MovieRequest is bound from JSON, urlencoded or multipart bodies. Nil fields
// were not sent. Course is accepted as another name for Title.
type MovieRequest struct {
	Title       *string      `json:"title" form:"title"`
	Course      *string      `json:"course" form:"course"`
	Description *string      `json:"description" form:"description"`
	Genre       *string      `json:"genre" form:"genre"`
	ReleaseYear *json.Number `json:"releaseYear" form:"releaseYear"`
}

// parseMovieRequest binds the scalar fields and collects the image files of a
// multipart body.
func parseMovieRequest(c *fiber.Ctx) (services.MovieInput, []*multipart.FileHeader, error) {
	var req MovieRequest
	if len(c.Request().Header.ContentType()) > 0 && len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return services.MovieInput{}, nil, &services.ValidationError{Message: "invalid request body"}
		}
	}

	var files []*multipart.FileHeader
	if strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return services.MovieInput{}, nil, &services.ValidationError{Message: "invalid multipart form"}
		}
		files = form.File[imagesField]
	}

	input, err := req.toInput()
	if err != nil {
		return services.MovieInput{}, nil, err
	}
	return input, files, nil
}

func (r *MovieRequest) toInput() (services.MovieInput, error) {
	input := services.MovieInput{
		Title:       r.Title,
		Description: r.Description,
		Genre:       r.Genre,
	}
	if input.Title == nil {
		input.Title = r.Course
	}

	// An empty year is treated as not sent.
	if r.ReleaseYear != nil && strings.TrimSpace(r.ReleaseYear.String()) != "" {
		year, err := json.Number(strings.TrimSpace(r.ReleaseYear.String())).Int64()
		if err != nil {
			return input, &services.ValidationError{
				Field:   "releaseYear",
				Message: fmt.Sprintf("must be an integer, got %q", r.ReleaseYear.String()),
			}
		}
		y := int(year)
		input.ReleaseYear = &y
	}

	return input, nil
}
