package utils

import "github.com/gofiber/fiber/v2"

// ErrorBody is the JSON envelope returned for failed requests.
type ErrorBody struct {
	Status  string `json:"status" example:"error"`
	Code    int    `json:"code" example:"404"`
	Message string `json:"message" example:"Movie not found"`
}

// JSONResponse sends data as the bare response body.
func JSONResponse(c *fiber.Ctx, code int, data interface{}) error {
	return c.Status(code).JSON(data)
}

// ErrorResponse sends an error response
func ErrorResponse(c *fiber.Ctx, code int, message string) error {
	status := "error"
	if code >= 500 {
		status = "fail"
	}
	return c.Status(code).JSON(ErrorBody{
		Status:  status,
		Code:    code,
		Message: message,
	})
}
