package api

import "github.com/gofiber/fiber/v2"

// Success writes the {success, data} envelope the dashboard frontend expects.
func Success(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// Fail writes an error envelope.
func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

// Page is the payload of paginated list endpoints.
type Page struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
	Page  int64       `json:"page"`
	Limit int64       `json:"limit"`
}

// Pagination reads page and limit query parameters, clamping limit to 100.
func Pagination(c *fiber.Ctx) (page, limit int64) {
	page = int64(c.QueryInt("page", 1))
	limit = int64(c.QueryInt("limit", 20))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
