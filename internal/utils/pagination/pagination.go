package pagination

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type Pagination struct {
	Limit int
	Count int
}

// ParseFromRequest reads the limit query parameter. A missing or malformed
// value yields zero, which callers treat as their default.
func ParseFromRequest(c *fiber.Ctx) Pagination {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		limit = 0
	}
	return Pagination{Limit: limit}
}

// Response creates a standardized list response
func Response(p Pagination, data interface{}) fiber.Map {
	return fiber.Map{
		"data": data,
		"meta": fiber.Map{
			"limit": p.Limit,
			"count": p.Count,
		},
	}
}
