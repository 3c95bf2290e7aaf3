package server

import (
	"errors"

	"portfolio/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

const (
	defaultPageLimit   = 10
	maxPaginationLimit = 100
)

// pageQuery holds parsed page/limit query parameters.
type pageQuery struct {
	Page  int
	Limit int
}

// parsePageQuery extracts page and limit query parameters. Out of range
// values are clamped rather than rejected.
func parsePageQuery(c *fiber.Ctx) pageQuery {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	limit := c.QueryInt("limit", defaultPageLimit)
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	return pageQuery{Page: page, Limit: limit}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// callerFromCtx returns the authenticated caller stored by AuthRequired,
// or nil on public routes.
func callerFromCtx(c *fiber.Ctx) *models.Caller {
	caller, _ := c.Locals("caller").(*models.Caller)
	return caller
}

// respondError writes the envelope for a failed operation, mapping the
// error's category to an HTTP status.
func respondError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, models.StatusForError(err), err)
}

// respondData writes the success envelope around a single payload.
func respondData(c *fiber.Ctx, status int, message string, data interface{}) error {
	body := fiber.Map{
		"success": true,
		"data":    data,
	}
	if message != "" {
		body["message"] = message
	}
	return c.Status(status).JSON(body)
}

// respondPage writes the success envelope around a list payload with
// pagination and optional meta.
func respondPage(c *fiber.Ctx, data interface{}, pagination *models.Pagination, meta fiber.Map) error {
	body := fiber.Map{
		"success":    true,
		"data":       data,
		"pagination": pagination,
	}
	if meta != nil {
		body["meta"] = meta
	}
	return c.JSON(body)
}
