package handlers

import (
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultPageLimit = 6
	maxPageLimit     = 100
	// maxPage keeps (page-1)*limit inside an int32 offset.
	maxPage = math.MaxInt32 / maxPageLimit
)

// pagination reads ?page= and ?limit=, falling back to the first page of
// defaultPageLimit items on missing or invalid values. Oversized values are
// clamped to maxPageLimit and maxPage.
func pagination(c *fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}

	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(defaultPageLimit)))
	if err != nil || limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

// viewerID returns the authenticated user id, or "" for anonymous requests.
func viewerID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
