package handlers

import (
	"strconv"
	"strings"
	"time"

	"gudang/internal/apperror"
	"gudang/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// idParam reads a positive integer route parameter.
func idParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.Validation("%s must be a positive integer", name)
	}
	return uint(id), nil
}

// uintQuery reads an optional positive integer query parameter. Absent yields 0.
func uintQuery(c *fiber.Ctx, name string) (uint, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apperror.Validation("%s must be a positive integer", name)
	}
	return uint(v), nil
}

func pagination(c *fiber.Ctx) models.Pagination {
	return models.Pagination{
		Page: c.QueryInt("page", 1),
		Size: c.QueryInt("size", models.DefaultPageSize),
	}.Normalize()
}

func keyword(c *fiber.Ctx) string {
	return strings.TrimSpace(c.Query("keyword"))
}

// timeQuery reads an optional date given as YYYY-MM-DD or RFC 3339.
func timeQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{dateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, apperror.Validation("%s must be a date (YYYY-MM-DD)", name)
}

// endTimeQuery reads an optional exclusive upper bound. A date-only value
// covers that whole day, so it becomes the following midnight.
func endTimeQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	t, err := timeQuery(c, name)
	if err != nil || t == nil {
		return t, err
	}
	if _, err := time.Parse(dateLayout, raw); err == nil {
		next := t.AddDate(0, 0, 1)
		return &next, nil
	}
	return t, nil
}

// requiredTime is timeQuery for parameters that must be present.
func requiredTime(c *fiber.Ctx, name string) (time.Time, error) {
	t, err := timeQuery(c, name)
	if err != nil {
		return time.Time{}, err
	}
	if t == nil {
		return time.Time{}, apperror.Validation("%s is required", name)
	}
	return *t, nil
}

func decimalQuery(c *fiber.Ctx, name string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, apperror.Validation("%s must be a number", name)
	}
	return &d, nil
}

// parseBody decodes the JSON request body into dest.
func parseBody(c *fiber.Ctx, dest any) error {
	if err := c.BodyParser(dest); err != nil {
		return apperror.Validation("Invalid request body")
	}
	return nil
}
