package middleware

import (
	"quizdeck/internal/domain"
	"quizdeck/internal/util"

	"github.com/gofiber/fiber/v2"
)

// ValidateIDParam rejects a path parameter that is not a well-formed ID before
// it reaches the store.
func ValidateIDParam(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params(name)
		if !util.IsULID(id) {
			return domain.ValidationErrors{
				domain.NewInvalidFormatError(name, id),
			}
		}
		return c.Next()
	}
}
