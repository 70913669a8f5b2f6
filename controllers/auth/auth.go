package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coopetico/coopex/models"
)

// GetCurrentUser returns the user the Authenticate middleware resolved for
// this request, nil when the request never went through it.
func GetCurrentUser(c *fiber.Ctx) *models.User {
	CurrentUser, ok := c.Locals("CurrentUser").(*models.User)
	if !ok {
		return nil
	}

	return CurrentUser
}
