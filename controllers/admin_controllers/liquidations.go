package admin_controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coopetico/coopex/controllers/auth"
	"github.com/coopetico/coopex/controllers/entities"
	"github.com/coopetico/coopex/controllers/helpers"
)

// ExecuteLiquidation liquidates every member in the payload as one
// all-or-nothing transaction. The frontend sends exactly one request per
// confirmed liquidation; nothing here retries on its own.
func ExecuteLiquidation(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	if CurrentUser == nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"jwt.decode_and_verify"},
		})
	}

	if !CurrentUser.IsAdmin() {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"authz.invalid_permission"},
		})
	}

	errs := new(helpers.Errors)
	payload := new(helpers.ExecuteLiquidationParams)

	if err := c.BodyParser(payload); err != nil {
		c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_message_body"},
		})

		return err
	}

	helpers.Validate(payload, errs)

	if errs.Size() > 0 {
		return c.Status(422).JSON(errs)
	}

	liquidations := payload.Execute(errs)

	if errs.Size() > 0 {
		status := 422
		for _, code := range errs.Errors {
			if code == "server.internal_error" {
				status = 500
			}
		}

		return c.Status(status).JSON(errs)
	}

	liquidations_json := make([]entities.LiquidationEntity, 0, len(liquidations))
	for _, liquidation := range liquidations {
		liquidations_json = append(liquidations_json, liquidation.ToJSON())
	}

	return c.Status(201).JSON(liquidations_json)
}
