package admin_controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coopetico/coopex/controllers/helpers"
)

// CreateDeposit records a savings or contributions entry and credits the
// member's account in one transaction.
func CreateDeposit(c *fiber.Ctx) error {
	errs := new(helpers.Errors)
	payload := new(helpers.CreateDepositParams)

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

	deposit := payload.CreateDeposit(errs)

	if errs.Size() > 0 {
		status := 422
		for _, code := range errs.Errors {
			if code == "deposit.member_not_found" {
				status = 404
			}
			if code == "server.internal_error" {
				status = 500
			}
		}

		return c.Status(status).JSON(errs)
	}

	return c.Status(201).JSON(deposit.ToJSON())
}
