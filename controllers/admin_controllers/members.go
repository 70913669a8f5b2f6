package admin_controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/coopetico/coopex/config"
	"github.com/coopetico/coopex/controllers/helpers"
	"github.com/coopetico/coopex/models"
)

func CreateMember(c *fiber.Ctx) error {
	errs := new(helpers.Errors)
	payload := new(helpers.CreateMemberParams)

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

	member := payload.CreateMember(errs)

	if errs.Size() > 0 {
		return c.Status(422).JSON(errs)
	}

	return c.Status(201).JSON(member.ToJSON())
}

func UpdateMember(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"member.invalid_id"},
		})
	}

	var member *models.Member

	result := config.DataBase.First(&member, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(helpers.Errors{
			Errors: []string{"record.not_found"},
		})
	} else if result.Error != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.internal_error"},
		})
	}

	errs := new(helpers.Errors)
	payload := new(helpers.UpdateMemberParams)

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

	member = payload.UpdateMember(member, errs)

	if errs.Size() > 0 {
		return c.Status(422).JSON(errs)
	}

	return c.Status(200).JSON(member.ToJSON())
}
