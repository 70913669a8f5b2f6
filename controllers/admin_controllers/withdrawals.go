package admin_controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/coopetico/coopex/config"
	"github.com/coopetico/coopex/controllers/helpers"
	"github.com/coopetico/coopex/models"
)

func findWithdrawal(c *fiber.Ctx) (*models.Withdrawal, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return nil, c.Status(422).JSON(helpers.Errors{
			Errors: []string{"withdrawal.invalid_id"},
		})
	}

	var withdrawal *models.Withdrawal

	result := config.DataBase.First(&withdrawal, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, c.Status(404).JSON(helpers.Errors{
			Errors: []string{"record.not_found"},
		})
	} else if result.Error != nil {
		return nil, c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.internal_error"},
		})
	}

	return withdrawal, nil
}

func ApproveWithdrawal(c *fiber.Ctx) error {
	withdrawal, err := findWithdrawal(c)
	if withdrawal == nil {
		return err
	}

	if err := withdrawal.Approve(); err != nil {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{err.Error()},
		})
	}

	return c.Status(200).JSON(withdrawal.ToJSON())
}

func RejectWithdrawal(c *fiber.Ctx) error {
	withdrawal, err := findWithdrawal(c)
	if withdrawal == nil {
		return err
	}

	if err := withdrawal.Reject(); err != nil {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{err.Error()},
		})
	}

	return c.Status(200).JSON(withdrawal.ToJSON())
}

// PayWithdrawal debits the account and closes the request. The insufficient
// balance case is rechecked under lock, so an approved request can still be
// rejected here if funds moved in between.
func PayWithdrawal(c *fiber.Ctx) error {
	withdrawal, err := findWithdrawal(c)
	if withdrawal == nil {
		return err
	}

	if err := withdrawal.Pay(); err != nil {
		switch err {
		case models.ErrWithdrawInvalidState, models.ErrWithdrawInsufficientBalance:
			return c.Status(422).JSON(helpers.Errors{
				Errors: []string{err.Error()},
			})
		default:
			config.Logger.Errorf("Withdrawal payout failed: %v", err)

			return c.Status(500).JSON(helpers.Errors{
				Errors: []string{"server.internal_error"},
			})
		}
	}

	return c.Status(200).JSON(withdrawal.ToJSON())
}
