package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/coopetico/coopex/config"
	"github.com/coopetico/coopex/controllers/auth"
	"github.com/coopetico/coopex/controllers/entities"
	"github.com/coopetico/coopex/controllers/helpers"
	"github.com/coopetico/coopex/controllers/queries"
	"github.com/coopetico/coopex/models"
	"github.com/coopetico/coopex/types"
)

// SubmitWithdrawal records a withdrawal request for the member linked to the
// current user. The account is only debited when the board pays the request.
func SubmitWithdrawal(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	if CurrentUser == nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"jwt.decode_and_verify"},
		})
	}

	if !CurrentUser.MemberID.Valid {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"withdrawal.member_not_linked"},
		})
	}

	errs := new(helpers.Errors)
	payload := new(helpers.SubmitWithdrawalParams)

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

	withdrawal := payload.Submit(CurrentUser.MemberID.Int64, errs)

	if errs.Size() > 0 {
		return c.Status(422).JSON(errs)
	}

	return c.Status(201).JSON(withdrawal.ToJSON())
}

// GetWithdrawals lists withdrawal requests. Admins see every member and may
// filter; everyone else only the member linked to their account.
func GetWithdrawals(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	if CurrentUser == nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"jwt.decode_and_verify"},
		})
	}

	var errs = new(helpers.Errors)
	var withdrawals []models.Withdrawal

	params := new(queries.WithdrawalFilters)
	if err := c.QueryParser(params); err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_query"},
		})
	}

	helpers.Validate(params, errs)

	if errs.Size() > 0 {
		return c.Status(422).JSON(errs)
	}

	if len(params.OrderBy) == 0 {
		params.OrderBy = types.OrderByDesc
	}

	tx := config.DataBase.Order("id " + params.OrderBy)

	if CurrentUser.IsAdmin() {
		if params.MemberID > 0 {
			tx = tx.Where("member_id = ?", params.MemberID)
		}
	} else if CurrentUser.MemberID.Valid {
		tx = tx.Where("member_id = ?", CurrentUser.MemberID.Int64)
	} else {
		return c.Status(200).JSON(make([]entities.WithdrawalEntity, 0))
	}

	if len(params.State) > 0 {
		state := models.WithdrawPending

		switch params.State {
		case "pending":
			state = models.WithdrawPending
		case "approved":
			state = models.WithdrawApproved
		case "paid":
			state = models.WithdrawPaid
		case "rejected":
			state = models.WithdrawRejected
		default:
			return c.Status(422).JSON(helpers.Errors{
				Errors: []string{"withdrawal.invalid_state"},
			})
		}

		tx = tx.Where("state = ?", state)
	}

	if params.Limit == 0 {
		params.Limit = 100
	}

	if params.Page == 0 {
		params.Page = 1
	}

	tx = tx.Offset(params.Page*params.Limit - params.Limit).Limit(params.Limit)
	tx.Find(&withdrawals)

	withdrawals_json := make([]entities.WithdrawalEntity, 0)
	for _, withdrawal := range withdrawals {
		withdrawals_json = append(withdrawals_json, withdrawal.ToJSON())
	}

	c.Response().Header.Add("page", strconv.FormatInt(int64(params.Page), 10))
	c.Response().Header.Add("per-page", strconv.FormatInt(int64(len(withdrawals)), 10))

	return c.Status(200).JSON(withdrawals_json)
}
