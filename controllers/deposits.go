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

// GetDeposits lists deposits. Admins may filter by member; everyone else only
// sees the member linked to their account.
func GetDeposits(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	if CurrentUser == nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"jwt.decode_and_verify"},
		})
	}

	var errs = new(helpers.Errors)
	var deposits []models.Deposit

	params := new(queries.DepositFilters)
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
		return c.Status(200).JSON(make([]entities.DepositEntity, 0))
	}

	if params.Limit == 0 {
		params.Limit = 100
	}

	if params.Page == 0 {
		params.Page = 1
	}

	tx = tx.Offset(params.Page*params.Limit - params.Limit).Limit(params.Limit)
	tx.Find(&deposits)

	deposits_json := make([]entities.DepositEntity, 0)
	for _, deposit := range deposits {
		deposits_json = append(deposits_json, deposit.ToJSON())
	}

	c.Response().Header.Add("page", strconv.FormatInt(int64(params.Page), 10))
	c.Response().Header.Add("per-page", strconv.FormatInt(int64(len(deposits)), 10))

	return c.Status(200).JSON(deposits_json)
}
