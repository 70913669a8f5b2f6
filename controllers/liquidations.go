package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/coopetico/coopex/config"
	"github.com/coopetico/coopex/controllers/auth"
	"github.com/coopetico/coopex/controllers/entities"
	"github.com/coopetico/coopex/controllers/helpers"
	"github.com/coopetico/coopex/controllers/queries"
	"github.com/coopetico/coopex/models"
	"github.com/coopetico/coopex/receipts"
	"github.com/coopetico/coopex/types"
)

// GetLiquidationPreview returns the balances a liquidation of the member
// would act on right now. Either the full set of balances or an error, never
// a partial preview.
func GetLiquidationPreview(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	if CurrentUser == nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"jwt.decode_and_verify"},
		})
	}

	member_id, err := c.ParamsInt("member_id")
	if err != nil || member_id <= 0 {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"liquidation.invalid_member_id"},
		})
	}

	if !CurrentUser.CanAccessMember(int64(member_id)) {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"authz.invalid_permission"},
		})
	}

	preview, err := models.PreviewLiquidation(int64(member_id))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrMemberNotFound):
			return c.Status(404).JSON(helpers.Errors{
				Errors: []string{err.Error()},
			})
		case errors.Is(err, models.ErrMemberInactive):
			return c.Status(422).JSON(helpers.Errors{
				Errors: []string{err.Error()},
			})
		default:
			config.Logger.Errorf("Liquidation preview failed: %v", err)

			return c.Status(500).JSON(helpers.Errors{
				Errors: []string{"server.internal_error"},
			})
		}
	}

	return c.Status(200).JSON(preview)
}

func GetLiquidationHistory(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	if CurrentUser == nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"jwt.decode_and_verify"},
		})
	}

	var errs = new(helpers.Errors)
	var liquidations []models.Liquidation

	params := new(queries.LiquidationFilters)
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
		return c.Status(200).JSON(make([]entities.LiquidationEntity, 0))
	}

	if len(params.Type) > 0 {
		tx = tx.Where("type = ?", params.Type)
	}

	if params.TimeFrom > 0 {
		time_from := time.Unix(params.TimeFrom, 0)
		tx = tx.Where("created_at >= ?", time_from)
	}

	if params.TimeTo > 0 {
		time_to := time.Unix(params.TimeTo, 0)
		tx = tx.Where("created_at < ?", time_to)
	}

	if params.Limit == 0 {
		params.Limit = 100
	}

	if params.Page == 0 {
		params.Page = 1
	}

	tx = tx.Offset(params.Page*params.Limit - params.Limit).Limit(params.Limit)
	tx.Find(&liquidations)

	liquidations_json := make([]entities.LiquidationEntity, 0)
	for _, liquidation := range liquidations {
		liquidations_json = append(liquidations_json, liquidation.ToJSON())
	}

	c.Response().Header.Add("page", strconv.FormatInt(int64(params.Page), 10))
	c.Response().Header.Add("per-page", strconv.FormatInt(int64(len(liquidations)), 10))

	return c.Status(200).JSON(liquidations_json)
}

// GetLiquidationStats serves the aggregate liquidation counters. The answer
// is cached for five minutes and invalidated on every execute.
func GetLiquidationStats(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	if CurrentUser == nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"jwt.decode_and_verify"},
		})
	}

	stats := new(entities.LiquidationStats)

	if config.Redis != nil {
		if err := config.Redis.GetKey(models.StatsCacheKey, stats); err == nil {
			return c.Status(200).JSON(stats)
		}
	}

	stats = models.LiquidationStats(time.Now())

	if config.Redis != nil {
		config.Redis.SetKey(models.StatsCacheKey, stats, 5*time.Minute)
	}

	return c.Status(200).JSON(stats)
}

// GetPendingLiquidations lists the members due for a periodic liquidation.
// The nightly eligibility job keeps the cached copy fresh; a cache miss falls
// back to a live scan.
func GetPendingLiquidations(c *fiber.Ctx) error {
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

	pending := make([]entities.PendingMemberEntity, 0)

	if config.Redis != nil {
		if err := config.Redis.GetKey(models.PendingCacheKey, &pending); err == nil {
			return c.Status(200).JSON(pending)
		}
	}

	pending = models.PendingMemberRows(time.Now())

	return c.Status(200).JSON(pending)
}

// GetLiquidationReceipt renders the printable receipt of an executed
// liquidation as plain text.
func GetLiquidationReceipt(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	if CurrentUser == nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"jwt.decode_and_verify"},
		})
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"liquidation.invalid_id"},
		})
	}

	var liquidation *models.Liquidation

	result := config.DataBase.First(&liquidation, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return c.Status(404).JSON(helpers.Errors{
			Errors: []string{"record.not_found"},
		})
	} else if result.Error != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.internal_error"},
		})
	}

	if !CurrentUser.CanAccessMember(liquidation.MemberID) {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"authz.invalid_permission"},
		})
	}

	member := liquidation.Member()

	data := receipts.FromLiquidation(liquidation.ToJSON(), member.Code, member.FullName)
	data.CooperativeName = config.Coop.Cooperative.Name
	data.CurrencySymbol = config.Coop.Cooperative.CurrencySymbol

	c.Set("Content-Type", "text/plain; charset=utf-8")

	return c.Status(200).SendString(receipts.Render(data))
}
