package controllers

import (
	"encoding/base64"
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/coopetico/coopex/config"
	"github.com/coopetico/coopex/controllers/auth"
	"github.com/coopetico/coopex/controllers/entities"
	"github.com/coopetico/coopex/controllers/helpers"
	"github.com/coopetico/coopex/controllers/queries"
	"github.com/coopetico/coopex/models"
	"github.com/coopetico/coopex/types"
)

func GetMembers(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	if CurrentUser == nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"jwt.decode_and_verify"},
		})
	}

	var errs = new(helpers.Errors)
	var members []models.Member

	params := new(queries.MemberFilters)
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
		params.OrderBy = types.OrderByAsc
	}

	tx := config.DataBase.Order("id " + params.OrderBy)

	if len(params.Q) > 0 {
		q := "%" + params.Q + "%"
		tx = tx.Where("full_name ILIKE ? OR code ILIKE ?", q, q)
	}

	if len(params.Active) > 0 {
		tx = tx.Where("active = ?", params.Active == "true")
	}

	if params.Limit == 0 {
		params.Limit = 100
	}

	if params.Page == 0 {
		params.Page = 1
	}

	tx = tx.Offset(params.Page*params.Limit - params.Limit).Limit(params.Limit)
	tx.Find(&members)

	members_json := make([]entities.MemberEntity, 0)
	for _, member := range members {
		members_json = append(members_json, member.ToJSON())
	}

	c.Response().Header.Add("page", strconv.FormatInt(int64(params.Page), 10))
	c.Response().Header.Add("per-page", strconv.FormatInt(int64(len(members)), 10))

	return c.Status(200).JSON(members_json)
}

func GetMember(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	if CurrentUser == nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"jwt.decode_and_verify"},
		})
	}

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

	return c.Status(200).JSON(member.ToJSON())
}

// GetMemberAccounts returns the member's balances, one row per account kind.
// Kinds with no account row yet report a zero balance.
func GetMemberAccounts(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	if CurrentUser == nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"jwt.decode_and_verify"},
		})
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"member.invalid_id"},
		})
	}

	if !CurrentUser.CanAccessMember(int64(id)) {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"authz.invalid_permission"},
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

	balances := map[types.AccountKind]decimal.Decimal{}
	for _, account := range member.Accounts() {
		balances[account.Kind] = account.Balance
	}

	accounts_json := make([]entities.AccountEntity, 0, 3)
	for _, kind := range types.AccountKinds() {
		balance, found := balances[kind]
		if !found {
			balance = decimal.Zero
		}

		accounts_json = append(accounts_json, entities.AccountEntity{
			Kind:    kind,
			Balance: balance,
		})
	}

	return c.Status(200).JSON(accounts_json)
}

// CardClaims is the payload of the signed token printed as the QR code on a
// member's ID card.
type CardClaims struct {
	MemberID int64  `json:"member_id"`
	Code     string `json:"code"`
	FullName string `json:"full_name"`

	jwt.StandardClaims
}

// GetMemberCard issues a signed card token for the member. The frontend
// encodes the token as the QR on the printed ID card; scanners verify it
// against the cooperative's public key.
func GetMemberCard(c *fiber.Ctx) error {
	CurrentUser := auth.GetCurrentUser(c)

	if CurrentUser == nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"jwt.decode_and_verify"},
		})
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"member.invalid_id"},
		})
	}

	if !CurrentUser.CanAccessMember(int64(id)) {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"authz.invalid_permission"},
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

	if !member.Active {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"member.inactive"},
		})
	}

	private_key_pem, err := base64.StdEncoding.DecodeString(os.Getenv("JWT_PRIVATE_KEY"))
	if err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.internal_error"},
		})
	}

	private_key, err := jwt.ParseRSAPrivateKeyFromPEM(private_key_pem)
	if err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.internal_error"},
		})
	}

	now := time.Now()
	claims := CardClaims{
		MemberID: member.ID,
		Code:     member.Code,
		FullName: member.FullName,
		StandardClaims: jwt.StandardClaims{
			Subject:   member.Code,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.AddDate(1, 0, 0).Unix(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(private_key)
	if err != nil {
		config.Logger.Errorf("Failed to sign member card: %v", err)

		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.internal_error"},
		})
	}

	return c.Status(200).JSON(entities.MemberCardEntity{
		MemberID: member.ID,
		Code:     member.Code,
		FullName: member.FullName,
		Token:    token,
		IssuedAt: now,
	})
}
