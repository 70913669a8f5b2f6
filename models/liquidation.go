package models

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/coopetico/coopex/config"
	"github.com/coopetico/coopex/controllers/entities"
	"github.com/coopetico/coopex/mq_client"
	"github.com/coopetico/coopex/types"
)

var (
	ErrMemberNotFound = errors.New("liquidation.member_not_found")
	ErrMemberInactive = errors.New("liquidation.member_inactive")
	ErrInvalidType    = errors.New("liquidation.invalid_type")
)

type Liquidation struct {
	ID              int64                 `json:"id" gorm:"primaryKey"`
	UUID            uuid.UUID             `json:"uuid" gorm:"default:gen_random_uuid()"`
	MemberID        int64                 `json:"member_id"`
	Type            types.LiquidationType `json:"type"`
	MemberContinues bool                  `json:"member_continues"`
	Savings         decimal.Decimal       `json:"savings"`
	Contributions   decimal.Decimal       `json:"contributions"`
	Surplus         decimal.Decimal       `json:"surplus"`
	Total           decimal.Decimal       `json:"total"`
	Notes           string                `json:"notes"`
	ReceiptNumber   string                `json:"receipt_number"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

func (l *Liquidation) Member() *Member {
	var member *Member

	config.DataBase.First(&member, l.MemberID)

	return member
}

func (l *Liquidation) ToJSON() entities.LiquidationEntity {
	return entities.LiquidationEntity{
		ID:              l.ID,
		UUID:            l.UUID,
		MemberID:        l.MemberID,
		Type:            l.Type,
		MemberContinues: l.MemberContinues,
		Savings:         l.Savings,
		Contributions:   l.Contributions,
		Surplus:         l.Surplus,
		Total:           l.Total,
		Notes:           l.Notes,
		ReceiptNumber:   l.ReceiptNumber,
		CreatedAt:       l.CreatedAt,
	}
}

// PreviewLiquidation returns the balances a liquidation of the member would
// act on right now. Either the full set of balances or an error, never a
// partial preview.
func PreviewLiquidation(member_id int64) (*entities.LiquidationPreview, error) {
	var member *Member

	result := config.DataBase.First(&member, "id = ?", member_id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrMemberNotFound
	} else if result.Error != nil {
		return nil, result.Error
	}

	if !member.Active {
		return nil, ErrMemberInactive
	}

	preview := &entities.LiquidationPreview{
		MemberID:      member.ID,
		Savings:       decimal.Zero,
		Contributions: decimal.Zero,
		Surplus:       decimal.Zero,
	}

	for _, account := range member.Accounts() {
		switch account.Kind {
		case types.AccountSavings:
			preview.Savings = account.Balance
		case types.AccountContributions:
			preview.Contributions = account.Balance
		case types.AccountSurplus:
			preview.Surplus = account.Balance
		}
	}

	preview.Total = preview.Savings.Add(preview.Contributions).Add(preview.Surplus)

	return preview, nil
}

// ExecuteLiquidations liquidates every member in member_ids inside one
// database transaction: balances are zeroed, ledger operations and a receipt
// are recorded, and the member is either stamped with a new last-liquidation
// date (periodic) or deactivated together with its users (exit). The whole
// batch commits or none of it does.
func ExecuteLiquidations(member_ids []int64, liquidation_type types.LiquidationType, notes string) ([]*Liquidation, error) {
	if !liquidation_type.Valid() {
		return nil, ErrInvalidType
	}

	// Dedupe and order ids so account rows are always locked in the same
	// order, whatever order the caller sent.
	set := treeset.NewWith(utils.Int64Comparator)
	for _, id := range member_ids {
		set.Add(id)
	}

	ids := make([]int64, 0, set.Size())
	for _, v := range set.Values() {
		ids = append(ids, v.(int64))
	}

	liquidations := make([]*Liquidation, 0, len(ids))

	err := config.DataBase.Transaction(func(tx *gorm.DB) error {
		for _, id := range ids {
			liquidation, err := liquidateMember(tx, id, liquidation_type, notes)
			if err != nil {
				return err
			}

			liquidations = append(liquidations, liquidation)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	for _, liquidation := range liquidations {
		liquidation.TriggerEvent()
	}

	if config.Redis != nil {
		config.Redis.DeleteKey(StatsCacheKey)
		config.Redis.DeleteKey(PendingCacheKey)
	}

	return liquidations, nil
}

func liquidateMember(tx *gorm.DB, member_id int64, liquidation_type types.LiquidationType, notes string) (*Liquidation, error) {
	var member *Member

	result := tx.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "members"}}).Where("id = ?", member_id).First(&member)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrMemberNotFound
	} else if result.Error != nil {
		return nil, result.Error
	}

	if !member.Active {
		return nil, ErrMemberInactive
	}

	account_tx := tx.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "accounts"}})

	var accounts []*Account
	if err := account_tx.Where("member_id = ?", member_id).Order("kind asc").Find(&accounts).Error; err != nil {
		return nil, err
	}

	amounts := map[types.AccountKind]decimal.Decimal{
		types.AccountSavings:       decimal.Zero,
		types.AccountContributions: decimal.Zero,
		types.AccountSurplus:       decimal.Zero,
	}

	for _, account := range accounts {
		amount, err := account.ZeroFunds(tx)
		if err != nil {
			return nil, err
		}

		amounts[account.Kind] = amount
	}

	total := amounts[types.AccountSavings].Add(amounts[types.AccountContributions]).Add(amounts[types.AccountSurplus])

	liquidation := &Liquidation{
		UUID:            uuid.New(),
		MemberID:        member.ID,
		Type:            liquidation_type,
		MemberContinues: liquidation_type.Continues(),
		Savings:         amounts[types.AccountSavings],
		Contributions:   amounts[types.AccountContributions],
		Surplus:         amounts[types.AccountSurplus],
		Total:           total,
		Notes:           notes,
	}

	if err := tx.Create(liquidation).Error; err != nil {
		return nil, err
	}

	reference := Reference{ID: liquidation.ID, Type: "Liquidation"}
	for _, kind := range types.AccountKinds() {
		amount := amounts[kind]
		if !amount.IsPositive() {
			continue
		}

		if err := OperationDebit(tx, amount, kind, reference, member.ID); err != nil {
			return nil, err
		}
	}

	receipt, err := CreateReceipt(tx, types.ReceiptLiquidation, liquidation.ID, member.ID, total)
	if err != nil {
		return nil, err
	}

	liquidation.ReceiptNumber = receipt.Number
	if err := tx.Save(liquidation).Error; err != nil {
		return nil, err
	}

	if liquidation_type.Continues() {
		member.LastLiquidatedAt = null.TimeFrom(time.Now())
	} else {
		member.Active = false
		if err := tx.Model(&User{}).Where("member_id = ?", member.ID).Update("active", false).Error; err != nil {
			return nil, err
		}
	}

	if err := tx.Save(member).Error; err != nil {
		return nil, err
	}

	return liquidation, nil
}

func (l *Liquidation) TriggerEvent() {
	member := l.Member()
	payload_message, _ := json.Marshal(l.ToJSON())

	mq_client.EnqueueEvent("private", member.Code, "liquidation", payload_message)

	if config.InfluxDB != nil {
		config.InfluxDB.NewPoint("liquidations",
			map[string]string{"type": string(l.Type)},
			map[string]interface{}{
				"member_id": l.MemberID,
				"total":     l.Total.InexactFloat64(),
			},
		)
	}
}
