package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"

	"github.com/coopetico/coopex/config"
	"github.com/coopetico/coopex/controllers/entities"
	"github.com/coopetico/coopex/types"
)

type Member struct {
	ID               int64     `json:"id" gorm:"primaryKey"`
	Code             string    `json:"code" gorm:"uniqueIndex"`
	FullName         string    `json:"full_name" validate:"required"`
	Email            string    `json:"email"`
	AffiliatedAt     time.Time `json:"affiliated_at"`
	LastLiquidatedAt null.Time `json:"last_liquidated_at"`
	Active           bool      `json:"active" gorm:"default:true"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// YearsBetween is the number of whole years elapsed between reference and
// now. The anniversary day itself counts as a completed year, so a member
// affiliated exactly six years ago is six years in. Zero when reference is in
// the future.
func YearsBetween(reference, now time.Time) int {
	if now.Before(reference) {
		return 0
	}

	years := now.Year() - reference.Year()
	if reference.AddDate(years, 0, 0).After(now) {
		years--
	}

	return years
}

// LiquidationReference is the date eligibility counts from: the last
// liquidation when there is one, the affiliation date otherwise.
func (m *Member) LiquidationReference() time.Time {
	if m.LastLiquidatedAt.Valid {
		return m.LastLiquidatedAt.Time
	}

	return m.AffiliatedAt
}

func (m *Member) YearsSinceLastLiquidation(now time.Time) int {
	return YearsBetween(m.LiquidationReference(), now)
}

// LiquidationPending reports whether the member is due for a periodic
// liquidation: periodYears or more whole years since the reference date.
// Inactive members are never pending.
func (m *Member) LiquidationPending(now time.Time, periodYears int) bool {
	if !m.Active {
		return false
	}

	return m.YearsSinceLastLiquidation(now) >= periodYears
}

func (m *Member) ToJSON() entities.MemberEntity {
	now := time.Now()

	return entities.MemberEntity{
		ID:                 m.ID,
		Code:               m.Code,
		FullName:           m.FullName,
		Email:              m.Email,
		AffiliatedAt:       m.AffiliatedAt,
		LastLiquidatedAt:   m.LastLiquidatedAt,
		Active:             m.Active,
		YearsSince:         m.YearsSinceLastLiquidation(now),
		LiquidationPending: m.LiquidationPending(now, config.Coop.Liquidation.PeriodYears),
		CreatedAt:          m.CreatedAt,
	}
}

func (m *Member) GetAccount(kind types.AccountKind) *Account {
	var account *Account

	config.DataBase.FirstOrCreate(&account, Account{MemberID: m.ID, Kind: kind})

	return account
}

func (m *Member) Accounts() []*Account {
	var accounts []*Account

	config.DataBase.Where("member_id = ?", m.ID).Find(&accounts)

	return accounts
}

// AccountsTotal is the sum of every account balance: the amount a liquidation
// of the member would move right now.
func (m *Member) AccountsTotal() decimal.Decimal {
	total := decimal.Zero

	for _, account := range m.Accounts() {
		total = total.Add(account.Balance)
	}

	return total
}

func (m *Member) Users() []*User {
	var users []*User

	config.DataBase.Where("member_id = ?", m.ID).Find(&users)

	return users
}
