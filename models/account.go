package models

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/coopetico/coopex/config"
	"github.com/coopetico/coopex/mq_client"
	"github.com/coopetico/coopex/types"
)

type Account struct {
	ID        int64             `json:"id" gorm:"primaryKey"`
	MemberID  int64             `json:"member_id"`
	Kind      types.AccountKind `json:"kind"`
	Balance   decimal.Decimal   `json:"balance" validate:"ValidateBalance"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (a Account) ValidateBalance(Balance decimal.Decimal) bool {
	return Balance.GreaterThanOrEqual(decimal.Zero)
}

func (a *Account) Member() Member {
	var member Member

	config.DataBase.First(&member, "id = ?", a.MemberID)

	return member
}

func (a *Account) BeforeSave(tx *gorm.DB) (err error) {
	a.TriggerEvent()

	return
}

func (a *Account) TriggerEvent() {
	member := a.Member()
	payload_message, _ := json.Marshal(a.ToJSON())

	mq_client.EnqueueEvent("private", member.Code, "balance", payload_message)
}

func (a *Account) PlusFunds(tx *gorm.DB, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errors.New("Cannot add funds (member id: " + strconv.FormatInt(a.MemberID, 10) + ", kind: " + a.Kind + ", amount: " + amount.String() + ", balance: " + a.Balance.String() + ").")
	}

	a.Balance = a.Balance.Add(amount)
	return tx.Save(&a).Error
}

func (a *Account) SubFunds(tx *gorm.DB, amount decimal.Decimal) error {
	if !amount.IsPositive() || amount.GreaterThan(a.Balance) {
		return errors.New("Cannot subtract funds (member id: " + strconv.FormatInt(a.MemberID, 10) + ", kind: " + a.Kind + ", amount: " + amount.String() + ", balance: " + a.Balance.String() + ").")
	}

	a.Balance = a.Balance.Sub(amount)
	return tx.Save(&a).Error
}

// ZeroFunds empties the account and returns the amount that was held. A zero
// balance is not an error: liquidating an empty account is legal.
func (a *Account) ZeroFunds(tx *gorm.DB) (decimal.Decimal, error) {
	amount := a.Balance

	if amount.IsZero() {
		return decimal.Zero, nil
	}

	a.Balance = decimal.Zero
	if err := tx.Save(&a).Error; err != nil {
		return decimal.Zero, err
	}

	return amount, nil
}

type AccountJSON struct {
	Kind    types.AccountKind `json:"kind"`
	Balance decimal.Decimal   `json:"balance"`
}

func (a *Account) ToJSON() AccountJSON {
	return AccountJSON{
		Kind:    a.Kind,
		Balance: a.Balance,
	}
}
