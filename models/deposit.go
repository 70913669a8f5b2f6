package models

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/coopetico/coopex/config"
	"github.com/coopetico/coopex/controllers/entities"
	"github.com/coopetico/coopex/mq_client"
	"github.com/coopetico/coopex/types"
)

var ErrDepositNonPositiveAmount = errors.New("deposit.non_positive_amount")

// Deposit is a savings or contributions entry recorded by the board. The
// account is credited in the same transaction that persists the deposit.
type Deposit struct {
	ID            int64             `json:"id" gorm:"primaryKey"`
	MemberID      int64             `json:"member_id"`
	AccountKind   types.AccountKind `json:"account_kind"`
	Amount        decimal.Decimal   `json:"amount"`
	Notes         string            `json:"notes"`
	ReceiptNumber string            `json:"receipt_number"`
	CreatedAt     time.Time         `json:"created_at"`
}

func CreateDeposit(member_id int64, kind types.AccountKind, amount decimal.Decimal, notes string) (*Deposit, error) {
	if !amount.IsPositive() {
		return nil, ErrDepositNonPositiveAmount
	}

	var deposit *Deposit

	err := config.DataBase.Transaction(func(tx *gorm.DB) error {
		var member *Member

		result := tx.Where("id = ?", member_id).First(&member)
		if result.Error != nil {
			return ErrMemberNotFound
		}

		if !member.Active {
			return ErrMemberInactive
		}

		var account *Account
		account_tx := tx.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "accounts"}})
		if err := account_tx.Where(Account{MemberID: member_id, Kind: kind}).FirstOrCreate(&account).Error; err != nil {
			return err
		}

		if err := account.PlusFunds(tx, amount); err != nil {
			return err
		}

		deposit = &Deposit{
			MemberID:    member_id,
			AccountKind: kind,
			Amount:      amount,
			Notes:       notes,
		}

		if err := tx.Create(deposit).Error; err != nil {
			return err
		}

		if err := OperationCredit(tx, amount, kind, Reference{ID: deposit.ID, Type: "Deposit"}, member_id); err != nil {
			return err
		}

		receipt, err := CreateReceipt(tx, types.ReceiptDeposit, deposit.ID, member_id, amount)
		if err != nil {
			return err
		}

		deposit.ReceiptNumber = receipt.Number

		return tx.Save(deposit).Error
	})

	if err != nil {
		return nil, err
	}

	deposit.TriggerEvent()

	return deposit, nil
}

func (d *Deposit) Member() *Member {
	var member *Member

	config.DataBase.First(&member, d.MemberID)

	return member
}

func (d *Deposit) ToJSON() entities.DepositEntity {
	return entities.DepositEntity{
		ID:            d.ID,
		MemberID:      d.MemberID,
		AccountKind:   d.AccountKind,
		Amount:        d.Amount,
		Notes:         d.Notes,
		ReceiptNumber: d.ReceiptNumber,
		CreatedAt:     d.CreatedAt,
	}
}

func (d *Deposit) TriggerEvent() {
	member := d.Member()
	payload_message, _ := json.Marshal(d.ToJSON())

	mq_client.EnqueueEvent("private", member.Code, "deposit", payload_message)

	if config.InfluxDB != nil {
		config.InfluxDB.NewPoint("deposits",
			map[string]string{"kind": d.AccountKind},
			map[string]interface{}{
				"member_id": d.MemberID,
				"amount":    d.Amount.InexactFloat64(),
			},
		)
	}
}
