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
	"github.com/coopetico/coopex/models/datatypes"
	"github.com/coopetico/coopex/mq_client"
	"github.com/coopetico/coopex/types"
)

type WithdrawalState int32

const (
	WithdrawPending  WithdrawalState = 0
	WithdrawApproved WithdrawalState = 100
	WithdrawPaid     WithdrawalState = 200
	WithdrawRejected WithdrawalState = -100
)

var (
	ErrWithdrawInsufficientBalance = errors.New("withdrawal.insufficient_balance")
	ErrWithdrawInvalidState        = errors.New("withdrawal.invalid_state")
	ErrWithdrawNonPositiveAmount   = errors.New("withdrawal.non_positive_amount")
)

// Withdrawal is a member's request to take money out of an account. The
// balance is debited when the request is paid, not when it is created, so an
// approved request can still fail at payout if funds moved in between.
type Withdrawal struct {
	ID            int64                   `json:"id" gorm:"primaryKey"`
	MemberID      int64                   `json:"member_id"`
	AccountKind   types.AccountKind       `json:"account_kind"`
	Amount        decimal.Decimal         `json:"amount"`
	State         WithdrawalState         `json:"state"`
	Notes         string                  `json:"notes"`
	PayoutDetails datatypes.PayoutDetails `json:"payout_details"`
	ReceiptNumber string                  `json:"receipt_number"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

func (w *Withdrawal) Member() *Member {
	var member *Member

	config.DataBase.First(&member, w.MemberID)

	return member
}

func (w *Withdrawal) StateString() string {
	switch w.State {
	case WithdrawPending:
		return "pending"
	case WithdrawApproved:
		return "approved"
	case WithdrawPaid:
		return "paid"
	case WithdrawRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// SubmitWithdrawal records a pending request. The balance check here is
// advisory; the binding check happens again under lock in Pay.
func SubmitWithdrawal(member_id int64, kind types.AccountKind, amount decimal.Decimal, notes string, details datatypes.PayoutDetails) (*Withdrawal, error) {
	if !amount.IsPositive() {
		return nil, ErrWithdrawNonPositiveAmount
	}

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

	account := member.GetAccount(kind)
	if amount.GreaterThan(account.Balance) {
		return nil, ErrWithdrawInsufficientBalance
	}

	withdrawal := &Withdrawal{
		MemberID:      member_id,
		AccountKind:   kind,
		Amount:        amount,
		State:         WithdrawPending,
		Notes:         notes,
		PayoutDetails: details,
	}

	if err := config.DataBase.Create(withdrawal).Error; err != nil {
		return nil, err
	}

	withdrawal.TriggerEvent()

	return withdrawal, nil
}

func (w *Withdrawal) Approve() error {
	if w.State != WithdrawPending {
		return ErrWithdrawInvalidState
	}

	w.State = WithdrawApproved
	if err := config.DataBase.Save(w).Error; err != nil {
		return err
	}

	w.TriggerEvent()

	return nil
}

func (w *Withdrawal) Reject() error {
	if w.State != WithdrawPending {
		return ErrWithdrawInvalidState
	}

	w.State = WithdrawRejected
	if err := config.DataBase.Save(w).Error; err != nil {
		return err
	}

	w.TriggerEvent()

	return nil
}

// Pay debits the account and closes the request. Lock order matches the
// liquidation executor: withdrawal row first, then the account row.
func (w *Withdrawal) Pay() error {
	err := config.DataBase.Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "withdrawals"}}).Where("id = ?", w.ID).First(&w)
		if result.Error != nil {
			return result.Error
		}

		if w.State != WithdrawApproved {
			return ErrWithdrawInvalidState
		}

		var account *Account
		account_tx := tx.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "accounts"}})
		if err := account_tx.Where(Account{MemberID: w.MemberID, Kind: w.AccountKind}).FirstOrCreate(&account).Error; err != nil {
			return err
		}

		if w.Amount.GreaterThan(account.Balance) {
			return ErrWithdrawInsufficientBalance
		}

		if err := account.SubFunds(tx, w.Amount); err != nil {
			return err
		}

		if err := OperationDebit(tx, w.Amount, w.AccountKind, Reference{ID: w.ID, Type: "Withdrawal"}, w.MemberID); err != nil {
			return err
		}

		receipt, err := CreateReceipt(tx, types.ReceiptWithdrawal, w.ID, w.MemberID, w.Amount)
		if err != nil {
			return err
		}

		w.State = WithdrawPaid
		w.ReceiptNumber = receipt.Number

		return tx.Save(w).Error
	})

	if err != nil {
		return err
	}

	w.TriggerEvent()

	return nil
}

func (w *Withdrawal) ToJSON() entities.WithdrawalEntity {
	entity := entities.WithdrawalEntity{
		ID:            w.ID,
		MemberID:      w.MemberID,
		AccountKind:   w.AccountKind,
		Amount:        w.Amount,
		State:         w.StateString(),
		Notes:         w.Notes,
		ReceiptNumber: w.ReceiptNumber,
		CreatedAt:     w.CreatedAt,
	}

	if !w.PayoutDetails.IsZero() {
		details := w.PayoutDetails
		entity.PayoutDetails = &details
	}

	return entity
}

func (w *Withdrawal) TriggerEvent() {
	member := w.Member()
	payload_message, _ := json.Marshal(w.ToJSON())

	mq_client.EnqueueEvent("private", member.Code, "withdrawal", payload_message)

	if config.InfluxDB != nil && w.State == WithdrawPaid {
		config.InfluxDB.NewPoint("withdrawals",
			map[string]string{"kind": w.AccountKind},
			map[string]interface{}{
				"member_id": w.MemberID,
				"amount":    w.Amount.InexactFloat64(),
			},
		)
	}
}
