package entities

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/coopetico/coopex/models/datatypes"
	"github.com/coopetico/coopex/types"
)

type WithdrawalEntity struct {
	ID            int64                    `json:"id"`
	MemberID      int64                    `json:"member_id"`
	AccountKind   types.AccountKind        `json:"account_kind"`
	Amount        decimal.Decimal          `json:"amount"`
	State         string                   `json:"state"`
	Notes         string                   `json:"notes,omitempty"`
	PayoutDetails *datatypes.PayoutDetails `json:"payout_details,omitempty"`
	ReceiptNumber string                   `json:"receipt_number,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
}

type DepositEntity struct {
	ID            int64             `json:"id"`
	MemberID      int64             `json:"member_id"`
	AccountKind   types.AccountKind `json:"account_kind"`
	Amount        decimal.Decimal   `json:"amount"`
	Notes         string            `json:"notes,omitempty"`
	ReceiptNumber string            `json:"receipt_number,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}
