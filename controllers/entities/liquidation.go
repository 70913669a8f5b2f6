package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/coopetico/coopex/types"
)

// LiquidationPreview is the read-only set of balances a liquidation would act
// on, fetched before confirmation.
type LiquidationPreview struct {
	MemberID      int64           `json:"member_id"`
	Savings       decimal.Decimal `json:"savings"`
	Contributions decimal.Decimal `json:"contributions"`
	Surplus       decimal.Decimal `json:"surplus"`
	Total         decimal.Decimal `json:"total"`
}

type LiquidationEntity struct {
	ID              int64                 `json:"id"`
	UUID            uuid.UUID             `json:"uuid"`
	MemberID        int64                 `json:"member_id"`
	Type            types.LiquidationType `json:"type"`
	MemberContinues bool                  `json:"member_continues"`
	Savings         decimal.Decimal       `json:"savings"`
	Contributions   decimal.Decimal       `json:"contributions"`
	Surplus         decimal.Decimal       `json:"surplus"`
	Total           decimal.Decimal       `json:"total"`
	Notes           string                `json:"notes,omitempty"`
	ReceiptNumber   string                `json:"receipt_number,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
}

// ExecuteRequest is the execute-liquidation request body. MemberContinues is
// optional on the wire; when present it must match the value the liquidation
// type implies.
type ExecuteRequest struct {
	MemberIDs       []int64               `json:"member_ids"`
	LiquidationType types.LiquidationType `json:"liquidation_type"`
	MemberContinues *bool                 `json:"member_continues,omitempty"`
	Notes           string                `json:"notes,omitempty"`
}

type LiquidationStats struct {
	TotalCount     int64           `json:"total_count"`
	PeriodicCount  int64           `json:"periodic_count"`
	ExitCount      int64           `json:"exit_count"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	PendingMembers int64           `json:"pending_members"`
}

// PendingMemberEntity is one row of the pending-liquidations report.
type PendingMemberEntity struct {
	MemberID   int64           `json:"member_id"`
	Code       string          `json:"code"`
	FullName   string          `json:"full_name"`
	YearsSince int             `json:"years_since"`
	Total      decimal.Decimal `json:"total"`
}
