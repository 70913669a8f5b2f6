package entities

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"

	"github.com/coopetico/coopex/types"
)

type MemberEntity struct {
	ID                 int64     `json:"id"`
	Code               string    `json:"code"`
	FullName           string    `json:"full_name"`
	Email              string    `json:"email"`
	AffiliatedAt       time.Time `json:"affiliated_at"`
	LastLiquidatedAt   null.Time `json:"last_liquidated_at"`
	Active             bool      `json:"active"`
	YearsSince         int       `json:"years_since_last_liquidation"`
	LiquidationPending bool      `json:"liquidation_pending"`
	CreatedAt          time.Time `json:"created_at"`
}

type AccountEntity struct {
	Kind    types.AccountKind `json:"kind"`
	Balance decimal.Decimal   `json:"balance"`
}

// MemberCardEntity carries the signed token the frontend encodes as the QR on
// the printed ID card.
type MemberCardEntity struct {
	MemberID int64     `json:"member_id"`
	Code     string    `json:"code"`
	FullName string    `json:"full_name"`
	Token    string    `json:"token"`
	IssuedAt time.Time `json:"issued_at"`
}
