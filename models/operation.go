package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/coopetico/coopex/types"
)

// Operation is a ledger row. Every balance mutation (deposit, withdrawal
// payout, liquidation) records one, credit for money entering the member's
// account, debit for money leaving it.
type Operation struct {
	ID            int64             `json:"id" gorm:"primaryKey"`
	Code          int32             `json:"code"`
	MemberID      int64             `json:"member_id"`
	AccountKind   types.AccountKind `json:"account_kind"`
	ReferenceType string            `json:"reference_type"`
	ReferenceID   int64             `json:"reference_id"`
	Debit         decimal.Decimal   `json:"debit"`
	Credit        decimal.Decimal   `json:"credit"`
	CreatedAt     time.Time         `json:"created_at"`
}

// Chart of accounts: member liability codes per account kind.
var operationCodes = map[types.AccountKind]int32{
	types.AccountSavings:       201,
	types.AccountContributions: 202,
	types.AccountSurplus:       203,
}

func GetOperationCode(kind types.AccountKind) int32 {
	return operationCodes[kind]
}

func OperationCredit(tx *gorm.DB, amount decimal.Decimal, kind types.AccountKind, reference Reference, member_id int64) error {
	operation := Operation{
		Code:          GetOperationCode(kind),
		MemberID:      member_id,
		AccountKind:   kind,
		ReferenceType: reference.Type,
		ReferenceID:   reference.ID,
		Credit:        amount,
	}

	return tx.Create(&operation).Error
}

func OperationDebit(tx *gorm.DB, amount decimal.Decimal, kind types.AccountKind, reference Reference, member_id int64) error {
	operation := Operation{
		Code:          GetOperationCode(kind),
		MemberID:      member_id,
		AccountKind:   kind,
		ReferenceType: reference.Type,
		ReferenceID:   reference.ID,
		Debit:         amount,
	}

	return tx.Create(&operation).Error
}
