package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/coopetico/coopex/config"
	"github.com/coopetico/coopex/types"
)

// Receipt is the durable record behind every printable receipt. The number is
// assigned from the configured series inside the transaction that creates the
// underlying event.
type Receipt struct {
	ID          int64             `json:"id" gorm:"primaryKey"`
	Number      string            `json:"number" gorm:"uniqueIndex"`
	Kind        types.ReceiptKind `json:"kind"`
	ReferenceID int64             `json:"reference_id"`
	MemberID    int64             `json:"member_id"`
	Amount      decimal.Decimal   `json:"amount"`
	CreatedAt   time.Time         `json:"created_at"`
}

func CreateReceipt(tx *gorm.DB, kind types.ReceiptKind, reference_id, member_id int64, amount decimal.Decimal) (*Receipt, error) {
	receipt := &Receipt{
		Kind:        kind,
		ReferenceID: reference_id,
		MemberID:    member_id,
		Amount:      amount,
	}

	if err := tx.Create(receipt).Error; err != nil {
		return nil, err
	}

	receipt.Number = fmt.Sprintf("%s-%06d", config.Coop.Receipts.Series, receipt.ID)
	if err := tx.Save(receipt).Error; err != nil {
		return nil, err
	}

	return receipt, nil
}
