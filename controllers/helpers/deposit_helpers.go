package helpers

import (
	"github.com/gookit/validate"
	"github.com/shopspring/decimal"

	"github.com/coopetico/coopex/models"
	"github.com/coopetico/coopex/types"
)

type CreateDepositParams struct {
	MemberID    int64             `json:"member_id" form:"member_id" validate:"required"`
	AccountKind types.AccountKind `json:"account_kind" form:"account_kind" validate:"required|ValidateAccountKind"`
	Amount      decimal.Decimal   `json:"amount" form:"amount" validate:"ValidateAmount|ValidateAmountPrecision"`
	Notes       string            `json:"notes" form:"notes"`
}

func (p CreateDepositParams) Messages() map[string]string {
	invalid_message := "deposit.invalid_{field}"

	return validate.MS{
		"required":                invalid_message,
		"ValidateAccountKind":     "deposit.invalid_account_kind",
		"ValidateAmount":          "deposit.non_positive_amount",
		"ValidateAmountPrecision": "deposit.invalid_amount_precision",
	}
}

func (p CreateDepositParams) ValidateAccountKind(AccountKind types.AccountKind) bool {
	return types.ValidAccountKind(AccountKind)
}

func (p CreateDepositParams) ValidateAmount(Amount decimal.Decimal) bool {
	return Amount.IsPositive()
}

func (p CreateDepositParams) ValidateAmountPrecision(Amount decimal.Decimal) bool {
	return precision_validator.LessThanOrEqTo(Amount, MoneyPrecision)
}

func (p CreateDepositParams) CreateDeposit(err_src *Errors) *models.Deposit {
	deposit, err := models.CreateDeposit(p.MemberID, p.AccountKind, p.Amount, p.Notes)
	if err != nil {
		switch err {
		case models.ErrMemberNotFound:
			err_src.Errors = append(err_src.Errors, "deposit.member_not_found")
		case models.ErrMemberInactive:
			err_src.Errors = append(err_src.Errors, "deposit.member_inactive")
		case models.ErrDepositNonPositiveAmount:
			err_src.Errors = append(err_src.Errors, err.Error())
		default:
			err_src.Errors = append(err_src.Errors, "server.internal_error")
		}

		return nil
	}

	return deposit
}
