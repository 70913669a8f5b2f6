package helpers

import (
	"github.com/gookit/validate"
	"github.com/shopspring/decimal"

	"github.com/coopetico/coopex/models"
	"github.com/coopetico/coopex/models/datatypes"
	"github.com/coopetico/coopex/types"
)

type SubmitWithdrawalParams struct {
	AccountKind     types.AccountKind  `json:"account_kind" form:"account_kind" validate:"required|ValidateAccountKind"`
	Amount          decimal.Decimal    `json:"amount" form:"amount" validate:"ValidateAmount|ValidateAmountPrecision"`
	Notes           string             `json:"notes" form:"notes"`
	PayoutMethod    types.PayoutMethod `json:"payout_method" form:"payout_method" validate:"ValidatePayoutMethod"`
	PayoutReference string             `json:"payout_reference" form:"payout_reference"`
}

func (p SubmitWithdrawalParams) Messages() map[string]string {
	invalid_message := "withdrawal.invalid_{field}"

	return validate.MS{
		"required":                invalid_message,
		"ValidateAccountKind":     "withdrawal.invalid_account_kind",
		"ValidateAmount":          "withdrawal.non_positive_amount",
		"ValidateAmountPrecision": "withdrawal.invalid_amount_precision",
		"ValidatePayoutMethod":    "withdrawal.invalid_payout_method",
	}
}

func (p SubmitWithdrawalParams) ValidateAccountKind(AccountKind types.AccountKind) bool {
	return types.ValidAccountKind(AccountKind)
}

func (p SubmitWithdrawalParams) ValidateAmount(Amount decimal.Decimal) bool {
	return Amount.IsPositive()
}

func (p SubmitWithdrawalParams) ValidateAmountPrecision(Amount decimal.Decimal) bool {
	return precision_validator.LessThanOrEqTo(Amount, MoneyPrecision)
}

// Payout details are optional at submission; the method, when given, must be
// one the cooperative can actually pay by.
func (p SubmitWithdrawalParams) ValidatePayoutMethod(PayoutMethod types.PayoutMethod) bool {
	return len(PayoutMethod) == 0 || types.ValidPayoutMethod(PayoutMethod)
}

func (p SubmitWithdrawalParams) Submit(member_id int64, err_src *Errors) *models.Withdrawal {
	details := datatypes.PayoutDetails{Method: p.PayoutMethod, Reference: p.PayoutReference}

	withdrawal, err := models.SubmitWithdrawal(member_id, p.AccountKind, p.Amount, p.Notes, details)
	if err != nil {
		switch err {
		case models.ErrMemberNotFound:
			err_src.Errors = append(err_src.Errors, "withdrawal.member_not_found")
		case models.ErrMemberInactive:
			err_src.Errors = append(err_src.Errors, "withdrawal.member_inactive")
		case models.ErrWithdrawInsufficientBalance, models.ErrWithdrawNonPositiveAmount:
			err_src.Errors = append(err_src.Errors, err.Error())
		default:
			err_src.Errors = append(err_src.Errors, "server.internal_error")
		}

		return nil
	}

	return withdrawal
}
