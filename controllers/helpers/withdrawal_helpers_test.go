package helpers

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coopetico/coopex/types"
)

func TestValidateWithdrawalParamsAmountPrecision(t *testing.T) {
	errs := Errors{}

	Validate(SubmitWithdrawalParams{
		AccountKind: types.AccountSavings,
		Amount:      decimal.RequireFromString("120.505"),
	}, &errs)

	require.Equal(t, 1, errs.Size())
	assert.Equal(t, "withdrawal.invalid_amount_precision", errs.Errors[0])
}

func TestValidateWithdrawalParamsPayoutMethod(t *testing.T) {
	errs := Errors{}

	Validate(SubmitWithdrawalParams{
		AccountKind:  types.AccountSavings,
		Amount:       decimal.NewFromInt(100),
		PayoutMethod: "check",
	}, &errs)

	require.Equal(t, 1, errs.Size())
	assert.Equal(t, "withdrawal.invalid_payout_method", errs.Errors[0])
}

func TestValidateWithdrawalParamsValid(t *testing.T) {
	for _, method := range []types.PayoutMethod{"", types.PayoutCash, types.PayoutTransfer, types.PayoutSinpe} {
		errs := Errors{}

		Validate(SubmitWithdrawalParams{
			AccountKind:     types.AccountSavings,
			Amount:          decimal.RequireFromString("120.50"),
			PayoutMethod:    method,
			PayoutReference: "CR05-0152-0001",
		}, &errs)

		assert.Equal(t, 0, errs.Size())
	}
}

func TestValidateDepositParamsAmountPrecision(t *testing.T) {
	errs := Errors{}

	Validate(CreateDepositParams{
		MemberID:    42,
		AccountKind: types.AccountContributions,
		Amount:      decimal.RequireFromString("0.005"),
	}, &errs)

	require.Equal(t, 1, errs.Size())
	assert.Equal(t, "deposit.invalid_amount_precision", errs.Errors[0])
}
