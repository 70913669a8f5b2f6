package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coopetico/coopex/types"
)

func boolPtr(v bool) *bool {
	return &v
}

func TestValidateExecuteParamsMissingMemberIDs(t *testing.T) {
	errs := Errors{}

	Validate(ExecuteLiquidationParams{
		LiquidationType: types.LiquidationPeriodic,
	}, &errs)

	require.Equal(t, 1, errs.Size())
	assert.True(t, strings.HasPrefix(errs.Errors[0], "liquidation.missing_"))
}

func TestValidateExecuteParamsInvalidType(t *testing.T) {
	errs := Errors{}

	Validate(ExecuteLiquidationParams{
		MemberIDs:       []int64{42},
		LiquidationType: "partial",
	}, &errs)

	require.Equal(t, 1, errs.Size())
	assert.Equal(t, "liquidation.invalid_type", errs.Errors[0])
}

func TestValidateExecuteParamsValid(t *testing.T) {
	errs := Errors{}

	Validate(ExecuteLiquidationParams{
		MemberIDs:       []int64{42, 7},
		LiquidationType: types.LiquidationExit,
		MemberContinues: boolPtr(false),
		Notes:           "se retira",
	}, &errs)

	assert.Equal(t, 0, errs.Size())
}

func TestExecuteRejectsNonPositiveMemberIDs(t *testing.T) {
	for _, ids := range [][]int64{{0}, {-5}, {42, 0}} {
		errs := Errors{}

		params := ExecuteLiquidationParams{
			MemberIDs:       ids,
			LiquidationType: types.LiquidationPeriodic,
		}

		assert.Nil(t, params.Execute(&errs))
		require.Equal(t, 1, errs.Size())
		assert.Equal(t, "liquidation.invalid_member_ids", errs.Errors[0])
	}
}

func TestExecuteRejectsContinuesMismatch(t *testing.T) {
	tests := []struct {
		ltype     types.LiquidationType
		continues bool
	}{
		{types.LiquidationPeriodic, false},
		{types.LiquidationExit, true},
	}

	for _, tt := range tests {
		errs := Errors{}

		params := ExecuteLiquidationParams{
			MemberIDs:       []int64{42},
			LiquidationType: tt.ltype,
			MemberContinues: boolPtr(tt.continues),
		}

		assert.Nil(t, params.Execute(&errs))
		require.Equal(t, 1, errs.Size())
		assert.Equal(t, "liquidation.member_continues_mismatch", errs.Errors[0])
	}
}

func TestExecuteRejectsInvalidType(t *testing.T) {
	errs := Errors{}

	params := ExecuteLiquidationParams{
		MemberIDs:       []int64{42},
		LiquidationType: "partial",
	}

	assert.Nil(t, params.Execute(&errs))
	require.Equal(t, 1, errs.Size())
	assert.Equal(t, "liquidation.invalid_type", errs.Errors[0])
}

func TestExecuteAcceptsMatchingContinues(t *testing.T) {
	// The derived flag matching the explicit one passes the guard; the batch
	// then fails on the unknown type before touching any storage.
	errs := Errors{}

	params := ExecuteLiquidationParams{
		MemberIDs:       []int64{42},
		LiquidationType: "partial",
		MemberContinues: boolPtr(false),
	}

	assert.Nil(t, params.Execute(&errs))
	require.Equal(t, 1, errs.Size())
	assert.Equal(t, "liquidation.invalid_type", errs.Errors[0])
}
