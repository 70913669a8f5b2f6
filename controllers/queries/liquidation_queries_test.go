package queries

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coopetico/coopex/controllers/helpers"
	"github.com/coopetico/coopex/types"
)

func TestValidOrderBy(t *testing.T) {
	assert.True(t, ValidOrderBy(""))
	assert.True(t, ValidOrderBy(types.OrderByAsc))
	assert.True(t, ValidOrderBy(types.OrderByDesc))
	assert.False(t, ValidOrderBy("sideways"))
}

func TestLiquidationFiltersValid(t *testing.T) {
	errs := helpers.Errors{}

	helpers.Validate(LiquidationFilters{
		MemberID: 42,
		Type:     types.LiquidationPeriodic,
		Limit:    50,
		Page:     2,
		OrderBy:  types.OrderByDesc,
	}, &errs)

	assert.Equal(t, 0, errs.Size())
}

func TestLiquidationFiltersEmptyIsValid(t *testing.T) {
	errs := helpers.Errors{}

	helpers.Validate(LiquidationFilters{}, &errs)

	assert.Equal(t, 0, errs.Size())
}

func TestLiquidationFiltersInvalidType(t *testing.T) {
	errs := helpers.Errors{}

	helpers.Validate(LiquidationFilters{Type: "partial"}, &errs)

	assert.Equal(t, []string{"liquidation.invalid_type"}, errs.Errors)
}

func TestLiquidationFiltersInvalidOrderBy(t *testing.T) {
	errs := helpers.Errors{}

	helpers.Validate(LiquidationFilters{OrderBy: "sideways"}, &errs)

	assert.Equal(t, []string{"liquidation.invalid_order_by"}, errs.Errors)
}

func TestMemberFiltersActive(t *testing.T) {
	for _, val := range []string{"", "true", "false"} {
		errs := helpers.Errors{}

		helpers.Validate(MemberFilters{Active: val}, &errs)

		assert.Equal(t, 0, errs.Size())
	}

	errs := helpers.Errors{}

	helpers.Validate(MemberFilters{Active: "yes"}, &errs)

	assert.Equal(t, []string{"member.invalid_active"}, errs.Errors)
}
