package queries

import (
	"github.com/gookit/validate"

	"github.com/coopetico/coopex/types"
)

type LiquidationFilters struct {
	MemberID int64                 `query:"member_id" validate:"uint"`
	Type     types.LiquidationType `query:"type" validate:"ValidateType"`
	TimeFrom int64                 `query:"time_from" validate:"uint"`
	TimeTo   int64                 `query:"time_to" validate:"uint"`
	Limit    int                   `query:"limit" validate:"uint"`
	Page     int                   `query:"page" validate:"uint"`
	OrderBy  types.OrderBy         `query:"order_by" validate:"ValidateOrderBy"`
}

func (f LiquidationFilters) ValidateType(val types.LiquidationType) bool {
	if len(val) == 0 {
		return true
	}

	return val.Valid()
}

func (f LiquidationFilters) ValidateOrderBy(val types.OrderBy) bool {
	return ValidOrderBy(val)
}

func (f LiquidationFilters) Messages() map[string]string {
	return validate.MS{
		"uint":            "liquidation.non_positive_{field}",
		"ValidateType":    "liquidation.invalid_type",
		"ValidateOrderBy": "liquidation.invalid_order_by",
	}
}

func ValidOrderBy(val types.OrderBy) bool {
	if len(val) == 0 {
		return true
	}

	return val == types.OrderByAsc || val == types.OrderByDesc
}
