package queries

import (
	"github.com/gookit/validate"

	"github.com/coopetico/coopex/types"
)

type DepositFilters struct {
	MemberID int64         `query:"member_id" validate:"uint"`
	Limit    int           `query:"limit" validate:"uint"`
	Page     int           `query:"page" validate:"uint"`
	OrderBy  types.OrderBy `query:"order_by" validate:"ValidateOrderBy"`
}

func (f DepositFilters) ValidateOrderBy(val types.OrderBy) bool {
	return ValidOrderBy(val)
}

func (f DepositFilters) Messages() map[string]string {
	return validate.MS{
		"uint":            "deposit.non_positive_{field}",
		"ValidateOrderBy": "deposit.invalid_order_by",
	}
}
