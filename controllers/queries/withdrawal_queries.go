package queries

import (
	"github.com/gookit/validate"

	"github.com/coopetico/coopex/types"
)

type WithdrawalFilters struct {
	MemberID int64         `query:"member_id" validate:"uint"`
	State    string        `query:"state"`
	Limit    int           `query:"limit" validate:"uint"`
	Page     int           `query:"page" validate:"uint"`
	OrderBy  types.OrderBy `query:"order_by" validate:"ValidateOrderBy"`
}

func (f WithdrawalFilters) ValidateOrderBy(val types.OrderBy) bool {
	return ValidOrderBy(val)
}

func (f WithdrawalFilters) Messages() map[string]string {
	return validate.MS{
		"uint":            "withdrawal.non_positive_{field}",
		"ValidateOrderBy": "withdrawal.invalid_order_by",
	}
}
