package queries

import (
	"github.com/gookit/validate"

	"github.com/coopetico/coopex/types"
)

type MemberFilters struct {
	Q       string        `query:"q"`
	Active  string        `query:"active" validate:"ValidateActive"`
	Limit   int           `query:"limit" validate:"uint"`
	Page    int           `query:"page" validate:"uint"`
	OrderBy types.OrderBy `query:"order_by" validate:"ValidateOrderBy"`
}

func (f MemberFilters) ValidateActive(val string) bool {
	return val == "" || val == "true" || val == "false"
}

func (f MemberFilters) ValidateOrderBy(val types.OrderBy) bool {
	return ValidOrderBy(val)
}

func (f MemberFilters) Messages() map[string]string {
	return validate.MS{
		"uint":            "member.non_positive_{field}",
		"ValidateActive":  "member.invalid_active",
		"ValidateOrderBy": "member.invalid_order_by",
	}
}
