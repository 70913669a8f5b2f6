package helpers

import (
	"github.com/gookit/validate"

	"github.com/coopetico/coopex/models"
	"github.com/coopetico/coopex/types"
)

type ExecuteLiquidationParams struct {
	MemberIDs       []int64               `json:"member_ids" form:"member_ids" validate:"required"`
	LiquidationType types.LiquidationType `json:"liquidation_type" form:"liquidation_type" validate:"required|ValidateLiquidationType"`
	MemberContinues *bool                 `json:"member_continues" form:"member_continues"`
	Notes           string                `json:"notes" form:"notes"`
}

func (p ExecuteLiquidationParams) Messages() map[string]string {
	return validate.MS{
		"required":                "liquidation.missing_{field}",
		"ValidateLiquidationType": "liquidation.invalid_type",
	}
}

func (p ExecuteLiquidationParams) ValidateLiquidationType(LiquidationType types.LiquidationType) bool {
	return LiquidationType.Valid()
}

// Execute runs the liquidation batch. The member-continues flag is derived
// from the liquidation type; clients may echo it back, but a value
// contradicting the type is rejected rather than silently overridden.
func (p ExecuteLiquidationParams) Execute(err_src *Errors) []*models.Liquidation {
	for _, id := range p.MemberIDs {
		if id <= 0 {
			err_src.Errors = append(err_src.Errors, "liquidation.invalid_member_ids")

			return nil
		}
	}

	if p.MemberContinues != nil && *p.MemberContinues != p.LiquidationType.Continues() {
		err_src.Errors = append(err_src.Errors, "liquidation.member_continues_mismatch")

		return nil
	}

	liquidations, err := models.ExecuteLiquidations(p.MemberIDs, p.LiquidationType, p.Notes)
	if err != nil {
		switch err {
		case models.ErrMemberNotFound, models.ErrMemberInactive, models.ErrInvalidType:
			err_src.Errors = append(err_src.Errors, err.Error())
		default:
			err_src.Errors = append(err_src.Errors, "server.internal_error")
		}

		return nil
	}

	return liquidations
}
