package helpers

import (
	"fmt"
	"time"

	"github.com/gookit/validate"
	"gorm.io/gorm"

	"github.com/coopetico/coopex/config"
	"github.com/coopetico/coopex/models"
)

type CreateMemberParams struct {
	Code         string `json:"code" form:"code"`
	FullName     string `json:"full_name" form:"full_name" validate:"required"`
	Email        string `json:"email" form:"email" validate:"email"`
	AffiliatedAt int64  `json:"affiliated_at" form:"affiliated_at" validate:"ValidateAffiliatedAt"`
}

func (p CreateMemberParams) Messages() map[string]string {
	invalid_message := "member.invalid_{field}"

	return validate.MS{
		"required":             invalid_message,
		"email":                "member.invalid_email",
		"ValidateAffiliatedAt": "member.invalid_affiliated_at",
	}
}

// Affiliation dates in the future make eligibility meaningless.
func (p CreateMemberParams) ValidateAffiliatedAt(AffiliatedAt int64) bool {
	if AffiliatedAt == 0 {
		return true
	}

	return AffiliatedAt <= time.Now().Unix()
}

func (p CreateMemberParams) CreateMember(err_src *Errors) *models.Member {
	affiliated_at := time.Now()
	if p.AffiliatedAt > 0 {
		affiliated_at = time.Unix(p.AffiliatedAt, 0)
	}

	member := &models.Member{
		Code:         p.Code,
		FullName:     p.FullName,
		Email:        p.Email,
		AffiliatedAt: affiliated_at,
		Active:       true,
	}

	Validate(member, err_src)

	if err_src.Size() > 0 {
		return nil
	}

	err := config.DataBase.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(member).Error; err != nil {
			return err
		}

		if member.Code == "" {
			member.Code = fmt.Sprintf("COOP-%06d", member.ID)

			return tx.Save(member).Error
		}

		return nil
	})

	if err != nil {
		err_src.Errors = append(err_src.Errors, "member.duplicate_code")

		return nil
	}

	return member
}

type UpdateMemberParams struct {
	FullName string `json:"full_name" form:"full_name"`
	Email    string `json:"email" form:"email" validate:"email"`
	Active   *bool  `json:"active" form:"active"`
}

func (p UpdateMemberParams) Messages() map[string]string {
	return validate.MS{
		"email": "member.invalid_email",
	}
}

func (p UpdateMemberParams) UpdateMember(member *models.Member, err_src *Errors) *models.Member {
	if p.FullName != "" {
		member.FullName = p.FullName
	}
	if p.Email != "" {
		member.Email = p.Email
	}
	if p.Active != nil {
		member.Active = *p.Active
	}

	Validate(member, err_src)

	if err_src.Size() > 0 {
		return nil
	}

	if err := config.DataBase.Save(member).Error; err != nil {
		err_src.Errors = append(err_src.Errors, "member.update_failed")

		return nil
	}

	return member
}
