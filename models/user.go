package models

import (
	"time"

	"github.com/volatiletech/null"

	"github.com/coopetico/coopex/config"
)

type User struct {
	ID        int64      `json:"id" gorm:"primaryKey"`
	UID       string     `json:"uid" gorm:"uniqueIndex"`
	Email     string     `json:"email"`
	Role      string     `json:"role" gorm:"default:member"`
	MemberID  null.Int64 `json:"member_id"`
	Active    bool       `json:"active" gorm:"default:true"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == "admin" || u.Role == "board"
}

// CanAccessMember reports whether the user may read member-scoped data:
// admins and board members see everyone, a regular user only the member
// record linked to their account.
func (u *User) CanAccessMember(member_id int64) bool {
	if u.IsAdmin() {
		return true
	}

	return u.MemberID.Valid && u.MemberID.Int64 == member_id
}

func (u *User) Member() *Member {
	if !u.MemberID.Valid {
		return nil
	}

	var member *Member

	config.DataBase.First(&member, u.MemberID.Int64)

	return member
}
