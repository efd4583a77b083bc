package model

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// staff と admin は運営側
func (r Role) IsStaff() bool {
	return r == RoleStaff || r == RoleAdmin
}

type User struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	FullName string `gorm:"type:varchar(100);not null" json:"full_name"`
	Phone    string `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Address  string `gorm:"type:varchar(200)" json:"address,omitempty"`

	Role     Role `gorm:"type:varchar(20);not null;default:'customer'" json:"role"`
	IsActive bool `gorm:"not null;default:true" json:"is_active"`

	//平文は保存しない
	PasswordHash string `gorm:"column:hashed_password;not null" json:"-"`

	CreatedAt time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
