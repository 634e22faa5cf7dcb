package models

import "time"

// Role is the authorization role carried by a user and their tokens.
type Role string

const (
	RoleOrdinary Role = "ordinary"
	RoleAdmin    Role = "admin"
)

// User represents an account holder.
type User struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Name      string     `json:"name" gorm:"type:varchar(100);not null"`
	Email     string     `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Password  string     `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash
	Role      Role       `json:"role" gorm:"type:varchar(20);not null;default:ordinary"`
	IsDeleted bool       `json:"is_deleted" gorm:"not null;default:false;index"`
	Campaigns []Campaign `json:"-" gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Principal is the authenticated caller, derived once from the bearer token
// and passed explicitly into every service operation that needs it.
type Principal struct {
	UserID uint
	Role   Role
}

// IsAdmin reports whether the caller holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
