package models

import "gorm.io/gorm"

// Role identifies what a user is allowed to do. Operations declare the
// role set they accept instead of branching on user subtypes.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleDelivery Role = "delivery"
)

// Staff reports whether the role belongs to back-office or delivery personnel.
func (r Role) Staff() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleDelivery
}

// User represents an account on the platform.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username   string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	Phone      string `json:"phone" gorm:"type:varchar(20)" validate:"omitempty,min=9,max=20"`
	Role       Role   `json:"role" gorm:"type:varchar(20);default:customer" validate:"omitempty,oneof=customer admin manager delivery"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// Actor is the capability-tagged identity passed into every service
// operation. It carries only what authorization decisions need.
type Actor struct {
	UserID string
	Role   Role
}

// HasRole reports whether the actor holds one of the given roles.
func (a Actor) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}
