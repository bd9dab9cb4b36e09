package models

import (
	"time"
)

// Role name constants. Claims derived from these are prefixed with "SCOPE_"
// by the authorization layer (e.g. ROLE_ADMIN -> SCOPE_ROLE_ADMIN).
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
	RoleAPI   = "ROLE_API"
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	FirstName    string
	LastName     string
	Email        string `gorm:"uniqueIndex;not null"`
	UserName     string `gorm:"uniqueIndex;not null"`
	PasswordHash string // OAuth2-only users carry a generated placeholder hash
	Enabled      bool   `gorm:"not null;default:true"`

	// Role membership is owned by the user side only. Roles do not track
	// their users; membership queries go through the join table.
	Roles []Role    `gorm:"many2many:user_roles"`
	Prefs UserPrefs `gorm:"foreignKey:UserID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoleNames returns the plain role names carried by the user.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// HasRole returns true if the user carries the named role.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

// IsAdmin returns true if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

type Role struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;not null"`
}

// UserPrefs holds per-user presentation preferences.
type UserPrefs struct {
	ID       uint `gorm:"primaryKey"`
	UserID   uint `gorm:"index"`
	AvatarID uint
	Avatar   Avatar
}
