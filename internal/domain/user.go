package domain

import (
	"strings"
	"time"
)

// Role enumerates account roles ordered by privilege.
type Role string

const (
	RoleSubUser      Role = "SUB_USER"
	RoleUser         Role = "USER"
	RoleCompanyAdmin Role = "COMPANY_ADMIN"
	RoleAdmin        Role = "ADMIN"
)

var roleLevels = map[Role]int{
	RoleSubUser:      0,
	RoleUser:         1,
	RoleCompanyAdmin: 2,
	RoleAdmin:        3,
}

// ParseRole normalizes a role string to its canonical form. Parsing is
// case-insensitive and accepts the legacy wire aliases ("Administrator",
// "CompanyAdmin", "SubUser").
func ParseRole(raw string) (Role, bool) {
	switch strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), "_", "")) {
	case "SUBUSER":
		return RoleSubUser, true
	case "USER":
		return RoleUser, true
	case "COMPANYADMIN":
		return RoleCompanyAdmin, true
	case "ADMIN", "ADMINISTRATOR":
		return RoleAdmin, true
	default:
		return "", false
	}
}

// AtLeast reports whether r carries at least the privilege of other.
func (r Role) AtLeast(other Role) bool {
	return roleLevels[r] >= roleLevels[other]
}

// IsAdmin is the single authority for the admin check; every guard derives
// from it.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// UserStatus represents account approval states.
type UserStatus string

const (
	UserStatusPending UserStatus = "PENDING"
	UserStatusActive  UserStatus = "ACTIVE"
	UserStatusDenied  UserStatus = "DENIED"
)

// ParseUserStatus folds case so "pending", "Pending" and "PENDING" all
// resolve to the same canonical status.
func ParseUserStatus(raw string) (UserStatus, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "PENDING":
		return UserStatusPending, true
	case "ACTIVE":
		return UserStatusActive, true
	case "DENIED":
		return UserStatusDenied, true
	default:
		return "", false
	}
}

// User is the domain model for platform accounts.
type User struct {
	ID           string
	Username     string
	Email        string
	Name         string
	Phone        string
	PasswordHash string
	Role         Role
	CompanyID    string
	Status       UserStatus
	Enabled      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanLogin reports whether the account may establish a session.
func (u *User) CanLogin() bool {
	return u.Enabled && u.Status == UserStatusActive
}
