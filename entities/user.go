package entities

import "time"

type Role string

const (
	RoleAdmin          Role = "admin"
	RoleFarmer         Role = "farmer"
	RoleProcessor      Role = "processor"
	RoleWasteConverter Role = "waste_converter"
)

// Roles lists every role in display order.
var Roles = []Role{RoleFarmer, RoleProcessor, RoleWasteConverter, RoleAdmin}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleFarmer, RoleProcessor, RoleWasteConverter:
		return true
	}
	return false
}

// Capability names an action gated by role.
type Capability string

const (
	CapManageUsers    Capability = "manage_users"
	CapManagePartners Capability = "manage_partners"
	CapViewAll        Capability = "view_all"
	CapSelfRegister   Capability = "self_register"
)

var capabilities = map[Role]map[Capability]bool{
	RoleAdmin:          {CapManageUsers: true, CapManagePartners: true, CapViewAll: true},
	RoleFarmer:         {CapSelfRegister: true},
	RoleProcessor:      {CapSelfRegister: true},
	RoleWasteConverter: {CapSelfRegister: true},
}

// Can reports whether the role carries the capability.
func (r Role) Can(c Capability) bool { return capabilities[r][c] }

type User struct {
	Username     string    `gorm:"primaryKey" json:"username"`
	PasswordHash string    `json:"-"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Role         Role      `gorm:"index" json:"role"`
	Phone        string    `json:"phone"`
	CreatedAt    time.Time `json:"created_at"`
}

// DisplayName falls back to the username when no full name was given.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// Principal is the authenticated caller of an operation.
type Principal struct {
	Username string
	Role     Role
}

func (p Principal) Can(c Capability) bool { return p.Role.Can(c) }
