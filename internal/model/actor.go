package model

// Role identifies the permission level of an authenticated back-office user.
type Role string

const (
	RoleStaff      Role = "staff"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Actor is the authorization capability passed into mutating service calls.
// It is populated by the session subsystem upstream; the engine trusts it.
type Actor struct {
	ID   string
	Role Role
}

// CanManageCatalog reports whether the actor may create, update or delete
// offers, discounts and coupon codes.
func (a Actor) CanManageCatalog() bool {
	return a.Role == RoleAdmin || a.Role == RoleSuperAdmin
}
