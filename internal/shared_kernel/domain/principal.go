package domain

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Principal is the authenticated caller resolved by the auth layer in front
// of this service. It arrives with every request; the service never issues
// or verifies credentials itself.
type Principal struct {
	ID   ID
	Name string
	Role Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) IsAnonymous() bool {
	return p.ID == ""
}

// CanAccess reports whether the principal may view or mutate a resource
// owned by ownerID. Admins are unrestricted.
func (p Principal) CanAccess(ownerID ID) bool {
	return p.IsAdmin() || (!p.IsAnonymous() && p.ID == ownerID)
}
