package domain

// Principal is the verified identity of the caller.
type Principal struct {
	Subject string
	UPN     string
	Name    string
	Roles   []string
}

const RoleAdmin = "Admin"

// IsAdmin reports whether the token carried the admin app role.
func (p Principal) IsAdmin() bool {
	for _, role := range p.Roles {
		if role == RoleAdmin {
			return true
		}
	}
	return false
}
