package domain

// Role is the flat two-valued role model. Operator is a hard-coded superuser;
// there is no permissions graph because the domain has exactly two roles.
type Role string

const (
	RoleOperator Role = "operator"
	RoleMember   Role = "member"
)

// Satisfies reports whether a caller holding r passes a check for required.
// An empty requirement admits any authenticated caller, and Operator passes
// every check.
func (r Role) Satisfies(required Role) bool {
	if required == "" {
		return true
	}
	if r == RoleOperator {
		return true
	}
	return r == required
}

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleOperator || r == RoleMember
}
