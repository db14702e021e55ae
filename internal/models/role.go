package models

import "strings"

// Role is the closed set of dashboard roles. Input is case-insensitive and
// normalized to uppercase; anything outside the set is not a valid Role.
type Role string

const (
	RoleCEO Role = "CEO"
	RoleCFO Role = "CFO"
	RoleCOO Role = "COO"
	RoleHR  Role = "HR"
)

// ParseRole normalizes s to uppercase and reports whether it names a known
// role. The returned Role is usable either way: an unknown role simply matches
// no knowledge-base entries and no default tables.
func ParseRole(s string) (Role, bool) {
	role := Role(strings.ToUpper(strings.TrimSpace(s)))
	switch role {
	case RoleCEO, RoleCFO, RoleCOO, RoleHR:
		return role, true
	}
	return role, false
}

func (r Role) String() string {
	return string(r)
}
