package domain

// RequirementKind discriminates the Requirement variants.
type RequirementKind int

const (
	ReqPermission RequirementKind = iota
	ReqAnyOfRoles
	ReqAllOfRoles
	ReqPredicate
)

// Requirement is a typed authorization predicate evaluated by the access
// gate. Exactly one variant is populated, selected by Kind.
type Requirement struct {
	Kind       RequirementKind
	Permission string
	Roles      []string
	Predicate  string
}

// RequirePermission gates on a single named permission.
func RequirePermission(name string) Requirement {
	return Requirement{Kind: ReqPermission, Permission: name}
}

// RequireAnyRole gates on holding at least one of the named roles.
func RequireAnyRole(names ...string) Requirement {
	return Requirement{Kind: ReqAnyOfRoles, Roles: names}
}

// RequireAllRoles gates on holding every one of the named roles.
func RequireAllRoles(names ...string) Requirement {
	return Requirement{Kind: ReqAllOfRoles, Roles: names}
}

// RequirePredicate gates on a named custom predicate registered with the gate.
func RequirePredicate(name string) Requirement {
	return Requirement{Kind: ReqPredicate, Predicate: name}
}
