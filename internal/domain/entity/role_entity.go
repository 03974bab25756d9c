package entity

// Role names used for coarse-grained authorization
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// DefaultRoles is assigned to every newly registered account
func DefaultRoles() []string {
	return []string{RoleUser}
}

// HasAnyRole reports whether held and required intersect.
// An empty required set never matches.
func HasAnyRole(held []string, required ...string) bool {
	for _, r := range required {
		for _, h := range held {
			if h == r {
				return true
			}
		}
	}
	return false
}
