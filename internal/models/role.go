package models

// Role identifies the author of a conversation turn. The stored casing
// is canonical; any external service that wants a different label set
// maps at its own boundary (see internal/clients).
type Role string

const (
	RoleUser Role = "user"
	RoleAI   Role = "ai"
)

// Valid reports whether r belongs to the closed role set.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAI
}
