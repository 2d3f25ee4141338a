package constants

// Role claim values accepted by the admin gate.
const (
	RoleAdmin = "admin"
)

// ClaimRole is the JWT claim carrying the caller's role.
const ClaimRole = "role"
