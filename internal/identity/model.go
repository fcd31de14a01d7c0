package identity

import "time"

// Roles assignable to an account.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a registered storefront account, keyed by normalized email.
type User struct {
	Email        string
	PasswordHash []byte
	Role         string
	CreatedAt    time.Time
}

// Credentials is a login or registration request.
type Credentials struct {
	Email    string
	Password string
}
