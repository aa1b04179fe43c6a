package jwt

import (
	"github.com/golang-jwt/jwt"

	"sehra/internal/app/user"
)

// Payload defines the JWT claims issued to Sehra users. It embeds the
// standard claims (expiry, issued-at, issuer) and carries the identity
// fields the gateway and REST handlers authorize against.
type Payload struct {
	jwt.StandardClaims

	// UserID is the numeric directory id of the token holder.
	UserID int64 `json:"user_id"`

	// Email is the login identifier the token was issued for.
	Email string `json:"email"`

	// Role is the platform role at issue time (client, vendor, supervisor, admin).
	Role user.Role `json:"role"`
}
