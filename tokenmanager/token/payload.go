package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Payload is the claim set carried by issued tokens: the subject email plus
// the standard issued-at / expiry claims.
type Payload struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func NewPayload(email string, duration time.Duration) *Payload {
	now := time.Now()
	return &Payload{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
		},
	}
}
