package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const minSymmetricKeySize = 32

// JWTMaker issues and verifies HS256-signed bearer tokens.
type JWTMaker struct {
	symmetricKey []byte
}

func NewJWTMaker(symmetricKey string) (*JWTMaker, error) {
	if len(symmetricKey) < minSymmetricKeySize {
		return nil, fmt.Errorf("invalid key size: must be at least %d characters", minSymmetricKeySize)
	}

	return &JWTMaker{symmetricKey: []byte(symmetricKey)}, nil
}

func (maker *JWTMaker) CreateToken(email string, duration time.Duration) (string, *Payload, error) {
	payload := NewPayload(email, duration)

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	signed, err := jwtToken.SignedString(maker.symmetricKey)
	return signed, payload, err
}

func (maker *JWTMaker) VerifyToken(token string) (*Payload, error) {
	keyFunc := func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return maker.symmetricKey, nil
	}

	parsed, err := jwt.ParseWithClaims(token, &Payload{}, keyFunc)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	payload, ok := parsed.Claims.(*Payload)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return payload, nil
}
