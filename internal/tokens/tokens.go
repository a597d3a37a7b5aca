package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL bounds how long an issued session token stays valid. There is
// no server-side revocation; deactivating a user does not invalidate tokens
// already in the wild.
const SessionTTL = 30 * 24 * time.Hour

type SessionClaims struct {
	Role  string  `json:"role"`
	Email string  `json:"email"`
	Name  *string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

func SignSession(userID, role, email string, name *string, secret []byte, now time.Time) (string, error) {
	claims := SessionClaims{
		Role:  role,
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func SessionClaimsFromToken(tokenStr string, secret []byte) (*SessionClaims, error) {
	var claims SessionClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, err
	}
	return &claims, nil
}
