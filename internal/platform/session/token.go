package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// signToken wraps a session ID in a signed JWT so the cookie value is
// tamper-evident. The store remains authoritative; the token only names the
// record to look up.
func signToken(secret []byte, sessionID string, expiresAt time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        sessionID,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// parseToken validates the signature and expiry and returns the session ID.
func parseToken(secret []byte, tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse session token: %w", err)
	}
	if !token.Valid || claims.ID == "" {
		return "", fmt.Errorf("invalid session token")
	}
	return claims.ID, nil
}
