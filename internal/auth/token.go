package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpirado = errors.New("token expirado")
	ErrTokenInvalido = errors.New("token invalido")
)

// Claims are the custom claims embedded in every access token. Rol carries the
// API-level role ("user" | "admin"), never the DB value.
type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Rol    string `json:"rol"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 bearer tokens with a fixed expiry window.
type TokenIssuer struct {
	secret    []byte
	expireMin int
}

func NewTokenIssuer(secret string, expireMin int) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), expireMin: expireMin}
}

// ExpiresIn returns the token lifetime in seconds, as reported to clients.
func (t *TokenIssuer) ExpiresIn() int { return t.expireMin * 60 }

// Issue creates a signed token for the given user.
func (t *TokenIssuer) Issue(userID uint, email, rol string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		Rol:    rol,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(t.expireMin) * time.Minute)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify parses and validates a token, distinguishing expiry from any other
// failure so callers can report it precisely.
func (t *TokenIssuer) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpirado
		}
		return nil, ErrTokenInvalido
	}
	if !token.Valid {
		return nil, ErrTokenInvalido
	}
	return claims, nil
}
