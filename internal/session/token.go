package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of a session token
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Identity returns the account identity the token was issued for
func (c *Claims) Identity() string {
	return c.Subject
}

// Issuer signs and verifies HS256 session tokens
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer creates a token issuer. An empty secret is rejected.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New(ErrMsgEmptySecret)
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// TTL returns how long issued tokens stay valid
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue signs a token for identity with the given role
func (i *Issuer) Issue(identity, role string) (string, error) {
	now := i.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity,
			Issuer:    TokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Parse verifies tokenString and returns its claims
func (i *Issuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf(ErrMsgUnexpectedSigning, token.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithIssuer(TokenIssuer), jwt.WithTimeFunc(i.now))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, errors.New(ErrMsgInvalidToken)
	}
	return claims, nil
}
