package jwt

import (
	"errors"
	"fmt"
	"github.com/golang-jwt/jwt/v5"
	"time"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrEmptySubject = errors.New("token subject is empty")
)

// Generator issues and verifies HS256 tokens for API clients.
type Generator struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewGenerator(secret string, ttl time.Duration) *Generator {
	return &Generator{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (g *Generator) Generate(clientID string) (string, error) {
	const op = "lib.jwt.Generate"

	if clientID == "" {
		return "", fmt.Errorf("%s: %w", op, ErrEmptySubject)
	}

	now := g.now()
	claims := jwt.RegisteredClaims{
		Subject:  clientID,
		IssuedAt: jwt.NewNumericDate(now),
	}
	// zero ttl issues a token without expiry
	if g.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(g.ttl))
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return token, nil
}

// Parse validates the token and returns its subject.
func (g *Generator) Parse(tokenStr string) (string, error) {
	const op = "lib.jwt.Parse"

	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		return g.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%s: %w", op, ErrEmptySubject)
	}

	return claims.Subject, nil
}
