package auth

import (
	"errors"
	"fmt"
	"time"

	"examprep/backend/models"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// TokenTTL applies to every issued token, signup and signin alike.
const TokenTTL = 7 * 24 * time.Hour

var (
	ErrEmptySecret   = errors.New("jwt secret must not be empty")
	ErrInvalidToken  = errors.New("invalid token")
	ErrMissingClaims = errors.New("token is missing id or role")
)

type Claims struct {
	AccountID string      `json:"id"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Identity is what a token is issued for.
type Identity struct {
	ID    uuid.UUID
	Email string
	Role  models.Role
}

type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string) (*TokenIssuer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &TokenIssuer{secret: []byte(secret), ttl: TokenTTL, now: time.Now}, nil
}

func (t *TokenIssuer) Issue(identity Identity) (string, error) {
	now := t.now()
	claims := Claims{
		AccountID: identity.ID.String(),
		Email:     identity.Email,
		Role:      identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.AccountID == "" || claims.Role == "" {
		return nil, ErrMissingClaims
	}
	return claims, nil
}

// UserID returns the id claim as a UUID.
func (c *Claims) UserID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.AccountID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad id claim", ErrInvalidToken)
	}
	return id, nil
}
