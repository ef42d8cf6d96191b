package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
	ErrInvalidAPIKey = errors.New("invalid api key")
)

// Claims carries the authenticated client identity. Identity management
// lives outside this service; tokens only name the client that exchanged
// an API key.
type Claims struct {
	Client string `json:"client"`
	jwt.RegisteredClaims
}

type TokenManager interface {
	// ExchangeAPIKey verifies key against the configured bcrypt hash and
	// returns a signed access token for clientName.
	ExchangeAPIKey(key, clientName string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type tokenManager struct {
	secret     []byte
	apiKeyHash []byte
	expiry     time.Duration
}

func NewTokenManager(secret, apiKeyHash string, expiryMinutes int) TokenManager {
	if expiryMinutes <= 0 {
		expiryMinutes = 60
	}
	return &tokenManager{
		secret:     []byte(secret),
		apiKeyHash: []byte(apiKeyHash),
		expiry:     time.Duration(expiryMinutes) * time.Minute,
	}
}

func (m *tokenManager) ExchangeAPIKey(key, clientName string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(m.apiKeyHash, []byte(key)); err != nil {
		return "", ErrInvalidAPIKey
	}
	now := time.Now()
	claims := Claims{
		Client: clientName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   clientName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *tokenManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
