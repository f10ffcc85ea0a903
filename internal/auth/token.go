package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenTypeSession = "session"

type Claims struct {
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

type SessionManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewSessionManager инициализирует менеджер сессионных токенов.
func NewSessionManager(secret string, issuer string, ttl time.Duration) *SessionManager {
	return &SessionManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// NewSessionToken выдает сессионный токен после успешного ввода PIN.
func (m *SessionManager) NewSessionToken() (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(m.ttl)

	claims := Claims{
		TokenType: tokenTypeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// ParseSessionToken валидирует сессионный токен и возвращает claims.
func (m *SessionManager) ParseSessionToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}), jwt.WithIssuer(m.issuer))
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("token is invalid")
	}

	if claims.TokenType != tokenTypeSession {
		return nil, errors.New("token type mismatch")
	}

	return claims, nil
}
