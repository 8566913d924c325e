package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Роли в access токене. Учётные записи ведёт внешний сервис идентификации,
// движок обмена только проверяет подпись и читает клеймы.
const (
	RoleVendor = "vendor"
	RoleAdmin  = "admin"
)

// TokenManager отвечает за проверку JWT внешнего сервиса идентификации.
type TokenManager struct {
	secret    []byte
	accessTTL time.Duration
}

// NewTokenManager создаёт менеджер токенов.
func NewTokenManager(secret string, accessTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:    []byte(secret),
		accessTTL: accessTTL,
	}
}

// ParseAccess извлекает идентификатор продавца и роль из access токена.
func (m *TokenManager) ParseAccess(token string) (uuid.UUID, string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, "", err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, "", jwt.ErrTokenInvalidClaims
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, "", jwt.ErrTokenInvalidClaims
	}

	role, _ := claims["role"].(string)

	vendorID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, "", err
	}

	return vendorID, role, nil
}

// IssueAccess выпускает access токен. Используется локальными инструментами
// и тестами; в проде токены выпускает сервис идентификации тем же секретом.
func (m *TokenManager) IssueAccess(vendorID uuid.UUID, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  vendorID.String(),
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(m.accessTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}
