package auth

import (
	"errors"
	"time"

	"careerhub_backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Principal - аутентифицированный субъект запроса. Ядро доверяет email и
// роли из подписанного токена; проверка самой личности остается за внешним
// auth-слоем, выпускающим токен.
type Principal struct {
	Email string
	Role  models.UserRole
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.UserRoleAdmin
}

// Claims - полезная нагрузка JWT
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

var ErrInvalidToken = errors.New("invalid or expired token")

// GenerateToken выпускает подписанный HS256 токен
func GenerateToken(email string, role models.UserRole, secret string, ttl time.Duration) (string, error) {
	claims := &Claims{
		Email: email,
		Role:  string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken проверяет подпись и возвращает claims
func ParseToken(tokenStr, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// PrincipalFromClaims строит Principal из claims токена
func PrincipalFromClaims(claims *Claims) Principal {
	return Principal{
		Email: claims.Email,
		Role:  models.UserRole(claims.Role),
	}
}
