package auth

import (
	"context"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	RoleUser  = "user"
	RoleStaff = "staff"
)

var JWTKey = jwtKey()

func jwtKey() []byte {
	if key := os.Getenv("JWT_KEY"); key != "" {
		return []byte(key)
	}
	return []byte("store-service-secret")
}

type Claims struct {
	Profile struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	} `json:"profile"`
	jwt.RegisteredClaims
}

// NewToken signs an HS256 token carrying the username and role.
func NewToken(username, role string, ttl time.Duration) (string, time.Time, error) {
	expiresAt := time.Now().Add(ttl)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	claims.Profile.Username = username
	claims.Profile.Role = role

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(JWTKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

type ctxKey int

const (
	userNameKey ctxKey = iota + 1
	userRoleKey
)

func SetAuthContext(ctx context.Context, username, role string) context.Context {
	ctx = context.WithValue(ctx, userNameKey, username)
	return context.WithValue(ctx, userRoleKey, role)
}

func GetUserName(ctx context.Context) (string, error) {
	name, ok := ctx.Value(userNameKey).(string)
	if !ok || name == "" {
		return "", errors.New("no authenticated user in context")
	}
	return name, nil
}

func GetUserRole(ctx context.Context) string {
	role, _ := ctx.Value(userRoleKey).(string)
	return role
}
