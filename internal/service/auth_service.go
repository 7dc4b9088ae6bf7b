package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"branch-dashboard/internal/model"
	"branch-dashboard/internal/shared"
)

// Claims carries the authenticated user's identity inside the session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID   uint     `json:"uid"`
	Initials string   `json:"initials"`
	Roles    []string `json:"roles"`
	IsAdmin  bool     `json:"isAdmin"`
}

// AuthService exchanges a PIN for a signed session token and validates tokens
// on subsequent requests.
type AuthService struct {
	users    *UserService
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(users *UserService, secret []byte, tokenTTL time.Duration) *AuthService {
	return &AuthService{users: users, secret: secret, tokenTTL: tokenTTL}
}

// Login resolves the PIN to a user and issues a token.
func (s *AuthService) Login(ctx context.Context, pin string) (string, *model.User, error) {
	user, err := s.users.FindByPIN(ctx, pin)
	if err != nil {
		return "", nil, err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
		},
		UserID:   user.ID,
		Initials: user.Initials,
		Roles:    user.RoleList(),
		IsAdmin:  user.IsAdmin,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, user, nil
}

// ParseToken validates a session token and returns its claims.
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, shared.ErrInvalidToken
	}
	if !token.Valid {
		return nil, shared.ErrInvalidToken
	}
	return claims, nil
}
