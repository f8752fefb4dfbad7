package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cast"
)

const (
	accessTTL  = 15 * time.Minute
	refreshTTL = 12 * time.Hour
)

// Session is what a token says about its holder.
type Session struct {
	EmployeeID  int64    `json:"employee_id"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// Tokens signs and checks session tokens with one HMAC secret.
type Tokens struct {
	secret []byte
	now    func() time.Time
}

func NewTokens(secret string) *Tokens {
	return &Tokens{secret: []byte(secret), now: time.Now}
}

func (t *Tokens) GenerateTokens(s Session) (string, string, error) {
	access, err := t.sign(s, "access", accessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err := t.sign(s, "refresh", refreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (t *Tokens) sign(s Session, kind string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_role":   s.Role,
		"id":          s.EmployeeID,
		"permissions": s.Permissions,
		"token_type":  kind,
		"exp":         t.now().Add(ttl).Unix(),
	})
	return token.SignedString(t.secret)
}

// ValidateToken checks an access token and returns its session.
func (t *Tokens) ValidateToken(tokenString string) (Session, error) {
	return t.parse(tokenString, "access")
}

// RefreshTokens trades a refresh token for a new pair.
func (t *Tokens) RefreshTokens(oldRefreshToken string) (string, string, error) {
	s, err := t.parse(oldRefreshToken, "refresh")
	if err != nil {
		return "", "", fmt.Errorf("error parsing refresh token: %w", err)
	}
	return t.GenerateTokens(s)
}

func (t *Tokens) parse(tokenString, kind string) (Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now), jwt.WithExpirationRequired())
	if err != nil {
		return Session{}, fmt.Errorf("error parsing token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Session{}, errors.New("invalid token")
	}
	if claims["token_type"] != kind {
		return Session{}, fmt.Errorf("expected %s token", kind)
	}

	role, _ := claims["user_role"].(string)
	return Session{
		EmployeeID:  cast.ToInt64(claims["id"]),
		Role:        role,
		Permissions: cast.ToStringSlice(claims["permissions"]),
	}, nil
}
