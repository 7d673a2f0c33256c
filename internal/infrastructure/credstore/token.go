package credstore

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/innstack/hotel-ops/internal/core/domain"
)

const setupTokenTTL = 48 * time.Hour

// TokenIssuer signs HS256 session and password-setup tokens.
type TokenIssuer struct {
	secret   string
	tokenTTL time.Duration
}

func NewTokenIssuer(secret string, tokenTTL time.Duration) *TokenIssuer {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &TokenIssuer{secret: secret, tokenTTL: tokenTTL}
}

// Sign issues a bearer token carrying the user's session claims.
func (t *TokenIssuer) Sign(user *domain.User) (*domain.Session, error) {
	expiresAt := time.Now().Add(t.tokenTTL)
	claims := jwt.MapClaims{
		"sub":              user.ID,
		"email":            user.Email,
		"name":             user.Name,
		"role":             string(user.Role),
		"hotel_id":         user.HotelID,
		"room_number":      user.RoomNumber,
		"can_manage_rooms": user.CanManageRooms,
		"can_manage_staff": user.CanManageStaff,
		"exp":              expiresAt.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(t.secret))
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	return &domain.Session{
		Token:     token,
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: expiresAt,
	}, nil
}

// SignSetup issues a single-purpose token embedded in the setup email.
func (t *TokenIssuer) SignSetup(email string) (string, error) {
	claims := jwt.MapClaims{
		"purpose": "password_setup",
		"email":   email,
		"exp":     time.Now().Add(setupTokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(t.secret))
	if err != nil {
		return "", fmt.Errorf("sign setup token: %w", err)
	}
	return token, nil
}

// VerifySetup validates a setup token and returns the email it was issued for.
func (t *TokenIssuer) VerifySetup(token string) (string, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(tok *jwt.Token) (interface{}, error) {
		if tok.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(t.secret), nil
	})
	if err != nil || !parsed.Valid {
		return "", domain.ErrInvalidSetupToken
	}
	if claims["purpose"] != "password_setup" {
		return "", domain.ErrInvalidSetupToken
	}
	email, _ := claims["email"].(string)
	if email == "" {
		return "", domain.ErrInvalidSetupToken
	}
	return email, nil
}
