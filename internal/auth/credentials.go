// Package auth implements the credential service: password hashing and the
// signed tokens that identify a caller on every request.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/solace-app/backend/internal/apperr"
)

// Token lifetimes. Login and registration tokens deliberately keep their
// different expiries; the registration token only needs to cover the
// first-session window before the user logs in properly.
const (
	LoginTokenTTL        = 24 * time.Hour
	RegistrationTokenTTL = time.Hour
)

const bcryptCost = 10

// Claims are the custom claims carried by every issued token.
type Claims struct {
	UserID      string `json:"userId"`
	PhoneNumber string `json:"phoneNumber"`
	jwt.RegisteredClaims
}

// Credentials hashes passwords and issues/verifies signed tokens.
type Credentials struct {
	secret []byte
}

// NewCredentials creates a Credentials service signing with secret.
func NewCredentials(secret string) *Credentials {
	return &Credentials{secret: []byte(secret)}
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", apperr.Wrap(apperr.Dependency, "failed to hash password", err)
	}
	return string(hash), nil
}

// CheckPassword compares a stored hash against a plaintext password,
// returning an Authentication error on mismatch.
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return apperr.Wrap(apperr.Authentication, "Invalid credentials", err)
	}
	return nil
}

// IssueLoginToken issues a 24h token after a successful login.
func (c *Credentials) IssueLoginToken(userID, phoneNumber string) (string, error) {
	return c.issue(userID, phoneNumber, LoginTokenTTL)
}

// IssueRegistrationToken issues the short-lived token returned by
// registration.
func (c *Credentials) IssueRegistrationToken(userID, phoneNumber string) (string, error) {
	return c.issue(userID, phoneNumber, RegistrationTokenTTL)
}

func (c *Credentials) issue(userID, phoneNumber string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:      userID,
		PhoneNumber: phoneNumber,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", apperr.Wrap(apperr.Dependency, "failed to sign token", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning its claims.
func (c *Credentials) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.New(apperr.Authentication, "Unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.Authentication, "Invalid Token", err)
	}
	if !token.Valid {
		return nil, apperr.New(apperr.Authentication, "Invalid Token")
	}
	return claims, nil
}
