package helpers

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims is the signed session cookie payload. Subject carries the
// submitter identity: a persistent user id for accounts, a random id for
// guest sessions.
type SessionClaims struct {
	Username string `json:"username,omitempty"`
	Admin    bool   `json:"admin,omitempty"`
	Guest    bool   `json:"guest,omitempty"`
	jwt.RegisteredClaims
}

func (sc *SessionClaims) IsAdmin() bool {
	return sc.Admin
}

func (sc *SessionClaims) IsGuest() bool {
	return sc.Guest
}

// SubmitterID is the identity recorded on photos and reviews.
func (sc *SessionClaims) SubmitterID() string {
	return sc.Subject
}

// UserID extracts the account id from the subject. Guest sessions have no
// account behind them and report false.
func (sc *SessionClaims) UserID() (uint, bool) {
	var id uint
	if _, err := fmt.Sscanf(sc.Subject, "user:%d", &id); err != nil {
		return 0, false
	}
	return id, true
}

// NewUserClaims builds claims for an authenticated account session.
func NewUserClaims(userID uint, username string, admin bool, ttl time.Duration) *SessionClaims {
	now := time.Now()
	return &SessionClaims{
		Username: username,
		Admin:    admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("user:%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// NewGuestClaims mints an ephemeral session identity for deployments without
// accounts. A well-known admin marker may still be granted at login.
func NewGuestClaims(ttl time.Duration) *SessionClaims {
	now := time.Now()
	return &SessionClaims{
		Guest: true,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "session:" + uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

func SignSession(claims *SessionClaims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, nil
}

func ParseSession(tokenStr, secret string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("session validation failed: %w", err)
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid or expired session")
	}
	return claims, nil
}
