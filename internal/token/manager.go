// Package token issues and verifies the access/refresh token pair. Both
// tokens are HS256-signed JWTs whose claims carry only the user id; no role
// or permission data rides in a token, standing is always re-derived from
// the ownership edges at call time.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"taskdeck/internal/apperr"
)

const (
	AccessTokenTTL = time.Hour
	// RefreshTokenDays is the refresh lifetime in whole days; the cookie
	// expiry handed to clients is derived from the same constant.
	RefreshTokenDays = 60
	RefreshTokenTTL  = RefreshTokenDays * 24 * time.Hour
)

type Claims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

// Pair is one issued access/refresh token set.
type Pair struct {
	AccessToken      string    `json:"accessToken"`
	RefreshToken     string    `json:"refreshToken"`
	RefreshExpiresAt time.Time `json:"refreshExpiresAt"`
}

type Manager struct {
	secret []byte
	now    func() time.Time
}

func NewManager(secret []byte) *Manager {
	return &Manager{secret: secret, now: time.Now}
}

// WithClock overrides the issuance clock. Verification always uses the
// real clock, so tests can mint already-expired tokens.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// IssuePair signs a fresh access/refresh pair for the user. Signing is
// all-or-nothing: a failure on either token issues neither.
func (m *Manager) IssuePair(userID int) (Pair, error) {
	now := m.now()

	access, err := m.sign(userID, now, now.Add(AccessTokenTTL))
	if err != nil {
		return Pair{}, apperr.Wrap(apperr.Internal, "signing access token", err)
	}

	refreshExpiry := now.Add(RefreshTokenTTL)
	refresh, err := m.sign(userID, now, refreshExpiry)
	if err != nil {
		return Pair{}, apperr.Wrap(apperr.Internal, "signing refresh token", err)
	}

	return Pair{
		AccessToken:      access,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExpiry,
	}, nil
}

func (m *Manager) sign(userID int, issuedAt, expiresAt time.Time) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify checks signature and expiry and returns the user id the token was
// bound to. Any failure collapses to a single Unauthenticated error; the
// caller cannot tell a forged token from a stale one.
func (m *Manager) Verify(raw string) (int, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !tok.Valid {
		return 0, apperr.New(apperr.Unauthenticated, "invalid or expired token")
	}
	if claims.UserID <= 0 {
		return 0, apperr.New(apperr.Unauthenticated, "token carries no user")
	}
	return claims.UserID, nil
}
