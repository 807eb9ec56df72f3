package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalid = errors.New("invalid session token")
	ErrExpired = errors.New("session expired")
)

// Session is the authenticated identity passed into every service call.
// There is no ambient current-user state; handlers take the session from the
// request context and hand its UserID down explicitly.
type Session struct {
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
}

// TokenStore holds the currently valid token per user. Deleting the entry
// revokes the session before its JWT expiry.
type TokenStore interface {
	Set(ctx context.Context, userID uuid.UUID, token string, ttl time.Duration) error
	Get(ctx context.Context, userID uuid.UUID) (string, error)
	Del(ctx context.Context, userID uuid.UUID) error
}

// Manager issues and verifies sessions. Tokens are HS256 JWTs carrying the
// user id and expiry; the token store is the revocation source of truth, so
// logout takes effect immediately rather than at JWT expiry.
type Manager struct {
	secret []byte
	ttl    time.Duration
	store  TokenStore
}

func NewManager(secret []byte, ttl time.Duration, store TokenStore) *Manager {
	return &Manager{secret: secret, ttl: ttl, store: store}
}

func (m *Manager) Issue(ctx context.Context, userID uuid.UUID) (*Session, error) {
	expiresAt := time.Now().Add(m.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID.String(),
		"exp":     expiresAt.Unix(),
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}

	if err := m.store.Set(ctx, userID, signed, m.ttl); err != nil {
		return nil, fmt.Errorf("storing token: %w", err)
	}

	return &Session{UserID: userID, Token: signed, ExpiresAt: expiresAt}, nil
}

// Verify checks the token signature, expiry and revocation state, and
// returns the session it represents.
func (m *Manager) Verify(ctx context.Context, tokenStr string) (*Session, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Method.Alg())
		}

		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}

		return nil, ErrInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalid
	}

	rawID, ok := claims["user_id"].(string)
	if !ok {
		return nil, ErrInvalid
	}

	userID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, ErrInvalid
	}

	stored, err := m.store.Get(ctx, userID)
	if err != nil || stored != tokenStr {
		// Revoked, superseded by a newer login, or TTL lapsed.
		return nil, ErrExpired
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrInvalid
	}

	return &Session{UserID: userID, Token: tokenStr, ExpiresAt: exp.Time}, nil
}

func (m *Manager) Revoke(ctx context.Context, userID uuid.UUID) error {
	return m.store.Del(ctx, userID)
}
