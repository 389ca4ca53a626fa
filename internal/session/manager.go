package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hospital-gin/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the cookie carrying the signed session token.
const CookieName = "hospital_session"

// ErrInvalidToken covers every reason a token does not resolve to a live session.
var ErrInvalidToken = errors.New("invalid session token")

// Principal is the authenticated identity attached to a request.
type Principal struct {
	UserID    uint
	Role      models.Role
	SessionID string
}

// Manager issues and resolves session tokens. The cookie value is an HS256
// JWT whose only meaningful claim is the opaque session id; the identity
// itself stays in the Store.
type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(store Store, secret string, ttl time.Duration) *Manager {
	return &Manager{
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL is the lifetime of newly issued sessions.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue stores a new session for user and returns its signed token.
func (m *Manager) Issue(ctx context.Context, user *models.User) (string, *models.Session, error) {
	if !user.Role.Valid() {
		return "", nil, fmt.Errorf("issue session: unknown role %q", user.Role)
	}
	now := m.now()
	sess := &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Role:      user.Role,
		ExpiresAt: now.Add(m.ttl),
		CreatedAt: now,
	}
	if err := m.store.Save(ctx, sess); err != nil {
		return "", nil, fmt.Errorf("save session: %w", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        sess.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session: %w", err)
	}
	return signed, sess, nil
}

// sessionID verifies the token signature and expiry and returns the session id.
func (m *Manager) sessionID(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil || !parsed.Valid || claims.ID == "" {
		return "", ErrInvalidToken
	}
	return claims.ID, nil
}

// Resolve maps a token to its principal. Any failure is ErrInvalidToken
// except storage errors, which are returned as is.
func (m *Manager) Resolve(ctx context.Context, token string) (*Principal, error) {
	id, err := m.sessionID(token)
	if err != nil {
		return nil, err
	}
	sess, err := m.store.Load(ctx, id)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	if sess.Expired(m.now()) {
		_ = m.store.Delete(ctx, id)
		return nil, ErrInvalidToken
	}
	return &Principal{UserID: sess.UserID, Role: sess.Role, SessionID: sess.ID}, nil
}

// Revoke deletes the session behind token. Unknown or invalid tokens are ignored.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	id, err := m.sessionID(token)
	if err != nil {
		return nil
	}
	return m.store.Delete(ctx, id)
}

// RevokeUser deletes every session of the user.
func (m *Manager) RevokeUser(ctx context.Context, userID uint) error {
	return m.store.DeleteUser(ctx, userID)
}
