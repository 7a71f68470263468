// Package session keeps server-side login sessions. Cookies only ever carry
// the encrypted form of a session token; see util.SessionCipher.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"asset-inventory/internal/logging"
	"asset-inventory/internal/models"
	"asset-inventory/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultTTL is how long a session stays valid after login.
const DefaultTTL = 30 * 24 * time.Hour

// Store creates, resolves and invalidates sessions.
//
// Expiry is lazy: an expired session is deleted the next time it is
// resolved. Sessions that are never presented again stay in the table.
type Store struct {
	db     *gorm.DB
	cipher *util.SessionCipher
	log    logging.Logger
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Store)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(db *gorm.DB, cipher *util.SessionCipher, log logging.Logger, opts ...Option) *Store {
	s := &Store{
		db:     db,
		cipher: cipher,
		log:    log.With("component", "session"),
		ttl:    DefaultTTL,
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// TTL is the lifetime given to new sessions.
func (s *Store) TTL() time.Duration { return s.ttl }

// Create persists a new session for userID and returns the raw token.
// Callers must encrypt it before handing it to a client.
func (s *Store) Create(ctx context.Context, userID uint) (string, error) {
	sess := models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.db.WithContext(ctx).Create(&sess).Error; err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return sess.Token, nil
}

// Issue creates a session and returns its encrypted token, ready for the cookie.
func (s *Store) Issue(ctx context.Context, userID uint) (string, error) {
	token, err := s.Create(ctx, userID)
	if err != nil {
		return "", err
	}
	enc, err := s.cipher.Encrypt(token)
	if err != nil {
		// the row is useless without a cookie pointing at it
		_ = s.deleteToken(ctx, token)
		return "", fmt.Errorf("encrypt session token: %w", err)
	}
	return enc, nil
}

// Resolve returns the user owning the session behind encrypted, or nil when
// the token does not decrypt, names no session, or names an expired one.
// An expired session is deleted. Only database failures return an error.
func (s *Store) Resolve(ctx context.Context, encrypted string) (*models.User, error) {
	if encrypted == "" {
		return nil, nil
	}
	token, err := s.cipher.Decrypt(encrypted)
	if err != nil {
		s.log.Debug(ctx, "session token rejected", "error", err)
		return nil, nil
	}

	var sess models.Session
	err = s.db.WithContext(ctx).Preload("User").Where("token = ?", token).First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}

	if sess.Expired(s.now()) {
		if err := s.deleteToken(ctx, token); err != nil {
			return nil, err
		}
		s.log.Info(ctx, "expired session removed", "user_id", sess.UserID)
		return nil, nil
	}
	return &sess.User, nil
}

// Invalidate deletes the session behind encrypted. Unreadable tokens and
// sessions that are already gone are not errors.
func (s *Store) Invalidate(ctx context.Context, encrypted string) error {
	if encrypted == "" {
		return nil
	}
	token, err := s.cipher.Decrypt(encrypted)
	if err != nil {
		return nil
	}
	return s.deleteToken(ctx, token)
}

// InvalidateOthers deletes every session of userID except the one behind
// keep. An unreadable keep drops them all.
func (s *Store) InvalidateOthers(ctx context.Context, userID uint, keep string) error {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if token, err := s.cipher.Decrypt(keep); err == nil {
		q = q.Where("token <> ?", token)
	}
	res := q.Delete(&models.Session{})
	if res.Error != nil {
		return fmt.Errorf("delete sessions: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		s.log.Info(ctx, "other sessions removed", "user_id", userID, "count", res.RowsAffected)
	}
	return nil
}

func (s *Store) deleteToken(ctx context.Context, token string) error {
	if err := s.db.WithContext(ctx).Where("token = ?", token).Delete(&models.Session{}).Error; err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
