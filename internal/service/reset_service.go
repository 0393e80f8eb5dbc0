package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"tienda/internal/auth"
	"tienda/internal/model"
	"tienda/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ResetNotifier delivers the reset email out of band. The worker dispatcher
// implements it; tests stub it.
type ResetNotifier interface {
	EnqueueResetEmail(ctx context.Context, email, nombre, token string) error
}

// ResetService implements the password-reset flow: request a token, consume it
// exactly once. The raw token is never stored — only its SHA-256 hash.
type ResetService interface {
	// RequestReset never reveals whether the account exists; it reports
	// success regardless (anti-enumeration).
	RequestReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type resetService struct {
	users    repository.UsuarioRepository
	resets   repository.PasswordResetRepository
	notifier ResetNotifier
	ttl      time.Duration
}

func NewResetService(
	users repository.UsuarioRepository,
	resets repository.PasswordResetRepository,
	notifier ResetNotifier,
	ttlMinutes int,
) ResetService {
	return &resetService{
		users:    users,
		resets:   resets,
		notifier: notifier,
		ttl:      time.Duration(ttlMinutes) * time.Minute,
	}
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func newResetToken() (string, error) {
	raw := make([]byte, 36)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func (s *resetService) RequestReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		// Unknown account: same outcome as success, nothing leaks.
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error().Err(err).Msg("reset: lookup failed")
		}
		return nil
	}

	token, err := newResetToken()
	if err != nil {
		log.Error().Err(err).Msg("reset: token generation failed")
		return nil
	}

	pr := &model.PasswordReset{
		UserID:    user.ID,
		TokenHash: hashResetToken(token),
		ExpiresAt: time.Now().UTC().Add(s.ttl),
	}
	if err := s.resets.Create(ctx, pr); err != nil {
		log.Error().Err(err).Uint("user_id", user.ID).Msg("reset: persist token failed")
		return nil
	}

	if s.notifier != nil {
		if err := s.notifier.EnqueueResetEmail(ctx, user.Email, user.Nombre, token); err != nil {
			log.Error().Err(err).Uint("user_id", user.ID).Msg("reset: enqueue email failed")
		}
	}
	return nil
}

func (s *resetService) ResetPassword(ctx context.Context, token, newPassword string) error {
	pr, err := s.resets.FindByTokenHash(ctx, hashResetToken(token))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTokenReset
		}
		return err
	}
	if pr.Used {
		return ErrTokenReset
	}
	if time.Now().UTC().After(pr.ExpiresAt) {
		// Expired: remove eagerly, the cleanup cron would get it anyway.
		if delErr := s.resets.Delete(ctx, pr.ID); delErr != nil {
			log.Warn().Err(delErr).Uint("reset_id", pr.ID).Msg("reset: purge expired token failed")
		}
		return ErrTokenReset
	}

	hash, salt, err := auth.HashPassword(newPassword, nil)
	if err != nil {
		return err
	}

	// Credential swap and token consumption commit together or not at all.
	return runTx(ctx, s.resets.DB(), func(tx *gorm.DB) error {
		if err := s.users.UpdateCredentialsTx(tx, pr.UserID, hash, salt); err != nil {
			return err
		}
		return s.resets.MarkUsedTx(tx, pr.ID)
	})
}
