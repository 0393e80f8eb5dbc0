package repository

import (
	"context"
	"time"

	"tienda/internal/model"

	"gorm.io/gorm"
)

// PasswordResetRepository manages reset tokens. Tokens are single-use: the
// consuming update happens inside the same transaction that rewrites the
// user's credentials.
type PasswordResetRepository interface {
	Create(ctx context.Context, pr *model.PasswordReset) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.PasswordReset, error)
	MarkUsedTx(tx *gorm.DB, id uint) error
	Delete(ctx context.Context, id uint) error
	// DeleteExpired purges used or expired tokens; returns rows removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	DB() *gorm.DB
}

type passwordResetRepo struct{ db *gorm.DB }

func NewPasswordResetRepository(db *gorm.DB) PasswordResetRepository {
	return &passwordResetRepo{db: db}
}

func (r *passwordResetRepo) Create(ctx context.Context, pr *model.PasswordReset) error {
	return r.db.WithContext(ctx).Create(pr).Error
}

func (r *passwordResetRepo) FindByTokenHash(ctx context.Context, tokenHash string) (*model.PasswordReset, error) {
	var pr model.PasswordReset
	err := r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&pr).Error
	if err != nil {
		return nil, err
	}
	return &pr, nil
}

func (r *passwordResetRepo) MarkUsedTx(tx *gorm.DB, id uint) error {
	return tx.Model(&model.PasswordReset{}).Where("id = ?", id).Update("used", true).Error
}

func (r *passwordResetRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.PasswordReset{}, id).Error
}

func (r *passwordResetRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("used = true OR expires_at < ?", now).
		Delete(&model.PasswordReset{})
	return res.RowsAffected, res.Error
}

func (r *passwordResetRepo) DB() *gorm.DB { return r.db }
