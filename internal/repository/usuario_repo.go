package repository

import (
	"context"

	"tienda/internal/model"

	"gorm.io/gorm"
)

// UsuarioRepository defines the data access contract for accounts.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type UsuarioRepository interface {
	Create(ctx context.Context, u *model.Usuario) error
	FindByEmail(ctx context.Context, email string) (*model.Usuario, error)
	FindByID(ctx context.Context, id uint) (*model.Usuario, error)

	// UpdateCredentialsTx swaps the stored hash/salt and clears the
	// password_reset_required flag. Callers must pass the tx instance.
	UpdateCredentialsTx(tx *gorm.DB, id uint, hash, salt []byte) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type usuarioRepo struct{ db *gorm.DB }

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db: db} }

func (r *usuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *usuarioRepo) FindByEmail(ctx context.Context, email string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) FindByID(ctx context.Context, id uint) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).First(&u, id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) UpdateCredentialsTx(tx *gorm.DB, id uint, hash, salt []byte) error {
	return tx.Model(&model.Usuario{}).Where("id = ?", id).Updates(map[string]interface{}{
		"password_hash":           hash,
		"salt":                    salt,
		"password_reset_required": false,
	}).Error
}

func (r *usuarioRepo) DB() *gorm.DB { return r.db }
