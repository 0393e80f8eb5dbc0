package model

import "time"

// Usuario stores registered accounts.
// Rol holds the DB-level role ("cliente" | "staff" | "admin"); the API speaks
// "user" | "admin" — translation happens in the auth package, never here.
type Usuario struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;size:120;not null"`
	Nombre       string `gorm:"size:100;not null"`
	PasswordHash []byte `gorm:"not null"`
	Salt         []byte `gorm:"not null"`
	Rol          string `gorm:"size:20;not null;default:'cliente'"`
	// PasswordResetRequired forces a reset flow before the next login succeeds.
	PasswordResetRequired bool `gorm:"not null;default:false"`
	CreadoEn              time.Time
}

// TableName keeps the Spanish table names the store already uses.
func (Usuario) TableName() string { return "usuarios" }
