package models

import "time"

// Usuario es la cuenta que opera el panel (dueño o barbero con login).
type Usuario struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Nombre       string `gorm:"size:100;not null" json:"nombre"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Rol          string `gorm:"size:20;default:'admin'" json:"rol"`

	// Presente cuando la cuenta pertenece a un barbero concreto.
	BarberoID *uint `json:"barbero_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
