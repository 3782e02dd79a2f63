package models

import "time"

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UsuarioID *uint  `json:"usuario_id"`
	Accion    string `gorm:"size:50;not null" json:"accion"`

	Entidad   string `gorm:"size:50" json:"entidad"`
	EntidadID *uint  `json:"entidad_id"`
	Metadata  string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}
