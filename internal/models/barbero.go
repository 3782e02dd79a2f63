package models

import "time"

type Barbero struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Nombre   string `gorm:"size:100;not null" json:"nombre"`
	Telefono string `gorm:"size:20" json:"telefono"`
	Activo   bool   `gorm:"default:true" json:"activo"`

	Horarios   []HorarioLaboral `gorm:"foreignKey:BarberoID" json:"horarios,omitempty"`
	DiasLibres []DiaLibre       `gorm:"foreignKey:BarberoID" json:"dias_libres,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
