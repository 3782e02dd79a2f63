package models

import "time"

type Servicio struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Nombre      string `gorm:"size:100;not null" json:"nombre"`
	Descripcion string `gorm:"size:255" json:"descripcion"`

	DuracionMin int     `json:"duracion_min"`
	PrecioBase  float64 `json:"precio_base"`
	Activo      bool    `gorm:"default:true" json:"activo"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
