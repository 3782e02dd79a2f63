package models

import "time"

type Turno struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Referencia pública usada por clientes sin cuenta.
	Codigo string `gorm:"size:36;uniqueIndex;not null" json:"codigo"`

	// Snapshot del cliente al momento de reservar, no una referencia viva.
	ClienteNombre   string `gorm:"size:100;not null" json:"cliente_nombre"`
	ClienteApellido string `gorm:"size:100;not null" json:"cliente_apellido"`
	ClienteEmail    string `gorm:"size:100" json:"cliente_email"`
	ClienteTelefono string `gorm:"size:20" json:"cliente_telefono"`

	ServicioID uint     `json:"servicio_id"`
	Servicio   Servicio `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"servicio"`

	// Nulo mientras el turno está pendiente de asignación.
	BarberoID *uint    `json:"barbero_id"`
	Barbero   *Barbero `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barbero,omitempty"`

	Fecha time.Time `gorm:"type:date" json:"fecha"`
	Hora  string    `gorm:"size:5;not null" json:"hora"`

	// Copiados del servicio al reservar; no se recalculan después.
	DuracionMin int     `json:"duracion_min"`
	Precio      float64 `json:"precio"`

	Estado string `gorm:"size:20;default:'reservado'" json:"estado"`

	CanceladoAt  *time.Time `json:"cancelado_at"`
	CompletadoAt *time.Time `json:"completado_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
