package models

import "time"

// HorarioLaboral define la ventana de trabajo de un barbero para un día
// de la semana (0 = domingo). Un día sin fila o con Activo=false se
// considera cerrado.
type HorarioLaboral struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	BarberoID uint `gorm:"index:idx_horario_barbero_dia,unique" json:"barbero_id"`

	DiaSemana int `gorm:"index:idx_horario_barbero_dia,unique" json:"dia_semana"`

	Apertura string `gorm:"size:5" json:"apertura"`
	Cierre   string `gorm:"size:5" json:"cierre"`
	Activo   bool   `json:"activo"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
