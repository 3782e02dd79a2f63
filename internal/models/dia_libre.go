package models

import "time"

// DiaLibre marca una fecha puntual en la que el barbero no atiende,
// por encima de su horario semanal.
type DiaLibre struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BarberoID uint      `gorm:"index:idx_dia_libre_barbero_fecha,unique" json:"barbero_id"`
	Fecha     time.Time `gorm:"type:date;index:idx_dia_libre_barbero_fecha,unique" json:"fecha"`
	Motivo    string    `gorm:"size:100" json:"motivo"`

	CreatedAt time.Time `json:"created_at"`
}
