package turno

import "time"

// Límites de precio aceptados al reservar.
const (
	PrecioMin = 0
	PrecioMax = 1_000_000
)

// DiaUTC normaliza un instante al inicio de su día calendario en UTC,
// la forma canónica en que se persiste Fecha.
func DiaUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type DisponibilidadInput struct {
	ServicioID uint
	Fecha      time.Time
	// BarberoID opcional: nil consulta todos los barberos activos.
	BarberoID *uint
}

// DisponibilidadBarbero es la lista ordenada de inicios libres ("HH:MM")
// de un barbero para la fecha consultada.
type DisponibilidadBarbero struct {
	BarberoID uint     `json:"barbero_id"`
	Nombre    string   `json:"nombre"`
	Slots     []string `json:"slots"`
}
