package turno

import "github.com/barberia-app/turnos-api/internal/models"

// Ocupados proyecta los turnos a sus intervalos, ignorando estados que no
// bloquean agenda. Asume que todos pertenecen al mismo barbero y fecha.
func Ocupados(turnos []models.Turno) []Intervalo {
	out := make([]Intervalo, 0, len(turnos))
	for _, t := range turnos {
		if !EsActivo(Estado(t.Estado)) {
			continue
		}
		inicio, err := ParseHora(t.Hora)
		if err != nil {
			continue
		}
		out = append(out, NuevoIntervalo(inicio, t.DuracionMin))
	}
	return out
}
