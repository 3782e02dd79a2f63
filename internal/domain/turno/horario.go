package turno

import (
	"fmt"

	"github.com/barberia-app/turnos-api/internal/httperr"
)

// GranularidadMin es el paso entre inicios candidatos de turno.
const GranularidadMin = 15

// Intervalo es un rango semiabierto [Inicio, Fin) en minutos desde la
// medianoche del día del turno.
type Intervalo struct {
	Inicio int
	Fin    int
}

func NuevoIntervalo(inicioMin, duracionMin int) Intervalo {
	return Intervalo{Inicio: inicioMin, Fin: inicioMin + duracionMin}
}

func (i Intervalo) Solapa(otro Intervalo) bool {
	return i.Inicio < otro.Fin && i.Fin > otro.Inicio
}

// ParseHora convierte "HH:MM" a minutos desde medianoche.
func ParseHora(hm string) (int, error) {
	if len(hm) != 5 || hm[2] != ':' {
		return 0, httperr.ErrValidation("hora_invalida")
	}
	var h, m int
	if _, err := fmt.Sscanf(hm, "%02d:%02d", &h, &m); err != nil {
		return 0, httperr.ErrValidation("hora_invalida")
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, httperr.ErrValidation("hora_invalida")
	}
	return h*60 + m, nil
}

func FormatHora(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// SlotsLibres genera los inicios candidatos dentro de la ventana laboral,
// descartando los que se superponen con intervalos ocupados y los que
// empiezan en o antes de minInicio (usar -1 para no recortar).
//
// Los candidatos van de apertura a cierre-duracion con paso fijo.
func SlotsLibres(
	apertura, cierre, duracionMin int,
	ocupados []Intervalo,
	minInicio int,
) []string {

	slots := []string{}

	for inicio := apertura; inicio+duracionMin <= cierre; inicio += GranularidadMin {
		if inicio <= minInicio {
			continue
		}

		candidato := NuevoIntervalo(inicio, duracionMin)

		libre := true
		for _, oc := range ocupados {
			if candidato.Solapa(oc) {
				libre = false
				break
			}
		}

		if libre {
			slots = append(slots, FormatHora(inicio))
		}
	}

	return slots
}

// HayConflicto informa si el intervalo pedido se superpone con alguno de
// los ocupados.
func HayConflicto(pedido Intervalo, ocupados []Intervalo) bool {
	for _, oc := range ocupados {
		if pedido.Solapa(oc) {
			return true
		}
	}
	return false
}
