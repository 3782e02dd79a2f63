package turno

import "github.com/barberia-app/turnos-api/internal/httperr"

// ===============================
// Estados del Turno
// ===============================

type Estado string

const (
	// EstadoPendiente: pedido sin barbero asignado. No participa de los
	// chequeos de superposición hasta ser promovido a reservado.
	EstadoPendiente Estado = "pendiente"

	EstadoReservado  Estado = "reservado"
	EstadoCompletado Estado = "completado"
	EstadoCancelado  Estado = "cancelado"
)

func EsValido(e Estado) bool {
	switch e {
	case EstadoPendiente, EstadoReservado, EstadoCompletado, EstadoCancelado:
		return true
	}
	return false
}

// EsActivo indica si el estado cuenta para los chequeos de superposición.
func EsActivo(e Estado) bool {
	return e == EstadoReservado || e == EstadoCompletado
}

func EsTerminal(e Estado) bool {
	return e == EstadoCompletado || e == EstadoCancelado
}

// transiciones permitidas; todo lo demás es rechazado.
var transiciones = map[Estado][]Estado{
	EstadoPendiente: {EstadoReservado, EstadoCancelado},
	EstadoReservado: {EstadoCompletado, EstadoCancelado},
}

// ValidarTransicion rechaza con InvalidTransition cualquier movimiento
// fuera de la tabla, nombrando el estado actual y el pedido.
func ValidarTransicion(desde, hasta Estado) error {
	for _, permitido := range transiciones[desde] {
		if hasta == permitido {
			return nil
		}
	}
	return httperr.ErrTransicion(string(desde), string(hasta))
}

func EstadoInicial() Estado {
	return EstadoReservado
}
