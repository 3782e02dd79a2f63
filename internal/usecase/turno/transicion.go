package turno

import (
	"context"
	"time"

	domain "github.com/barberia-app/turnos-api/internal/domain/turno"
	"github.com/barberia-app/turnos-api/internal/httperr"
	"github.com/barberia-app/turnos-api/internal/models"
)

// aplicarTransicion ejecuta una transición con guarda optimista sobre el
// estado persistido. Ante una carrera perdida se relee y reintenta una
// única vez antes de devolver Conflict (o InvalidTransition si el otro
// escritor dejó el turno en un estado que ya no admite el cambio).
func aplicarTransicion(
	ctx context.Context,
	repo domain.Repository,
	id uint,
	hasta domain.Estado,
	ahora time.Time,
) (*models.Turno, error) {

	t, err := repo.GetTurno(ctx, id)
	if err != nil {
		return nil, err
	}

	for intento := 0; intento < 2; intento++ {
		desde := domain.Estado(t.Estado)

		if err := domain.ValidarTransicion(desde, hasta); err != nil {
			return nil, err
		}

		ok, err := repo.ActualizarEstado(ctx, id, desde, hasta, ahora)
		if err != nil {
			return nil, err
		}
		if ok {
			aplicarLocal(t, hasta, ahora)
			return t, nil
		}

		// Otro escritor ganó; releer y decidir con el estado real.
		t, err = repo.GetTurno(ctx, id)
		if err != nil {
			return nil, err
		}
	}

	return nil, httperr.ErrConflict("turno_modificado")
}

func aplicarLocal(t *models.Turno, hasta domain.Estado, ahora time.Time) {
	t.Estado = string(hasta)
	switch hasta {
	case domain.EstadoCancelado:
		t.CanceladoAt = &ahora
	case domain.EstadoCompletado:
		t.CompletadoAt = &ahora
	}
}
