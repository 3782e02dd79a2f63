package turno

import (
	"context"

	"github.com/barberia-app/turnos-api/internal/audit"
	"github.com/barberia-app/turnos-api/internal/cache"
	domain "github.com/barberia-app/turnos-api/internal/domain/turno"
	"github.com/barberia-app/turnos-api/internal/models"
	"github.com/barberia-app/turnos-api/internal/timezone"
)

type CancelarTurno struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.Availability
	tz    string
}

func NewCancelarTurno(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.Availability,
	tz string,
) *CancelarTurno {
	return &CancelarTurno{
		repo:  repo,
		audit: audit,
		cache: cache,
		tz:    tz,
	}
}

// Execute cancela un turno. La cancelación es un cambio de estado, nunca
// un borrado: el historial queda.
func (uc *CancelarTurno) Execute(
	ctx context.Context,
	turnoID uint,
	usuarioID *uint,
) (*models.Turno, error) {

	ahora := timezone.NowIn(uc.tz)

	t, err := aplicarTransicion(ctx, uc.repo, turnoID, domain.EstadoCancelado, ahora)
	if err != nil {
		return nil, err
	}

	// El slot vuelve a estar libre de inmediato.
	uc.cache.Invalidate(ctx, t.Fecha)

	uc.audit.Dispatch(audit.Event{
		UsuarioID: usuarioID,
		Accion:    "turno_cancelado",
		Entidad:   "turno",
		EntidadID: &t.ID,
	})

	return t, nil
}
