package turno

import (
	"context"

	"github.com/barberia-app/turnos-api/internal/audit"
	domain "github.com/barberia-app/turnos-api/internal/domain/turno"
	"github.com/barberia-app/turnos-api/internal/models"
	"github.com/barberia-app/turnos-api/internal/timezone"
)

type CompletarTurno struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	tz    string
}

func NewCompletarTurno(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *CompletarTurno {
	return &CompletarTurno{
		repo:  repo,
		audit: audit,
		tz:    tz,
	}
}

func (uc *CompletarTurno) Execute(
	ctx context.Context,
	turnoID uint,
	usuarioID *uint,
) (*models.Turno, error) {

	ahora := timezone.NowIn(uc.tz)

	t, err := aplicarTransicion(ctx, uc.repo, turnoID, domain.EstadoCompletado, ahora)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UsuarioID: usuarioID,
		Accion:    "turno_completado",
		Entidad:   "turno",
		EntidadID: &t.ID,
	})

	return t, nil
}
