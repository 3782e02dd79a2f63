package turno

import (
	"context"
	"time"

	"github.com/barberia-app/turnos-api/internal/audit"
	"github.com/barberia-app/turnos-api/internal/cache"
	domain "github.com/barberia-app/turnos-api/internal/domain/turno"
	"github.com/barberia-app/turnos-api/internal/httperr"
	"github.com/barberia-app/turnos-api/internal/models"
	"github.com/barberia-app/turnos-api/internal/timezone"
)

type AsignarBarbero struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.Availability
	tz    string
}

func NewAsignarBarbero(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.Availability,
	tz string,
) *AsignarBarbero {
	return &AsignarBarbero{
		repo:  repo,
		audit: audit,
		cache: cache,
		tz:    tz,
	}
}

// Execute promueve un turno pendiente a reservado. Con barberoID nil se
// asigna automáticamente. Recién acá el turno queda cubierto por la
// garantía de no superposición.
func (uc *AsignarBarbero) Execute(
	ctx context.Context,
	turnoID uint,
	barberoID *uint,
	usuarioID *uint,
) (*models.Turno, error) {

	t, err := uc.repo.GetTurno(ctx, turnoID)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidarTransicion(
		domain.Estado(t.Estado),
		domain.EstadoReservado,
	); err != nil {
		return nil, err
	}

	// El pedido pudo quedar viejo mientras esperaba asignación.
	inicioMin, err := domain.ParseHora(t.Hora)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(uc.tz)
	inicio := time.Date(
		t.Fecha.Year(), t.Fecha.Month(), t.Fecha.Day(),
		inicioMin/60, inicioMin%60, 0, 0,
		loc,
	)
	if inicio.Before(timezone.NowIn(uc.tz)) {
		return nil, httperr.ErrValidation("fecha_pasada")
	}

	pedido := domain.NuevoIntervalo(inicioMin, t.DuracionMin)

	var elegido uint
	if barberoID != nil {
		barbero, err := uc.repo.GetBarbero(ctx, *barberoID)
		if err != nil {
			return nil, err
		}

		apertura, cierre, abierto, err := ventanaLaboral(ctx, uc.repo, barbero.ID, t.Fecha)
		if err != nil {
			return nil, err
		}
		if !abierto || !dentroDeVentana(pedido, apertura, cierre) {
			return nil, httperr.ErrValidation("fuera_de_horario")
		}
		elegido = barbero.ID
	} else {
		candidatos, err := candidatosPara(ctx, uc.repo, t.Fecha, pedido)
		if err != nil {
			return nil, err
		}

		var ok bool
		elegido, ok = domain.ElegirBarbero(candidatos, pedido)
		if !ok {
			return nil, httperr.ErrConflict("sin_barbero_disponible")
		}
	}

	if err := uc.repo.PromoverPendiente(ctx, t, elegido); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, t.Fecha)

	uc.audit.Dispatch(audit.Event{
		UsuarioID: usuarioID,
		Accion:    "turno_asignado",
		Entidad:   "turno",
		EntidadID: &t.ID,
		Metadata:  map[string]any{"barbero_id": elegido},
	})

	return t, nil
}
