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

type ReprogramarTurnoInput struct {
	TurnoID uint

	// Campos opcionales; nil mantiene el valor actual.
	BarberoID *uint
	Fecha     *string // ISO
	Hora      *string // "15:04"

	UsuarioID *uint
}

type ReprogramarTurno struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.Availability
	tz    string
}

func NewReprogramarTurno(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.Availability,
	tz string,
) *ReprogramarTurno {
	return &ReprogramarTurno{
		repo:  repo,
		audit: audit,
		cache: cache,
		tz:    tz,
	}
}

// Execute mueve fecha, hora o barbero de un turno reservado bajo el mismo
// resguardo de conflicto que una reserva nueva. Duración y precio quedan
// como se copiaron al reservar.
func (uc *ReprogramarTurno) Execute(
	ctx context.Context,
	in ReprogramarTurnoInput,
) (*models.Turno, error) {

	t, err := uc.repo.GetTurno(ctx, in.TurnoID)
	if err != nil {
		return nil, err
	}

	// Solo un turno reservado se puede mover; un terminal o pendiente no.
	if domain.Estado(t.Estado) != domain.EstadoReservado {
		return nil, httperr.ErrTransicion(t.Estado, string(domain.EstadoReservado))
	}

	fecha := t.Fecha
	if in.Fecha != nil {
		fecha, err = time.ParseInLocation("2006-01-02", *in.Fecha, time.UTC)
		if err != nil {
			return nil, httperr.ErrValidation("fecha_invalida")
		}
		fecha = domain.DiaUTC(fecha)
	}

	hora := t.Hora
	if in.Hora != nil {
		hora = *in.Hora
	}
	inicioMin, err := domain.ParseHora(hora)
	if err != nil {
		return nil, err
	}

	barberoID := t.BarberoID
	if in.BarberoID != nil {
		barberoID = in.BarberoID
	}
	if barberoID == nil {
		return nil, httperr.ErrValidation("barbero_requerido")
	}

	loc := timezone.Location(uc.tz)
	inicio := time.Date(
		fecha.Year(), fecha.Month(), fecha.Day(),
		inicioMin/60, inicioMin%60, 0, 0,
		loc,
	)
	if inicio.Before(timezone.NowIn(uc.tz)) {
		return nil, httperr.ErrValidation("fecha_pasada")
	}

	barbero, err := uc.repo.GetBarbero(ctx, *barberoID)
	if err != nil {
		return nil, err
	}

	pedido := domain.NuevoIntervalo(inicioMin, t.DuracionMin)

	apertura, cierre, abierto, err := ventanaLaboral(ctx, uc.repo, barbero.ID, fecha)
	if err != nil {
		return nil, err
	}
	if !abierto || !dentroDeVentana(pedido, apertura, cierre) {
		return nil, httperr.ErrValidation("fuera_de_horario")
	}

	fechaAnterior := t.Fecha

	if err := uc.repo.Reprogramar(ctx, t, barbero.ID, fecha, domain.FormatHora(inicioMin)); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, fechaAnterior)
	if !fecha.Equal(fechaAnterior) {
		uc.cache.Invalidate(ctx, fecha)
	}

	uc.audit.Dispatch(audit.Event{
		UsuarioID: in.UsuarioID,
		Accion:    "turno_reprogramado",
		Entidad:   "turno",
		EntidadID: &t.ID,
	})

	return t, nil
}
