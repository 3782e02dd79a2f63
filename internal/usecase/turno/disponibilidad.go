package turno

import (
	"context"
	"time"

	"github.com/barberia-app/turnos-api/internal/cache"
	domain "github.com/barberia-app/turnos-api/internal/domain/turno"
	"github.com/barberia-app/turnos-api/internal/httperr"
	"github.com/barberia-app/turnos-api/internal/models"
	"github.com/barberia-app/turnos-api/internal/timezone"
)

type Disponibilidad struct {
	repo  domain.Repository
	cache *cache.Availability
	tz    string
}

func NewDisponibilidad(
	repo domain.Repository,
	cache *cache.Availability,
	tz string,
) *Disponibilidad {
	return &Disponibilidad{
		repo:  repo,
		cache: cache,
		tz:    tz,
	}
}

// Execute calcula los inicios libres para un servicio y fecha. Con
// barbero explícito devuelve una sola entrada; sin barbero, una por cada
// barbero activo. Lectura pura: puede devolver un slot que otra reserva
// concurrente acaba de consumir, el motor de reservas lo revalida.
func (uc *Disponibilidad) Execute(
	ctx context.Context,
	in domain.DisponibilidadInput,
) ([]domain.DisponibilidadBarbero, error) {

	servicio, err := uc.repo.GetServicio(ctx, in.ServicioID)
	if err != nil {
		return nil, err
	}

	fecha := domain.DiaUTC(in.Fecha)

	ahora := timezone.NowIn(uc.tz)
	hoy := domain.DiaUTC(ahora)
	if fecha.Before(hoy) {
		return nil, httperr.ErrValidation("fecha_pasada")
	}

	if slots, ok := uc.cache.Get(ctx, in.ServicioID, fecha, in.BarberoID); ok {
		return slots, nil
	}

	// Para el día actual se descartan inicios en o antes de la hora actual.
	minInicio := -1
	if fecha.Equal(hoy) {
		minInicio = ahora.Hour()*60 + ahora.Minute()
	}

	var barberos []models.Barbero
	if in.BarberoID != nil {
		b, err := uc.repo.GetBarbero(ctx, *in.BarberoID)
		if err != nil {
			return nil, err
		}
		barberos = []models.Barbero{*b}
	} else {
		barberos, err = uc.repo.ListBarberosActivos(ctx)
		if err != nil {
			return nil, err
		}
	}

	out := make([]domain.DisponibilidadBarbero, 0, len(barberos))
	for _, b := range barberos {
		slots, err := uc.slotsDelBarbero(ctx, b.ID, fecha, servicio.DuracionMin, minInicio)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.DisponibilidadBarbero{
			BarberoID: b.ID,
			Nombre:    b.Nombre,
			Slots:     slots,
		})
	}

	uc.cache.Set(ctx, in.ServicioID, fecha, in.BarberoID, out)

	return out, nil
}

func (uc *Disponibilidad) slotsDelBarbero(
	ctx context.Context,
	barberoID uint,
	fecha time.Time,
	duracionMin int,
	minInicio int,
) ([]string, error) {

	apertura, cierre, abierto, err := ventanaLaboral(ctx, uc.repo, barberoID, fecha)
	if err != nil {
		return nil, err
	}
	if !abierto {
		return []string{}, nil
	}

	activos, err := uc.repo.ListTurnosActivosDelDia(ctx, barberoID, fecha)
	if err != nil {
		return nil, err
	}

	return domain.SlotsLibres(
		apertura,
		cierre,
		duracionMin,
		domain.Ocupados(activos),
		minInicio,
	), nil
}
