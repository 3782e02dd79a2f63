package turno

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/barberia-app/turnos-api/internal/audit"
	"github.com/barberia-app/turnos-api/internal/cache"
	domain "github.com/barberia-app/turnos-api/internal/domain/turno"
	"github.com/barberia-app/turnos-api/internal/httperr"
	"github.com/barberia-app/turnos-api/internal/models"
	"github.com/barberia-app/turnos-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CrearTurnoInput struct {
	ClienteNombre   string
	ClienteApellido string
	ClienteEmail    string
	ClienteTelefono string

	ServicioID uint

	// BarberoID nil pide asignación automática.
	BarberoID *uint

	// AsignacionDiferida crea el turno en pendiente, sin barbero y sin
	// garantía de superposición, para asignarlo después.
	AsignacionDiferida bool

	Fecha  string // ISO, "2006-01-02"
	Hora   string // "15:04"
	Precio float64

	UsuarioID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CrearTurno struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.Availability
	tz    string
}

func NewCrearTurno(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache *cache.Availability,
	tz string,
) *CrearTurno {
	return &CrearTurno{
		repo:  repo,
		audit: audit,
		cache: cache,
		tz:    tz,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute es la última línea de defensa: aunque la capa de validación ya
// revisó la forma del pedido, acá se rederiva la duración del servicio y
// se revalidan los invariantes temporales y de superposición, porque una
// consulta de disponibilidad previa puede haber quedado vieja.
func (uc *CrearTurno) Execute(
	ctx context.Context,
	in CrearTurnoInput,
) (*models.Turno, error) {

	servicio, err := uc.repo.GetServicio(ctx, in.ServicioID)
	if err != nil {
		return nil, err
	}
	if !servicio.Activo {
		return nil, httperr.ErrNotFound("servicio_no_encontrado")
	}

	fecha, err := time.ParseInLocation("2006-01-02", in.Fecha, time.UTC)
	if err != nil {
		return nil, httperr.ErrValidation("fecha_invalida")
	}
	fecha = domain.DiaUTC(fecha)

	inicioMin, err := domain.ParseHora(in.Hora)
	if err != nil {
		return nil, err
	}

	if in.Precio < domain.PrecioMin || in.Precio > domain.PrecioMax {
		return nil, httperr.ErrValidation("precio_fuera_de_rango")
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

	pedido := domain.NuevoIntervalo(inicioMin, servicio.DuracionMin)

	t := &models.Turno{
		Codigo:          uuid.NewString(),
		ClienteNombre:   in.ClienteNombre,
		ClienteApellido: in.ClienteApellido,
		ClienteEmail:    in.ClienteEmail,
		ClienteTelefono: in.ClienteTelefono,
		ServicioID:      servicio.ID,
		Fecha:           fecha,
		Hora:            domain.FormatHora(inicioMin),
		DuracionMin:     servicio.DuracionMin,
		Precio:          in.Precio,
		Estado:          string(domain.EstadoInicial()),
	}

	switch {
	case in.BarberoID != nil:
		barbero, err := uc.repo.GetBarbero(ctx, *in.BarberoID)
		if err != nil {
			return nil, err
		}

		apertura, cierre, abierto, err := ventanaLaboral(ctx, uc.repo, barbero.ID, fecha)
		if err != nil {
			return nil, err
		}
		if !abierto || !dentroDeVentana(pedido, apertura, cierre) {
			return nil, httperr.ErrValidation("fuera_de_horario")
		}

		t.BarberoID = &barbero.ID

	case in.AsignacionDiferida:
		t.Estado = string(domain.EstadoPendiente)

	default:
		candidatos, err := candidatosPara(ctx, uc.repo, fecha, pedido)
		if err != nil {
			return nil, err
		}

		elegido, ok := domain.ElegirBarbero(candidatos, pedido)
		if !ok {
			return nil, httperr.ErrConflict("sin_barbero_disponible")
		}
		t.BarberoID = &elegido
	}

	// El repositorio revalida la superposición dentro de la transacción;
	// un perdedor concurrente recibe Conflict.
	if err := uc.repo.CrearTurno(ctx, t); err != nil {
		if httperr.IsKind(err, httperr.KindConflict) {
			uc.audit.Dispatch(audit.Event{
				UsuarioID: in.UsuarioID,
				Accion:    "turno_conflicto",
				Entidad:   "turno",
				Metadata: map[string]any{
					"fecha": in.Fecha,
					"hora":  in.Hora,
				},
			})
		}
		return nil, err
	}

	uc.cache.Invalidate(ctx, fecha)

	uc.audit.Dispatch(audit.Event{
		UsuarioID: in.UsuarioID,
		Accion:    "turno_creado",
		Entidad:   "turno",
		EntidadID: &t.ID,
	})

	return t, nil
}
