package turno

import (
	"context"
	"time"

	"github.com/barberia-app/turnos-api/internal/models"
)

// Filtro combina condiciones de listado en forma conjuntiva. Campos nil
// no filtran.
type Filtro struct {
	Estado    *Estado
	BarberoID *uint
	Fecha     *time.Time
	Desde     *time.Time
	Hasta     *time.Time
}

type Repository interface {
	// -------- Servicio --------
	GetServicio(
		ctx context.Context,
		id uint,
	) (*models.Servicio, error)

	// -------- Barbero --------
	GetBarbero(
		ctx context.Context,
		id uint,
	) (*models.Barbero, error)

	ListBarberosActivos(
		ctx context.Context,
	) ([]models.Barbero, error)

	GetHorarioLaboral(
		ctx context.Context,
		barberoID uint,
		diaSemana int,
	) (*models.HorarioLaboral, error)

	EsDiaLibre(
		ctx context.Context,
		barberoID uint,
		fecha time.Time,
	) (bool, error)

	// -------- Turno (crear / conflicto) --------

	// CrearTurno persiste un turno nuevo dentro de una transacción que
	// revalida la superposición para el barbero y la fecha; el perdedor
	// de una carrera recibe Conflict.
	CrearTurno(
		ctx context.Context,
		t *models.Turno,
	) error

	ListTurnosActivosDelDia(
		ctx context.Context,
		barberoID uint,
		fecha time.Time,
	) ([]models.Turno, error)

	// -------- Turno (cambio de estado) --------
	GetTurno(
		ctx context.Context,
		id uint,
	) (*models.Turno, error)

	GetTurnoPorCodigo(
		ctx context.Context,
		codigo string,
	) (*models.Turno, error)

	// ActualizarEstado aplica una transición con guarda optimista sobre
	// el estado actual persistido. Devuelve false si ninguna fila
	// coincidió (otro escritor ganó la carrera).
	ActualizarEstado(
		ctx context.Context,
		id uint,
		desde Estado,
		hasta Estado,
		ahora time.Time,
	) (bool, error)

	// PromoverPendiente pasa un turno pendiente a reservado con barbero
	// asignado, bajo el mismo resguardo de superposición que CrearTurno.
	PromoverPendiente(
		ctx context.Context,
		t *models.Turno,
		barberoID uint,
	) error

	// Reprogramar mueve fecha/hora/barbero de un turno reservado, bajo
	// el mismo resguardo de superposición que CrearTurno.
	Reprogramar(
		ctx context.Context,
		t *models.Turno,
		barberoID uint,
		fecha time.Time,
		hora string,
	) error

	// -------- Listado --------
	ListarTurnos(
		ctx context.Context,
		filtro Filtro,
		pagina int,
		limite int,
	) ([]models.Turno, int64, error)
}
