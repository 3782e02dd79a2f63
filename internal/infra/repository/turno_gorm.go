package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/barberia-app/turnos-api/internal/domain/turno"
	"github.com/barberia-app/turnos-api/internal/httperr"
	"github.com/barberia-app/turnos-api/internal/models"
)

type TurnoGormRepository struct {
	db *gorm.DB
}

func NewTurnoGormRepository(db *gorm.DB) *TurnoGormRepository {
	return &TurnoGormRepository{db: db}
}

// --------------------------------------------------
// Helpers de mapeo de errores
// --------------------------------------------------

func notFoundOrInfra(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrNotFound(code)
	}
	return httperr.ErrInfra("almacenamiento_no_disponible", err)
}

func infra(err error) error {
	return httperr.ErrInfra("almacenamiento_no_disponible", err)
}

// esViolacionUnicidad detecta al perdedor de la carrera contra el índice
// único parcial de (barbero_id, fecha, hora) en estados activos.
func esViolacionUnicidad(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// --------------------------------------------------
// Servicio
// --------------------------------------------------

func (r *TurnoGormRepository) GetServicio(
	ctx context.Context,
	id uint,
) (*models.Servicio, error) {

	var s models.Servicio
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, notFoundOrInfra(err, "servicio_no_encontrado")
	}
	return &s, nil
}

// --------------------------------------------------
// Barbero
// --------------------------------------------------

func (r *TurnoGormRepository) GetBarbero(
	ctx context.Context,
	id uint,
) (*models.Barbero, error) {

	var b models.Barbero
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, notFoundOrInfra(err, "barbero_no_encontrado")
	}
	return &b, nil
}

func (r *TurnoGormRepository) ListBarberosActivos(
	ctx context.Context,
) ([]models.Barbero, error) {

	var barberos []models.Barbero
	if err := r.db.WithContext(ctx).
		Where("activo = ?", true).
		Order("id ASC").
		Find(&barberos).Error; err != nil {
		return nil, infra(err)
	}
	return barberos, nil
}

func (r *TurnoGormRepository) GetHorarioLaboral(
	ctx context.Context,
	barberoID uint,
	diaSemana int,
) (*models.HorarioLaboral, error) {

	var h models.HorarioLaboral
	if err := r.db.WithContext(ctx).
		Where("barbero_id = ? AND dia_semana = ?", barberoID, diaSemana).
		First(&h).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Día sin fila = cerrado.
			return nil, nil
		}
		return nil, infra(err)
	}
	return &h, nil
}

func (r *TurnoGormRepository) EsDiaLibre(
	ctx context.Context,
	barberoID uint,
	fecha time.Time,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.DiaLibre{}).
		Where("barbero_id = ? AND fecha = ?", barberoID, fecha).
		Count(&count).Error; err != nil {
		return false, infra(err)
	}
	return count > 0, nil
}

// --------------------------------------------------
// Turno (crear / conflicto)
// --------------------------------------------------

func (r *TurnoGormRepository) ListTurnosActivosDelDia(
	ctx context.Context,
	barberoID uint,
	fecha time.Time,
) ([]models.Turno, error) {

	return listActivosDelDia(r.db.WithContext(ctx), barberoID, fecha, 0)
}

func listActivosDelDia(
	tx *gorm.DB,
	barberoID uint,
	fecha time.Time,
	excluirID uint,
) ([]models.Turno, error) {

	q := tx.
		Where(
			"barbero_id = ? AND fecha = ? AND estado IN ?",
			barberoID,
			fecha,
			[]string{string(domain.EstadoReservado), string(domain.EstadoCompletado)},
		)

	if excluirID != 0 {
		q = q.Where("id <> ?", excluirID)
	}

	var turnos []models.Turno
	if err := q.Order("hora ASC").Find(&turnos).Error; err != nil {
		return nil, infra(err)
	}
	return turnos, nil
}

// assertSinSuperposicion revalida el invariante dentro de la transacción:
// es la última línea de defensa contra carreras entre reservas.
func assertSinSuperposicion(
	tx *gorm.DB,
	barberoID uint,
	fecha time.Time,
	hora string,
	duracionMin int,
	excluirID uint,
) error {

	inicio, err := domain.ParseHora(hora)
	if err != nil {
		return err
	}
	pedido := domain.NuevoIntervalo(inicio, duracionMin)

	existentes, err := listActivosDelDia(tx, barberoID, fecha, excluirID)
	if err != nil {
		return err
	}

	if domain.HayConflicto(pedido, domain.Ocupados(existentes)) {
		return httperr.ErrConflict("turno_superpuesto")
	}
	return nil
}

func (r *TurnoGormRepository) CrearTurno(
	ctx context.Context,
	t *models.Turno,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// Un turno pendiente no bloquea agenda y no se chequea.
		if t.BarberoID != nil {
			if err := assertSinSuperposicion(
				tx, *t.BarberoID, t.Fecha, t.Hora, t.DuracionMin, 0,
			); err != nil {
				return err
			}
		}

		return tx.Create(t).Error
	})

	if err != nil {
		if esViolacionUnicidad(err) {
			return httperr.ErrConflict("turno_superpuesto")
		}
		var de httperr.DomainError
		if errors.As(err, &de) {
			return err
		}
		return infra(err)
	}
	return nil
}

// --------------------------------------------------
// Turno (cambio de estado)
// --------------------------------------------------

func (r *TurnoGormRepository) GetTurno(
	ctx context.Context,
	id uint,
) (*models.Turno, error) {

	var t models.Turno
	if err := r.db.WithContext(ctx).
		Preload("Servicio").
		Preload("Barbero").
		First(&t, id).Error; err != nil {
		return nil, notFoundOrInfra(err, "turno_no_encontrado")
	}
	return &t, nil
}

func (r *TurnoGormRepository) GetTurnoPorCodigo(
	ctx context.Context,
	codigo string,
) (*models.Turno, error) {

	var t models.Turno
	if err := r.db.WithContext(ctx).
		Preload("Servicio").
		Preload("Barbero").
		Where("codigo = ?", codigo).
		First(&t).Error; err != nil {
		return nil, notFoundOrInfra(err, "turno_no_encontrado")
	}
	return &t, nil
}

func (r *TurnoGormRepository) ActualizarEstado(
	ctx context.Context,
	id uint,
	desde domain.Estado,
	hasta domain.Estado,
	ahora time.Time,
) (bool, error) {

	cambios := map[string]any{"estado": string(hasta)}
	switch hasta {
	case domain.EstadoCancelado:
		cambios["cancelado_at"] = ahora
	case domain.EstadoCompletado:
		cambios["completado_at"] = ahora
	}

	res := r.db.WithContext(ctx).
		Model(&models.Turno{}).
		Where("id = ? AND estado = ?", id, string(desde)).
		Updates(cambios)

	if res.Error != nil {
		return false, infra(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *TurnoGormRepository) PromoverPendiente(
	ctx context.Context,
	t *models.Turno,
	barberoID uint,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := assertSinSuperposicion(
			tx, barberoID, t.Fecha, t.Hora, t.DuracionMin, t.ID,
		); err != nil {
			return err
		}

		res := tx.Model(&models.Turno{}).
			Where("id = ? AND estado = ?", t.ID, string(domain.EstadoPendiente)).
			Updates(map[string]any{
				"barbero_id": barberoID,
				"estado":     string(domain.EstadoReservado),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrConflict("turno_modificado")
		}

		t.BarberoID = &barberoID
		t.Estado = string(domain.EstadoReservado)
		return nil
	})

	if err != nil {
		if esViolacionUnicidad(err) {
			return httperr.ErrConflict("turno_superpuesto")
		}
		var de httperr.DomainError
		if errors.As(err, &de) {
			return err
		}
		return infra(err)
	}
	return nil
}

func (r *TurnoGormRepository) Reprogramar(
	ctx context.Context,
	t *models.Turno,
	barberoID uint,
	fecha time.Time,
	hora string,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := assertSinSuperposicion(
			tx, barberoID, fecha, hora, t.DuracionMin, t.ID,
		); err != nil {
			return err
		}

		res := tx.Model(&models.Turno{}).
			Where("id = ? AND estado = ?", t.ID, string(domain.EstadoReservado)).
			Updates(map[string]any{
				"barbero_id": barberoID,
				"fecha":      fecha,
				"hora":       hora,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrConflict("turno_modificado")
		}

		t.BarberoID = &barberoID
		t.Fecha = fecha
		t.Hora = hora
		return nil
	})

	if err != nil {
		if esViolacionUnicidad(err) {
			return httperr.ErrConflict("turno_superpuesto")
		}
		var de httperr.DomainError
		if errors.As(err, &de) {
			return err
		}
		return infra(err)
	}
	return nil
}

// --------------------------------------------------
// Listado
// --------------------------------------------------

func (r *TurnoGormRepository) ListarTurnos(
	ctx context.Context,
	filtro domain.Filtro,
	pagina int,
	limite int,
) ([]models.Turno, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Turno{})

	if filtro.Estado != nil {
		q = q.Where("estado = ?", string(*filtro.Estado))
	}
	if filtro.BarberoID != nil {
		q = q.Where("barbero_id = ?", *filtro.BarberoID)
	}
	if filtro.Fecha != nil {
		q = q.Where("fecha = ?", *filtro.Fecha)
	}
	if filtro.Desde != nil {
		q = q.Where("fecha >= ?", *filtro.Desde)
	}
	if filtro.Hasta != nil {
		q = q.Where("fecha <= ?", *filtro.Hasta)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, infra(err)
	}

	var turnos []models.Turno
	if err := q.
		Preload("Servicio").
		Preload("Barbero").
		Order("fecha ASC, hora ASC, id ASC").
		Offset((pagina - 1) * limite).
		Limit(limite).
		Find(&turnos).Error; err != nil {
		return nil, 0, infra(err)
	}

	return turnos, total, nil
}

// Compile-time check
var _ domain.Repository = (*TurnoGormRepository)(nil)
