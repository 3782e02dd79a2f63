package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/barberia-app/turnos-api/internal/domain/turno"
	"github.com/barberia-app/turnos-api/internal/httperr"
	"github.com/barberia-app/turnos-api/internal/models"
)

// abrirDB levanta una base sqlite en memoria con el mismo esquema y el
// mismo índice único parcial que la base real.
func abrirDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf(
		"file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"),
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Barbero{},
		&models.Servicio{},
		&models.HorarioLaboral{},
		&models.DiaLibre{},
		&models.Turno{},
	))

	require.NoError(t, db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_turnos_slot_activo
        ON turnos (barbero_id, fecha, hora)
        WHERE estado IN ('reservado', 'completado')
    `).Error)

	return db
}

var fechaPrueba = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

func seedBase(t *testing.T, db *gorm.DB) {
	t.Helper()

	require.NoError(t, db.Create(&models.Servicio{
		ID: 1, Nombre: "Corte", DuracionMin: 30, PrecioBase: 500, Activo: true,
	}).Error)

	require.NoError(t, db.Create(&models.Barbero{
		ID: 1, Nombre: "Carlos", Activo: true,
	}).Error)

	require.NoError(t, db.Create(&models.HorarioLaboral{
		BarberoID: 1,
		DiaSemana: int(fechaPrueba.Weekday()),
		Apertura:  "09:00",
		Cierre:    "18:00",
		Activo:    true,
	}).Error)
}

func turnoPrueba(codigo, hora, estado string, barberoID *uint) *models.Turno {
	return &models.Turno{
		Codigo:          codigo,
		ClienteNombre:   "Juan",
		ClienteApellido: "Pérez",
		ServicioID:      1,
		BarberoID:       barberoID,
		Fecha:           fechaPrueba,
		Hora:            hora,
		DuracionMin:     30,
		Precio:          500,
		Estado:          estado,
	}
}

func barbero1() *uint {
	id := uint(1)
	return &id
}

func TestCrearTurno_DetectaSuperposicion(t *testing.T) {
	db := abrirDB(t)
	seedBase(t, db)
	repo := NewTurnoGormRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CrearTurno(ctx, turnoPrueba("c1", "10:00", "reservado", barbero1())))

	// 10:15 pisa 10:00-10:30 aunque el par (fecha, hora) sea distinto.
	err := repo.CrearTurno(ctx, turnoPrueba("c2", "10:15", "reservado", barbero1()))
	require.True(t, httperr.IsCode(err, "turno_superpuesto"), "error: %v", err)

	var count int64
	require.NoError(t, db.Model(&models.Turno{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestCrearTurno_CanceladoNoBloquea(t *testing.T) {
	db := abrirDB(t)
	seedBase(t, db)
	repo := NewTurnoGormRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(turnoPrueba("c1", "10:00", "cancelado", barbero1())).Error)

	// El índice es parcial: un cancelado en el mismo slot no cuenta.
	require.NoError(t, repo.CrearTurno(ctx, turnoPrueba("c2", "10:00", "reservado", barbero1())))
}

func TestCrearTurno_PendienteSinChequeo(t *testing.T) {
	db := abrirDB(t)
	seedBase(t, db)
	repo := NewTurnoGormRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CrearTurno(ctx, turnoPrueba("c1", "10:00", "reservado", barbero1())))

	// Un pendiente sin barbero entra aunque el horario esté tomado.
	require.NoError(t, repo.CrearTurno(ctx, turnoPrueba("c2", "10:00", "pendiente", nil)))
}

func TestIndiceUnico_RespaldoContraCarreras(t *testing.T) {
	db := abrirDB(t)
	seedBase(t, db)

	// Dos filas activas idénticas, insertadas sin pasar por el chequeo de
	// superposición: el índice único parcial rechaza la segunda.
	require.NoError(t, db.Create(turnoPrueba("c1", "10:00", "reservado", barbero1())).Error)

	err := db.Create(turnoPrueba("c2", "10:00", "reservado", barbero1())).Error
	require.Error(t, err)
	require.True(t, esViolacionUnicidad(err), "error: %v", err)
}

func TestActualizarEstado_GuardaPorEstado(t *testing.T) {
	db := abrirDB(t)
	seedBase(t, db)
	repo := NewTurnoGormRepository(db)
	ctx := context.Background()

	turno := turnoPrueba("c1", "10:00", "reservado", barbero1())
	require.NoError(t, repo.CrearTurno(ctx, turno))

	ahora := time.Now().UTC()

	ok, err := repo.ActualizarEstado(ctx, turno.ID, domain.EstadoReservado, domain.EstadoCancelado, ahora)
	require.NoError(t, err)
	require.True(t, ok)

	// Segunda cancelación: el estado ya no coincide.
	ok, err = repo.ActualizarEstado(ctx, turno.ID, domain.EstadoReservado, domain.EstadoCancelado, ahora)
	require.NoError(t, err)
	require.False(t, ok)

	guardado, err := repo.GetTurno(ctx, turno.ID)
	require.NoError(t, err)
	require.Equal(t, "cancelado", guardado.Estado)
	require.NotNil(t, guardado.CanceladoAt)
}

func TestPromoverPendiente(t *testing.T) {
	db := abrirDB(t)
	seedBase(t, db)
	repo := NewTurnoGormRepository(db)
	ctx := context.Background()

	turno := turnoPrueba("c1", "10:00", "pendiente", nil)
	require.NoError(t, repo.CrearTurno(ctx, turno))

	require.NoError(t, repo.PromoverPendiente(ctx, turno, 1))
	require.Equal(t, "reservado", turno.Estado)
	require.NotNil(t, turno.BarberoID)

	guardado, err := repo.GetTurno(ctx, turno.ID)
	require.NoError(t, err)
	require.Equal(t, "reservado", guardado.Estado)

	// Ya no está pendiente: una segunda promoción pierde la guarda.
	turno.Estado = "pendiente"
	err = repo.PromoverPendiente(ctx, turno, 1)
	require.True(t, httperr.IsCode(err, "turno_modificado"), "error: %v", err)
}

func TestPromoverPendiente_SlotTomado(t *testing.T) {
	db := abrirDB(t)
	seedBase(t, db)
	repo := NewTurnoGormRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CrearTurno(ctx, turnoPrueba("c1", "10:00", "reservado", barbero1())))

	pendiente := turnoPrueba("c2", "10:15", "pendiente", nil)
	require.NoError(t, repo.CrearTurno(ctx, pendiente))

	err := repo.PromoverPendiente(ctx, pendiente, 1)
	require.True(t, httperr.IsCode(err, "turno_superpuesto"), "error: %v", err)

	guardado, err := repo.GetTurno(ctx, pendiente.ID)
	require.NoError(t, err)
	require.Equal(t, "pendiente", guardado.Estado)
}

func TestReprogramar(t *testing.T) {
	db := abrirDB(t)
	seedBase(t, db)
	repo := NewTurnoGormRepository(db)
	ctx := context.Background()

	turno := turnoPrueba("c1", "10:00", "reservado", barbero1())
	require.NoError(t, repo.CrearTurno(ctx, turno))

	otraFecha := fechaPrueba.AddDate(0, 0, 1)
	require.NoError(t, repo.Reprogramar(ctx, turno, 1, otraFecha, "15:00"))

	guardado, err := repo.GetTurno(ctx, turno.ID)
	require.NoError(t, err)
	require.Equal(t, "15:00", guardado.Hora)
}

func TestReprogramar_DestinoOcupado(t *testing.T) {
	db := abrirDB(t)
	seedBase(t, db)
	repo := NewTurnoGormRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CrearTurno(ctx, turnoPrueba("c1", "15:00", "reservado", barbero1())))

	turno := turnoPrueba("c2", "10:00", "reservado", barbero1())
	require.NoError(t, repo.CrearTurno(ctx, turno))

	err := repo.Reprogramar(ctx, turno, 1, fechaPrueba, "15:15")
	require.True(t, httperr.IsCode(err, "turno_superpuesto"), "error: %v", err)

	guardado, err := repo.GetTurno(ctx, turno.ID)
	require.NoError(t, err)
	require.Equal(t, "10:00", guardado.Hora)
}

func TestGetTurnoPorCodigo(t *testing.T) {
	db := abrirDB(t)
	seedBase(t, db)
	repo := NewTurnoGormRepository(db)
	ctx := context.Background()

	turno := turnoPrueba("abc-123", "10:00", "reservado", barbero1())
	require.NoError(t, repo.CrearTurno(ctx, turno))

	encontrado, err := repo.GetTurnoPorCodigo(ctx, "abc-123")
	require.NoError(t, err)
	require.Equal(t, turno.ID, encontrado.ID)
	require.Equal(t, "Corte", encontrado.Servicio.Nombre)

	_, err = repo.GetTurnoPorCodigo(ctx, "no-existe")
	require.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestGetHorarioLaboral_DiaSinFila(t *testing.T) {
	db := abrirDB(t)
	seedBase(t, db)
	repo := NewTurnoGormRepository(db)
	ctx := context.Background()

	otroDia := (int(fechaPrueba.Weekday()) + 1) % 7

	h, err := repo.GetHorarioLaboral(ctx, 1, otroDia)
	require.NoError(t, err)
	require.Nil(t, h)

	h, err = repo.GetHorarioLaboral(ctx, 1, int(fechaPrueba.Weekday()))
	require.NoError(t, err)
	require.NotNil(t, h)
	require.Equal(t, "09:00", h.Apertura)
}

func TestEsDiaLibre(t *testing.T) {
	db := abrirDB(t)
	seedBase(t, db)
	repo := NewTurnoGormRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.DiaLibre{
		BarberoID: 1,
		Fecha:     fechaPrueba,
		Motivo:    "vacaciones",
	}).Error)

	libre, err := repo.EsDiaLibre(ctx, 1, fechaPrueba)
	require.NoError(t, err)
	require.True(t, libre)

	libre, err = repo.EsDiaLibre(ctx, 1, fechaPrueba.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.False(t, libre)
}

func TestListarTurnos(t *testing.T) {
	db := abrirDB(t)
	seedBase(t, db)
	repo := NewTurnoGormRepository(db)
	ctx := context.Background()

	otraFecha := fechaPrueba.AddDate(0, 0, 1)

	require.NoError(t, repo.CrearTurno(ctx, turnoPrueba("c1", "10:00", "reservado", barbero1())))
	require.NoError(t, repo.CrearTurno(ctx, turnoPrueba("c2", "09:00", "reservado", barbero1())))
	require.NoError(t, db.Create(&models.Turno{
		Codigo: "c3", ClienteNombre: "Ana", ClienteApellido: "Gómez",
		ServicioID: 1, BarberoID: barbero1(),
		Fecha: otraFecha, Hora: "09:00", DuracionMin: 30, Estado: "cancelado",
	}).Error)

	t.Run("sin filtros ordena por fecha, hora, id", func(t *testing.T) {
		turnos, total, err := repo.ListarTurnos(ctx, domain.Filtro{}, 1, 10)
		require.NoError(t, err)
		require.EqualValues(t, 3, total)
		require.Equal(t, "c2", turnos[0].Codigo)
		require.Equal(t, "c1", turnos[1].Codigo)
		require.Equal(t, "c3", turnos[2].Codigo)
	})

	t.Run("filtro por estado", func(t *testing.T) {
		estado := domain.EstadoCancelado
		turnos, total, err := repo.ListarTurnos(ctx, domain.Filtro{Estado: &estado}, 1, 10)
		require.NoError(t, err)
		require.EqualValues(t, 1, total)
		require.Equal(t, "c3", turnos[0].Codigo)
	})

	t.Run("filtro por rango de fechas", func(t *testing.T) {
		_, total, err := repo.ListarTurnos(ctx, domain.Filtro{
			Desde: &fechaPrueba,
			Hasta: &fechaPrueba,
		}, 1, 10)
		require.NoError(t, err)
		require.EqualValues(t, 2, total)
	})

	t.Run("paginacion con total completo", func(t *testing.T) {
		turnos, total, err := repo.ListarTurnos(ctx, domain.Filtro{}, 2, 2)
		require.NoError(t, err)
		require.EqualValues(t, 3, total)
		require.Len(t, turnos, 1)
	})
}

func TestGetServicio_NoEncontrado(t *testing.T) {
	db := abrirDB(t)
	repo := NewTurnoGormRepository(db)

	_, err := repo.GetServicio(context.Background(), 99)
	require.True(t, httperr.IsKind(err, httperr.KindNotFound))
}
