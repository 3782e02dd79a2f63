package turno

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/barberia-app/turnos-api/internal/audit"
	"github.com/barberia-app/turnos-api/internal/cache"
	domain "github.com/barberia-app/turnos-api/internal/domain/turno"
	"github.com/barberia-app/turnos-api/internal/models"
)

const tzPrueba = "America/Argentina/Buenos_Aires"

func ptrU(v uint) *uint     { return &v }
func ptrS(v string) *string { return &v }

// fechaEn devuelve hoy más n días en formato ISO.
func fechaEn(n int) string {
	return time.Now().AddDate(0, 0, n).Format("2006-01-02")
}

func diaEn(n int) time.Time {
	return domain.DiaUTC(time.Now().AddDate(0, 0, n))
}

type entorno struct {
	repo  *fakeRepo
	audit *audit.Dispatcher
	cache *cache.Availability
}

func nuevoEntorno() *entorno {
	return &entorno{
		repo:  newFakeRepo(),
		audit: audit.NewDispatcher(nil),
		cache: cache.NewAvailability(""),
	}
}

// seedTurno persiste un turno directamente en el repositorio, salteando
// las validaciones del caso de uso.
func (e *entorno) seedTurno(
	t *testing.T,
	barberoID *uint,
	fecha time.Time,
	hora string,
	duracionMin int,
	estado domain.Estado,
) *models.Turno {
	t.Helper()

	turno := &models.Turno{
		Codigo:          uuid.NewString(),
		ClienteNombre:   "Juan",
		ClienteApellido: "Pérez",
		ClienteEmail:    "juan@example.com",
		ServicioID:      1,
		BarberoID:       barberoID,
		Fecha:           fecha,
		Hora:            hora,
		DuracionMin:     duracionMin,
		Precio:          500,
		Estado:          string(estado),
	}
	if err := e.repo.CrearTurno(context.Background(), turno); err != nil {
		t.Fatalf("seed turno %s %s: %v", fecha.Format("2006-01-02"), hora, err)
	}
	return turno
}
