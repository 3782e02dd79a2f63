package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/barberia-app/turnos-api/internal/domain/turno"
)

// TTL corto: la disponibilidad puede quedar vieja por diseño, el chequeo
// final siempre lo hace el motor de reservas.
const ttl = 30 * time.Second

// Availability cachea respuestas de disponibilidad por (servicio, fecha,
// barbero). Con cliente nil todas las operaciones son no-op, así el resto
// del código no se condiciona a que Redis esté configurado.
type Availability struct {
	rdb *redis.Client
}

func NewAvailability(redisURL string) *Availability {
	if redisURL == "" {
		return &Availability{}
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return &Availability{}
	}
	return &Availability{rdb: redis.NewClient(opt)}
}

func clave(servicioID uint, fecha time.Time, barberoID *uint) string {
	b := "todos"
	if barberoID != nil {
		b = fmt.Sprintf("%d", *barberoID)
	}
	return fmt.Sprintf("disponibilidad:%d:%s:%s", servicioID, fecha.Format("2006-01-02"), b)
}

func (a *Availability) Get(
	ctx context.Context,
	servicioID uint,
	fecha time.Time,
	barberoID *uint,
) ([]domain.DisponibilidadBarbero, bool) {

	if a.rdb == nil {
		return nil, false
	}

	raw, err := a.rdb.Get(ctx, clave(servicioID, fecha, barberoID)).Result()
	if err != nil {
		return nil, false
	}

	var out []domain.DisponibilidadBarbero
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, false
	}
	return out, true
}

func (a *Availability) Set(
	ctx context.Context,
	servicioID uint,
	fecha time.Time,
	barberoID *uint,
	disponibilidad []domain.DisponibilidadBarbero,
) {

	if a.rdb == nil {
		return
	}

	raw, err := json.Marshal(disponibilidad)
	if err != nil {
		return
	}
	a.rdb.Set(ctx, clave(servicioID, fecha, barberoID), raw, ttl)
}

// Invalidate borra toda la disponibilidad cacheada de una fecha tras una
// escritura que afecta la agenda de un barbero.
func (a *Availability) Invalidate(ctx context.Context, fecha time.Time) {
	if a.rdb == nil {
		return
	}

	patron := fmt.Sprintf("disponibilidad:*:%s:*", fecha.Format("2006-01-02"))
	iter := a.rdb.Scan(ctx, 0, patron, 0).Iterator()
	for iter.Next(ctx) {
		a.rdb.Del(ctx, iter.Val())
	}
}
