package turno

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "github.com/barberia-app/turnos-api/internal/domain/turno"
	"github.com/barberia-app/turnos-api/internal/httperr"
	"github.com/barberia-app/turnos-api/internal/models"
)

// fakeRepo implementa domain.Repository en memoria con la misma semántica
// de resguardo que la implementación real: chequeo de superposición y
// escritura bajo un único lock, guarda optimista por estado.
type fakeRepo struct {
	mu sync.Mutex

	servicios  map[uint]*models.Servicio
	barberos   map[uint]*models.Barbero
	horarios   map[uint]map[int]*models.HorarioLaboral
	diasLibres map[uint]map[string]bool
	turnos     map[uint]*models.Turno

	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		servicios:  map[uint]*models.Servicio{},
		barberos:   map[uint]*models.Barbero{},
		horarios:   map[uint]map[int]*models.HorarioLaboral{},
		diasLibres: map[uint]map[string]bool{},
		turnos:     map[uint]*models.Turno{},
	}
}

// --------- seed helpers ---------

func (r *fakeRepo) addServicio(id uint, duracionMin int) *models.Servicio {
	s := &models.Servicio{ID: id, Nombre: "Corte", DuracionMin: duracionMin, PrecioBase: 500, Activo: true}
	r.servicios[id] = s
	return s
}

// addBarbero da de alta un barbero que atiende todos los días en la
// ventana indicada.
func (r *fakeRepo) addBarbero(id uint, apertura, cierre string) *models.Barbero {
	b := &models.Barbero{ID: id, Nombre: "Barbero", Activo: true}
	r.barberos[id] = b

	r.horarios[id] = map[int]*models.HorarioLaboral{}
	for dia := 0; dia < 7; dia++ {
		r.horarios[id][dia] = &models.HorarioLaboral{
			BarberoID: id,
			DiaSemana: dia,
			Apertura:  apertura,
			Cierre:    cierre,
			Activo:    true,
		}
	}
	return b
}

// addBarberoSinHorario da de alta un barbero activo sin horario semanal:
// no atiende ningún día.
func (r *fakeRepo) addBarberoSinHorario(id uint) *models.Barbero {
	b := &models.Barbero{ID: id, Nombre: "Barbero", Activo: true}
	r.barberos[id] = b
	r.horarios[id] = map[int]*models.HorarioLaboral{}
	return b
}

func (r *fakeRepo) addDiaLibre(barberoID uint, fecha time.Time) {
	if r.diasLibres[barberoID] == nil {
		r.diasLibres[barberoID] = map[string]bool{}
	}
	r.diasLibres[barberoID][fecha.Format("2006-01-02")] = true
}

// --------- Servicio / Barbero ---------

func (r *fakeRepo) GetServicio(_ context.Context, id uint) (*models.Servicio, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.servicios[id]
	if !ok {
		return nil, httperr.ErrNotFound("servicio_no_encontrado")
	}
	copia := *s
	return &copia, nil
}

func (r *fakeRepo) GetBarbero(_ context.Context, id uint) (*models.Barbero, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.barberos[id]
	if !ok {
		return nil, httperr.ErrNotFound("barbero_no_encontrado")
	}
	copia := *b
	return &copia, nil
}

func (r *fakeRepo) ListBarberosActivos(_ context.Context) ([]models.Barbero, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]uint, 0, len(r.barberos))
	for id, b := range r.barberos {
		if b.Activo {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]models.Barbero, 0, len(ids))
	for _, id := range ids {
		out = append(out, *r.barberos[id])
	}
	return out, nil
}

func (r *fakeRepo) GetHorarioLaboral(_ context.Context, barberoID uint, diaSemana int) (*models.HorarioLaboral, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.horarios[barberoID][diaSemana]
	if !ok {
		return nil, nil
	}
	copia := *h
	return &copia, nil
}

func (r *fakeRepo) EsDiaLibre(_ context.Context, barberoID uint, fecha time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.diasLibres[barberoID][fecha.Format("2006-01-02")], nil
}

// --------- Turno ---------

func (r *fakeRepo) ocupadosDe(barberoID uint, fecha time.Time, excluirID uint) []models.Turno {
	var out []models.Turno
	for _, t := range r.turnos {
		if t.BarberoID == nil || *t.BarberoID != barberoID {
			continue
		}
		if !t.Fecha.Equal(fecha) || t.ID == excluirID {
			continue
		}
		if !domain.EsActivo(domain.Estado(t.Estado)) {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hora < out[j].Hora })
	return out
}

func (r *fakeRepo) assertLibre(barberoID uint, fecha time.Time, hora string, duracionMin int, excluirID uint) error {
	inicio, err := domain.ParseHora(hora)
	if err != nil {
		return err
	}
	pedido := domain.NuevoIntervalo(inicio, duracionMin)
	if domain.HayConflicto(pedido, domain.Ocupados(r.ocupadosDe(barberoID, fecha, excluirID))) {
		return httperr.ErrConflict("turno_superpuesto")
	}
	return nil
}

func (r *fakeRepo) CrearTurno(_ context.Context, t *models.Turno) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t.BarberoID != nil {
		if err := r.assertLibre(*t.BarberoID, t.Fecha, t.Hora, t.DuracionMin, 0); err != nil {
			return err
		}
	}

	r.nextID++
	t.ID = r.nextID
	t.CreatedAt = time.Now()

	copia := *t
	r.turnos[t.ID] = &copia
	return nil
}

func (r *fakeRepo) ListTurnosActivosDelDia(_ context.Context, barberoID uint, fecha time.Time) ([]models.Turno, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ocupadosDe(barberoID, fecha, 0), nil
}

func (r *fakeRepo) GetTurno(_ context.Context, id uint) (*models.Turno, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.turnos[id]
	if !ok {
		return nil, httperr.ErrNotFound("turno_no_encontrado")
	}
	copia := *t
	return &copia, nil
}

func (r *fakeRepo) GetTurnoPorCodigo(_ context.Context, codigo string) (*models.Turno, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.turnos {
		if t.Codigo == codigo {
			copia := *t
			return &copia, nil
		}
	}
	return nil, httperr.ErrNotFound("turno_no_encontrado")
}

func (r *fakeRepo) ActualizarEstado(_ context.Context, id uint, desde, hasta domain.Estado, ahora time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.turnos[id]
	if !ok || t.Estado != string(desde) {
		return false, nil
	}

	t.Estado = string(hasta)
	switch hasta {
	case domain.EstadoCancelado:
		marca := ahora
		t.CanceladoAt = &marca
	case domain.EstadoCompletado:
		marca := ahora
		t.CompletadoAt = &marca
	}
	return true, nil
}

func (r *fakeRepo) PromoverPendiente(_ context.Context, t *models.Turno, barberoID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.assertLibre(barberoID, t.Fecha, t.Hora, t.DuracionMin, t.ID); err != nil {
		return err
	}

	guardado, ok := r.turnos[t.ID]
	if !ok || guardado.Estado != string(domain.EstadoPendiente) {
		return httperr.ErrConflict("turno_modificado")
	}

	guardado.BarberoID = &barberoID
	guardado.Estado = string(domain.EstadoReservado)

	t.BarberoID = &barberoID
	t.Estado = string(domain.EstadoReservado)
	return nil
}

func (r *fakeRepo) Reprogramar(_ context.Context, t *models.Turno, barberoID uint, fecha time.Time, hora string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.assertLibre(barberoID, fecha, hora, t.DuracionMin, t.ID); err != nil {
		return err
	}

	guardado, ok := r.turnos[t.ID]
	if !ok || guardado.Estado != string(domain.EstadoReservado) {
		return httperr.ErrConflict("turno_modificado")
	}

	guardado.BarberoID = &barberoID
	guardado.Fecha = fecha
	guardado.Hora = hora

	t.BarberoID = &barberoID
	t.Fecha = fecha
	t.Hora = hora
	return nil
}

func (r *fakeRepo) ListarTurnos(_ context.Context, filtro domain.Filtro, pagina, limite int) ([]models.Turno, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var coincidentes []models.Turno
	for _, t := range r.turnos {
		if filtro.Estado != nil && t.Estado != string(*filtro.Estado) {
			continue
		}
		if filtro.BarberoID != nil && (t.BarberoID == nil || *t.BarberoID != *filtro.BarberoID) {
			continue
		}
		if filtro.Fecha != nil && !t.Fecha.Equal(*filtro.Fecha) {
			continue
		}
		if filtro.Desde != nil && t.Fecha.Before(*filtro.Desde) {
			continue
		}
		if filtro.Hasta != nil && t.Fecha.After(*filtro.Hasta) {
			continue
		}
		coincidentes = append(coincidentes, *t)
	}

	sort.Slice(coincidentes, func(i, j int) bool {
		a, b := coincidentes[i], coincidentes[j]
		if !a.Fecha.Equal(b.Fecha) {
			return a.Fecha.Before(b.Fecha)
		}
		if a.Hora != b.Hora {
			return a.Hora < b.Hora
		}
		return a.ID < b.ID
	})

	total := int64(len(coincidentes))

	desde := (pagina - 1) * limite
	if desde >= len(coincidentes) {
		return []models.Turno{}, total, nil
	}
	hasta := desde + limite
	if hasta > len(coincidentes) {
		hasta = len(coincidentes)
	}

	return coincidentes[desde:hasta], total, nil
}

var _ domain.Repository = (*fakeRepo)(nil)
