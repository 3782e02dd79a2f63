package turno

import (
	"context"
	"time"

	domain "github.com/barberia-app/turnos-api/internal/domain/turno"
	"github.com/barberia-app/turnos-api/internal/dto"
	"github.com/barberia-app/turnos-api/internal/httperr"
)

const (
	LimiteMin     = 1
	LimiteMax     = 100
	LimiteDefault = 20
)

type ListarTurnosInput struct {
	Estado    *string
	BarberoID *uint
	Fecha     *string // ISO, día exacto
	Desde     *string // ISO, inclusivo
	Hasta     *string // ISO, inclusivo

	Pagina int
	Limite int
}

type ListarTurnos struct {
	repo domain.Repository
}

func NewListarTurnos(repo domain.Repository) *ListarTurnos {
	return &ListarTurnos{repo: repo}
}

// Execute lista turnos con filtros conjuntivos y paginación. Total es la
// cantidad de coincidencias en todas las páginas, no solo la devuelta.
func (uc *ListarTurnos) Execute(
	ctx context.Context,
	in ListarTurnosInput,
) (*dto.TurnoListResult, error) {

	if in.Pagina < 1 {
		return nil, httperr.ErrValidation("paginacion_invalida")
	}
	if in.Limite < LimiteMin || in.Limite > LimiteMax {
		return nil, httperr.ErrValidation("paginacion_invalida")
	}

	var filtro domain.Filtro

	if in.Estado != nil {
		e := domain.Estado(*in.Estado)
		if !domain.EsValido(e) {
			return nil, httperr.ErrValidation("estado_invalido")
		}
		filtro.Estado = &e
	}

	filtro.BarberoID = in.BarberoID

	parseFecha := func(s string) (time.Time, error) {
		f, err := time.ParseInLocation("2006-01-02", s, time.UTC)
		if err != nil {
			return time.Time{}, httperr.ErrValidation("fecha_invalida")
		}
		return domain.DiaUTC(f), nil
	}

	if in.Fecha != nil {
		f, err := parseFecha(*in.Fecha)
		if err != nil {
			return nil, err
		}
		filtro.Fecha = &f
	}
	if in.Desde != nil {
		f, err := parseFecha(*in.Desde)
		if err != nil {
			return nil, err
		}
		filtro.Desde = &f
	}
	if in.Hasta != nil {
		f, err := parseFecha(*in.Hasta)
		if err != nil {
			return nil, err
		}
		filtro.Hasta = &f
	}

	if filtro.Desde != nil && filtro.Hasta != nil && filtro.Hasta.Before(*filtro.Desde) {
		return nil, httperr.ErrValidation("rango_fechas_invalido")
	}

	turnos, total, err := uc.repo.ListarTurnos(ctx, filtro, in.Pagina, in.Limite)
	if err != nil {
		return nil, err
	}

	items := make([]dto.TurnoListDTO, 0, len(turnos))
	for _, t := range turnos {
		item := dto.TurnoListDTO{
			ID:          t.ID,
			Codigo:      t.Codigo,
			Fecha:       t.Fecha.Format("2006-01-02"),
			Hora:        t.Hora,
			Estado:      t.Estado,
			Cliente:     t.ClienteNombre + " " + t.ClienteApellido,
			Servicio:    t.Servicio.Nombre,
			DuracionMin: t.DuracionMin,
			Precio:      t.Precio,
		}
		if t.Barbero != nil {
			item.Barbero = t.Barbero.Nombre
		}
		items = append(items, item)
	}

	return &dto.TurnoListResult{
		Items: items,
		Total: total,
	}, nil
}
