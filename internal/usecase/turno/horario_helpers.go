package turno

import (
	"context"
	"time"

	domain "github.com/barberia-app/turnos-api/internal/domain/turno"
)

// ventanaLaboral resuelve la ventana de trabajo de un barbero para una
// fecha: horario semanal del día más el listado de días libres. abierto
// es false cuando el barbero no atiende ese día.
func ventanaLaboral(
	ctx context.Context,
	repo domain.Repository,
	barberoID uint,
	fecha time.Time,
) (apertura, cierre int, abierto bool, err error) {

	horario, err := repo.GetHorarioLaboral(ctx, barberoID, int(fecha.Weekday()))
	if err != nil {
		return 0, 0, false, err
	}
	if horario == nil || !horario.Activo || horario.Apertura == "" || horario.Cierre == "" {
		return 0, 0, false, nil
	}

	libre, err := repo.EsDiaLibre(ctx, barberoID, fecha)
	if err != nil {
		return 0, 0, false, err
	}
	if libre {
		return 0, 0, false, nil
	}

	apertura, err = domain.ParseHora(horario.Apertura)
	if err != nil {
		return 0, 0, false, nil
	}
	cierre, err = domain.ParseHora(horario.Cierre)
	if err != nil {
		return 0, 0, false, nil
	}

	return apertura, cierre, true, nil
}

func dentroDeVentana(pedido domain.Intervalo, apertura, cierre int) bool {
	return pedido.Inicio >= apertura && pedido.Fin <= cierre
}

// candidatosPara arma los candidatos de asignación automática: barberos
// activos cuya ventana laboral contiene el intervalo pedido, con sus
// agendas del día.
func candidatosPara(
	ctx context.Context,
	repo domain.Repository,
	fecha time.Time,
	pedido domain.Intervalo,
) ([]domain.Candidato, error) {

	barberos, err := repo.ListBarberosActivos(ctx)
	if err != nil {
		return nil, err
	}

	candidatos := make([]domain.Candidato, 0, len(barberos))
	for _, b := range barberos {
		apertura, cierre, abierto, err := ventanaLaboral(ctx, repo, b.ID, fecha)
		if err != nil {
			return nil, err
		}
		if !abierto || !dentroDeVentana(pedido, apertura, cierre) {
			continue
		}

		activos, err := repo.ListTurnosActivosDelDia(ctx, b.ID, fecha)
		if err != nil {
			return nil, err
		}

		candidatos = append(candidatos, domain.Candidato{
			BarberoID:    b.ID,
			Ocupados:     domain.Ocupados(activos),
			TurnosDelDia: len(activos),
		})
	}

	return candidatos, nil
}
