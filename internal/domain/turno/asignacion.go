package turno

// Candidato resume lo que hace falta saber de un barbero para decidir
// una asignación automática.
type Candidato struct {
	BarberoID uint
	Ocupados  []Intervalo
	// TurnosDelDia es la cantidad de turnos activos del barbero en la
	// fecha pedida; desempata hacia el que menos tiene.
	TurnosDelDia int
}

// ElegirBarbero resuelve el barbero para un turno sin barbero explícito.
// Función pura: filtra los candidatos libres en el intervalo y desempata
// por menor carga del día y luego por menor id, para que el resultado
// sea determinístico.
func ElegirBarbero(candidatos []Candidato, pedido Intervalo) (uint, bool) {
	var elegido *Candidato

	for i := range candidatos {
		c := &candidatos[i]
		if HayConflicto(pedido, c.Ocupados) {
			continue
		}
		if elegido == nil ||
			c.TurnosDelDia < elegido.TurnosDelDia ||
			(c.TurnosDelDia == elegido.TurnosDelDia && c.BarberoID < elegido.BarberoID) {
			elegido = c
		}
	}

	if elegido == nil {
		return 0, false
	}
	return elegido.BarberoID, true
}
