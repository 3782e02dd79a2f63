package audit

import "log"

type Event struct {
	UsuarioID *uint
	Accion    string
	Entidad   string
	EntidadID *uint
	Metadata  any
}

type Dispatcher struct {
	logger *Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if d.logger == nil {
			continue
		}
		if err := d.logger.Log(
			ev.UsuarioID,
			ev.Accion,
			ev.Entidad,
			ev.EntidadID,
			ev.Metadata,
		); err != nil {
			log.Println("audit error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// Cola llena: se descarta el evento antes que frenar la API.
		log.Println("audit queue full, dropping event")
	}
}
