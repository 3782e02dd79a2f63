package dto

type TurnoListDTO struct {
	ID     uint   `json:"id"`
	Codigo string `json:"codigo"`

	Fecha string `json:"fecha"`
	Hora  string `json:"hora"`

	Estado string `json:"estado"`

	Cliente  string `json:"cliente"`
	Servicio string `json:"servicio"`
	Barbero  string `json:"barbero,omitempty"`

	DuracionMin int     `json:"duracion_min"`
	Precio      float64 `json:"precio"`
}

type TurnoListResult struct {
	Items []TurnoListDTO `json:"items"`
	Total int64          `json:"total"`
}
