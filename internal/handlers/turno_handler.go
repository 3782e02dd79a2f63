package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/barberia-app/turnos-api/internal/domain/turno"
	"github.com/barberia-app/turnos-api/internal/httperr"
	"github.com/barberia-app/turnos-api/internal/httpresp"
	"github.com/barberia-app/turnos-api/internal/middleware"
	ucTurno "github.com/barberia-app/turnos-api/internal/usecase/turno"
	"github.com/barberia-app/turnos-api/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type TurnoHandler struct {
	crearUC          *ucTurno.CrearTurno
	disponibilidadUC *ucTurno.Disponibilidad
	completarUC      *ucTurno.CompletarTurno
	cancelarUC       *ucTurno.CancelarTurno
	asignarUC        *ucTurno.AsignarBarbero
	reprogramarUC    *ucTurno.ReprogramarTurno
	listarUC         *ucTurno.ListarTurnos
}

func NewTurnoHandler(
	crearUC *ucTurno.CrearTurno,
	disponibilidadUC *ucTurno.Disponibilidad,
	completarUC *ucTurno.CompletarTurno,
	cancelarUC *ucTurno.CancelarTurno,
	asignarUC *ucTurno.AsignarBarbero,
	reprogramarUC *ucTurno.ReprogramarTurno,
	listarUC *ucTurno.ListarTurnos,
) *TurnoHandler {
	return &TurnoHandler{
		crearUC:          crearUC,
		disponibilidadUC: disponibilidadUC,
		completarUC:      completarUC,
		cancelarUC:       cancelarUC,
		asignarUC:        asignarUC,
		reprogramarUC:    reprogramarUC,
		listarUC:         listarUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CrearTurnoRequest struct {
	ClienteNombre   string `json:"cliente_nombre" binding:"required"`
	ClienteApellido string `json:"cliente_apellido" binding:"required"`
	ClienteEmail    string `json:"cliente_email" binding:"omitempty,email"`
	ClienteTelefono string `json:"cliente_telefono" binding:"required"`

	ServicioID uint  `json:"servicio_id" binding:"required"`
	BarberoID  *uint `json:"barbero_id"`

	AsignacionDiferida bool `json:"asignacion_diferida"`

	Fecha  string  `json:"fecha" binding:"required"`
	Hora   string  `json:"hora" binding:"required"`
	Precio float64 `json:"precio"`
}

type ActualizarTurnoRequest struct {
	BarberoID *uint   `json:"barbero_id"`
	Fecha     *string `json:"fecha"`
	Hora      *string `json:"hora"`
	Estado    *string `json:"estado"`
}

// ======================================================
// HELPERS
// ======================================================

func usuarioIDDe(c *gin.Context) *uint {
	if v, ok := c.Get(middleware.ContextUsuarioID); ok {
		if id, ok := v.(uint); ok {
			return &id
		}
	}
	return nil
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "id_invalido", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

// ======================================================
// CREATE
// ======================================================

func (h *TurnoHandler) Crear(c *gin.Context) {
	var req CrearTurnoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if !validators.IsTelefonoValid(req.ClienteTelefono) {
		httperr.BadRequest(c, "telefono_invalido", "Teléfono inválido.")
		return
	}

	turno, err := h.crearUC.Execute(c.Request.Context(), ucTurno.CrearTurnoInput{
		ClienteNombre:      req.ClienteNombre,
		ClienteApellido:    req.ClienteApellido,
		ClienteEmail:       req.ClienteEmail,
		ClienteTelefono:    req.ClienteTelefono,
		ServicioID:         req.ServicioID,
		BarberoID:          req.BarberoID,
		AsignacionDiferida: req.AsignacionDiferida,
		Fecha:              req.Fecha,
		Hora:               req.Hora,
		Precio:             req.Precio,
		UsuarioID:          usuarioIDDe(c),
	})
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	httpresp.Created(c, turno)
}

// ======================================================
// DISPONIBILIDAD
// ======================================================

func (h *TurnoHandler) Disponibilidad(c *gin.Context) {
	servicioID, err := strconv.ParseUint(c.Query("servicio_id"), 10, 64)
	if err != nil || servicioID == 0 {
		httperr.BadRequest(c, "servicio_requerido", "Servicio obligatorio.")
		return
	}

	fecha, err := time.ParseInLocation("2006-01-02", c.Query("fecha"), time.UTC)
	if err != nil {
		httperr.BadRequest(c, "fecha_invalida", "Fecha inválida.")
		return
	}

	in := domain.DisponibilidadInput{
		ServicioID: uint(servicioID),
		Fecha:      fecha,
	}

	if raw := c.Query("barbero_id"); raw != "" {
		barberoID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || barberoID == 0 {
			httperr.BadRequest(c, "barbero_invalido", "Barbero inválido.")
			return
		}
		id := uint(barberoID)
		in.BarberoID = &id
	}

	disponibilidad, err := h.disponibilidadUC.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	// Con barbero explícito la respuesta es la lista plana de ese barbero.
	if in.BarberoID != nil && len(disponibilidad) == 1 {
		httpresp.OK(c, gin.H{
			"barbero_id": disponibilidad[0].BarberoID,
			"slots":      disponibilidad[0].Slots,
		})
		return
	}

	httpresp.OK(c, gin.H{"barberos": disponibilidad})
}

// ======================================================
// LIST
// ======================================================

func (h *TurnoHandler) Listar(c *gin.Context) {
	in := ucTurno.ListarTurnosInput{
		Pagina: 1,
		Limite: ucTurno.LimiteDefault,
	}

	if raw := c.Query("pagina"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			httperr.BadRequest(c, "paginacion_invalida", "Página inválida.")
			return
		}
		in.Pagina = p
	}
	if raw := c.Query("limite"); raw != "" {
		l, err := strconv.Atoi(raw)
		if err != nil {
			httperr.BadRequest(c, "paginacion_invalida", "Límite inválido.")
			return
		}
		in.Limite = l
	}

	if raw := c.Query("estado"); raw != "" {
		in.Estado = &raw
	}
	if raw := c.Query("barbero_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "barbero_invalido", "Barbero inválido.")
			return
		}
		bid := uint(id)
		in.BarberoID = &bid
	}
	if raw := c.Query("fecha"); raw != "" {
		in.Fecha = &raw
	}
	if raw := c.Query("desde"); raw != "" {
		in.Desde = &raw
	}
	if raw := c.Query("hasta"); raw != "" {
		in.Hasta = &raw
	}

	res, err := h.listarUC.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	httpresp.List(c, res.Items, res.Total, in.Pagina, in.Limite)
}

// ======================================================
// COMPLETE / CANCEL
// ======================================================

func (h *TurnoHandler) Completar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	turno, err := h.completarUC.Execute(c.Request.Context(), id, usuarioIDDe(c))
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	httpresp.OK(c, turno)
}

func (h *TurnoHandler) Cancelar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	turno, err := h.cancelarUC.Execute(c.Request.Context(), id, usuarioIDDe(c))
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	httpresp.OK(c, turno)
}

// ======================================================
// UPDATE (asignación / reprogramación / estado)
// ======================================================

func (h *TurnoHandler) Actualizar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req ActualizarTurnoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	usuarioID := usuarioIDDe(c)
	ctx := c.Request.Context()

	if req.Estado != nil {
		switch domain.Estado(*req.Estado) {
		case domain.EstadoCompletado:
			turno, err := h.completarUC.Execute(ctx, id, usuarioID)
			if err != nil {
				httperr.FromDomain(c, err)
				return
			}
			httpresp.OK(c, turno)

		case domain.EstadoCancelado:
			turno, err := h.cancelarUC.Execute(ctx, id, usuarioID)
			if err != nil {
				httperr.FromDomain(c, err)
				return
			}
			httpresp.OK(c, turno)

		case domain.EstadoReservado:
			turno, err := h.asignarUC.Execute(ctx, id, req.BarberoID, usuarioID)
			if err != nil {
				httperr.FromDomain(c, err)
				return
			}
			httpresp.OK(c, turno)

		default:
			httperr.BadRequest(c, "estado_invalido", "Estado desconocido.")
		}
		return
	}

	turno, err := h.reprogramarUC.Execute(ctx, ucTurno.ReprogramarTurnoInput{
		TurnoID:   id,
		BarberoID: req.BarberoID,
		Fecha:     req.Fecha,
		Hora:      req.Hora,
		UsuarioID: usuarioID,
	})
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	httpresp.OK(c, turno)
}
