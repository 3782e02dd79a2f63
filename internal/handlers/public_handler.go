package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/barberia-app/turnos-api/internal/domain/turno"
	"github.com/barberia-app/turnos-api/internal/httperr"
	"github.com/barberia-app/turnos-api/internal/httpresp"
	ucTurno "github.com/barberia-app/turnos-api/internal/usecase/turno"
)

// PublicHandler expone la consulta y cancelación de un turno por su
// código de reserva, sin cuenta. El alta pública y la disponibilidad
// reusan los handlers de turno en rutas sin auth.
type PublicHandler struct {
	repo       domain.Repository
	cancelarUC *ucTurno.CancelarTurno
}

func NewPublicHandler(
	repo domain.Repository,
	cancelarUC *ucTurno.CancelarTurno,
) *PublicHandler {
	return &PublicHandler{
		repo:       repo,
		cancelarUC: cancelarUC,
	}
}

func (h *PublicHandler) GetPorCodigo(c *gin.Context) {
	codigo := c.Param("codigo")
	if codigo == "" {
		httperr.BadRequest(c, "codigo_requerido", "Código obligatorio.")
		return
	}

	turno, err := h.repo.GetTurnoPorCodigo(c.Request.Context(), codigo)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	httpresp.OK(c, turno)
}

func (h *PublicHandler) CancelarPorCodigo(c *gin.Context) {
	codigo := c.Param("codigo")
	if codigo == "" {
		httperr.BadRequest(c, "codigo_requerido", "Código obligatorio.")
		return
	}

	turno, err := h.repo.GetTurnoPorCodigo(c.Request.Context(), codigo)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	cancelado, err := h.cancelarUC.Execute(c.Request.Context(), turno.ID, nil)
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	httpresp.OK(c, cancelado)
}
