package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barberia-app/turnos-api/internal/httperr"
	"github.com/barberia-app/turnos-api/internal/httpresp"
	"github.com/barberia-app/turnos-api/internal/models"
)

type ServicioHandler struct {
	db *gorm.DB
}

func NewServicioHandler(db *gorm.DB) *ServicioHandler {
	return &ServicioHandler{db: db}
}

type CrearServicioRequest struct {
	Nombre      string  `json:"nombre" binding:"required"`
	Descripcion string  `json:"descripcion"`
	DuracionMin int     `json:"duracion_min" binding:"required,gt=0"`
	PrecioBase  float64 `json:"precio_base" binding:"gte=0"`
}

type ActualizarServicioRequest struct {
	Nombre      *string  `json:"nombre"`
	Descripcion *string  `json:"descripcion"`
	DuracionMin *int     `json:"duracion_min"`
	PrecioBase  *float64 `json:"precio_base"`
	Activo      *bool    `json:"activo"`
}

func (h *ServicioHandler) List(c *gin.Context) {
	var servicios []models.Servicio
	if err := h.db.Order("id ASC").Find(&servicios).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Error al listar servicios.")
		return
	}
	httpresp.OK(c, servicios)
}

func (h *ServicioHandler) Crear(c *gin.Context) {
	var req CrearServicioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	servicio := models.Servicio{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		DuracionMin: req.DuracionMin,
		PrecioBase:  req.PrecioBase,
		Activo:      true,
	}

	if err := h.db.Create(&servicio).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Error al crear servicio.")
		return
	}

	httpresp.Created(c, servicio)
}

func (h *ServicioHandler) Actualizar(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var servicio models.Servicio
	if err := h.db.First(&servicio, id).Error; err != nil {
		httperr.NotFound(c, "servicio_no_encontrado", "Servicio no encontrado.")
		return
	}

	var req ActualizarServicioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if req.Nombre != nil {
		servicio.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		servicio.Descripcion = *req.Descripcion
	}
	if req.DuracionMin != nil {
		if *req.DuracionMin <= 0 {
			httperr.BadRequest(c, "duracion_invalida", "La duración debe ser positiva.")
			return
		}
		servicio.DuracionMin = *req.DuracionMin
	}
	if req.PrecioBase != nil {
		servicio.PrecioBase = *req.PrecioBase
	}
	if req.Activo != nil {
		servicio.Activo = *req.Activo
	}

	if err := h.db.Save(&servicio).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Error al actualizar servicio.")
		return
	}

	httpresp.OK(c, servicio)
}
