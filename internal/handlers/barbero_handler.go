package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/barberia-app/turnos-api/internal/domain/turno"
	"github.com/barberia-app/turnos-api/internal/httperr"
	"github.com/barberia-app/turnos-api/internal/httpresp"
	"github.com/barberia-app/turnos-api/internal/models"
)

type BarberoHandler struct {
	db *gorm.DB
}

func NewBarberoHandler(db *gorm.DB) *BarberoHandler {
	return &BarberoHandler{db: db}
}

// --------- Requests ---------

type CrearBarberoRequest struct {
	Nombre   string `json:"nombre" binding:"required"`
	Telefono string `json:"telefono"`
}

type HorarioDiaRequest struct {
	DiaSemana int    `json:"dia_semana" binding:"min=0,max=6"`
	Apertura  string `json:"apertura"`
	Cierre    string `json:"cierre"`
	Activo    bool   `json:"activo"`
}

type DiaLibreRequest struct {
	Fecha  string `json:"fecha" binding:"required"`
	Motivo string `json:"motivo"`
}

// --------- Handlers ---------

func (h *BarberoHandler) List(c *gin.Context) {
	var barberos []models.Barbero
	if err := h.db.
		Preload("Horarios").
		Order("id ASC").
		Find(&barberos).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Error al listar barberos.")
		return
	}
	httpresp.OK(c, barberos)
}

func (h *BarberoHandler) Crear(c *gin.Context) {
	var req CrearBarberoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	barbero := models.Barbero{
		Nombre:   req.Nombre,
		Telefono: req.Telefono,
		Activo:   true,
	}

	if err := h.db.Create(&barbero).Error; err != nil {
		httperr.Internal(c, "failed_to_create_barber", "Error al crear barbero.")
		return
	}

	httpresp.Created(c, barbero)
}

// ActualizarHorarios reemplaza la tabla semanal completa del barbero.
func (h *BarberoHandler) ActualizarHorarios(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var barbero models.Barbero
	if err := h.db.First(&barbero, id).Error; err != nil {
		httperr.NotFound(c, "barbero_no_encontrado", "Barbero no encontrado.")
		return
	}

	var req []HorarioDiaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	for _, dia := range req {
		if !dia.Activo {
			continue
		}
		apertura, err := domain.ParseHora(dia.Apertura)
		if err != nil {
			httperr.BadRequest(c, "hora_invalida", "Hora de apertura inválida.")
			return
		}
		cierre, err := domain.ParseHora(dia.Cierre)
		if err != nil {
			httperr.BadRequest(c, "hora_invalida", "Hora de cierre inválida.")
			return
		}
		if cierre <= apertura {
			httperr.BadRequest(c, "ventana_invalida", "El cierre debe ser posterior a la apertura.")
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("barbero_id = ?", barbero.ID).
			Delete(&models.HorarioLaboral{}).Error; err != nil {
			return err
		}

		for _, dia := range req {
			horario := models.HorarioLaboral{
				BarberoID: barbero.ID,
				DiaSemana: dia.DiaSemana,
				Apertura:  dia.Apertura,
				Cierre:    dia.Cierre,
				Activo:    dia.Activo,
			}
			if err := tx.Create(&horario).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_update_hours", "Error al actualizar horarios.")
		return
	}

	httpresp.OK(c, gin.H{"updated": true})
}

func (h *BarberoHandler) AgregarDiaLibre(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var barbero models.Barbero
	if err := h.db.First(&barbero, id).Error; err != nil {
		httperr.NotFound(c, "barbero_no_encontrado", "Barbero no encontrado.")
		return
	}

	var req DiaLibreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	fecha, err := time.ParseInLocation("2006-01-02", req.Fecha, time.UTC)
	if err != nil {
		httperr.BadRequest(c, "fecha_invalida", "Fecha inválida.")
		return
	}

	diaLibre := models.DiaLibre{
		BarberoID: barbero.ID,
		Fecha:     domain.DiaUTC(fecha),
		Motivo:    req.Motivo,
	}

	if err := h.db.Create(&diaLibre).Error; err != nil {
		httperr.Internal(c, "failed_to_create_day_off", "Error al registrar día libre.")
		return
	}

	httpresp.Created(c, diaLibre)
}
