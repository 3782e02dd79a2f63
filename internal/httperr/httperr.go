package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// FromDomain mapea la taxonomía del core a códigos HTTP. Cualquier error
// no tipado se trata como falla interna.
func FromDomain(c *gin.Context, err error) {
	var de DomainError
	if !errors.As(err, &de) {
		Internal(c, "internal_error", "Error inesperado.")
		return
	}

	status := http.StatusInternalServerError
	switch de.Kind {
	case KindValidation:
		status = http.StatusBadRequest
	case KindNotFound:
		status = http.StatusNotFound
	case KindConflict, KindInvalidTransition:
		status = http.StatusConflict
	case KindInfrastructure:
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, HTTPError{
		Code:    de.Code,
		Message: mensaje(de.Code),
		Detail:  de.Detail,
	})
}

var mensajes = map[string]string{
	"servicio_no_encontrado":       "Servicio no encontrado.",
	"barbero_no_encontrado":        "Barbero no encontrado.",
	"turno_no_encontrado":          "Turno no encontrado.",
	"turno_superpuesto":            "El horario ya no está disponible.",
	"turno_modificado":             "El turno fue modificado por otra operación.",
	"sin_barbero_disponible":       "Ningún barbero disponible en ese horario.",
	"transicion_invalida":          "El turno no admite ese cambio de estado.",
	"fecha_pasada":                 "La fecha y hora no pueden estar en el pasado.",
	"fecha_invalida":               "Fecha inválida.",
	"hora_invalida":                "Hora inválida.",
	"precio_fuera_de_rango":        "Precio fuera de rango.",
	"fuera_de_horario":             "Fuera del horario de atención.",
	"rango_fechas_invalido":        "El rango de fechas es inválido.",
	"paginacion_invalida":          "Parámetros de paginación inválidos.",
	"estado_invalido":              "Estado desconocido.",
	"barbero_requerido":            "El turno necesita un barbero asignado.",
	"almacenamiento_no_disponible": "Servicio temporalmente no disponible, reintente.",
}

func mensaje(code string) string {
	if m, ok := mensajes[code]; ok {
		return m
	}
	return "Operación rechazada."
}
