package audit

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/barberia-app/turnos-api/internal/models"
)

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(
	usuarioID *uint,
	accion string,
	entidad string,
	entidadID *uint,
	metadata any,
) error {

	var metaJSON string
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.AuditLog{
		UsuarioID: usuarioID,
		Accion:    accion,
		Entidad:   entidad,
		EntidadID: entidadID,
		Metadata:  metaJSON,
	}

	return l.db.Create(&entry).Error
}
