package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/barberia-app/turnos-api/internal/config"
	"github.com/barberia-app/turnos-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Usuario{},
		&models.Barbero{},
		&models.Servicio{},
		&models.HorarioLaboral{},
		&models.DiaLibre{},
		&models.Turno{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Resguardo de unicidad para la carrera de reservas: dos escrituras
	// concurrentes del mismo slot no pueden coexistir en estados activos.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_turnos_slot_activo
        ON turnos (barbero_id, fecha, hora)
        WHERE estado IN ('reservado', 'completado')
    `)

	return db
}
