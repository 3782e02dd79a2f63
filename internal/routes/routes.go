package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barberia-app/turnos-api/internal/audit"
	"github.com/barberia-app/turnos-api/internal/cache"
	"github.com/barberia-app/turnos-api/internal/config"
	"github.com/barberia-app/turnos-api/internal/handlers"
	infraRepo "github.com/barberia-app/turnos-api/internal/infra/repository"
	"github.com/barberia-app/turnos-api/internal/middleware"
	ucTurno "github.com/barberia-app/turnos-api/internal/usecase/turno"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	turnoRepo := infraRepo.NewTurnoGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	availabilityCache := cache.NewAvailability(cfg.RedisURL)

	// ======================================================
	// USE CASES
	// ======================================================
	crearUC := ucTurno.NewCrearTurno(turnoRepo, auditDispatcher, availabilityCache, cfg.Timezone)
	disponibilidadUC := ucTurno.NewDisponibilidad(turnoRepo, availabilityCache, cfg.Timezone)
	completarUC := ucTurno.NewCompletarTurno(turnoRepo, auditDispatcher, cfg.Timezone)
	cancelarUC := ucTurno.NewCancelarTurno(turnoRepo, auditDispatcher, availabilityCache, cfg.Timezone)
	asignarUC := ucTurno.NewAsignarBarbero(turnoRepo, auditDispatcher, availabilityCache, cfg.Timezone)
	reprogramarUC := ucTurno.NewReprogramarTurno(turnoRepo, auditDispatcher, availabilityCache, cfg.Timezone)
	listarUC := ucTurno.NewListarTurnos(turnoRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	servicioHandler := handlers.NewServicioHandler(db)
	barberoHandler := handlers.NewBarberoHandler(db)

	turnoHandler := handlers.NewTurnoHandler(
		crearUC,
		disponibilidadUC,
		completarUC,
		cancelarUC,
		asignarUC,
		reprogramarUC,
		listarUC,
	)

	publicHandler := handlers.NewPublicHandler(turnoRepo, cancelarUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/servicios", servicioHandler.List)
			publicAPI.GET("/disponibilidad", turnoHandler.Disponibilidad)
			publicAPI.POST("/turnos", turnoHandler.Crear)
			publicAPI.GET("/turnos/:codigo", publicHandler.GetPorCodigo)
			publicAPI.POST("/turnos/:codigo/cancelar", publicHandler.CancelarPorCodigo)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/servicios", servicioHandler.List)
			secured.POST("/servicios", servicioHandler.Crear)
			secured.PATCH("/servicios/:id", servicioHandler.Actualizar)

			secured.GET("/barberos", barberoHandler.List)
			secured.POST("/barberos", barberoHandler.Crear)
			secured.PUT("/barberos/:id/horarios", barberoHandler.ActualizarHorarios)
			secured.POST("/barberos/:id/dias-libres", barberoHandler.AgregarDiaLibre)

			secured.GET("/disponibilidad", turnoHandler.Disponibilidad)

			secured.GET("/turnos", turnoHandler.Listar)
			secured.POST("/turnos", turnoHandler.Crear)
			secured.PATCH("/turnos/:id", turnoHandler.Actualizar)
			secured.POST("/turnos/:id/completar", turnoHandler.Completar)
			secured.POST("/turnos/:id/cancelar", turnoHandler.Cancelar)
		}
	}
}
