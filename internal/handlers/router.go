package handlers

import (
	"triage_queue/internal/middleware"
	"triage_queue/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter собирает HTTP-маршруты сервиса и каналы обновлений.
func NewRouter(h *Handler, hub *ws.Hub, corsOrigins []string, log zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.Logger(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ping", h.Ping)

	admin := r.Group("/admin")
	{
		admin.POST("/add_patient", h.AddPatientHandler)
		admin.PUT("/update_patient_status/:id", h.UpdatePatientStatusHandler)
		admin.GET("/patients_in_line", h.PatientsInLineHandler)
		admin.GET("/patients_in_treatment", h.PatientsInTreatmentHandler)
		admin.GET("/patients_treated", h.PatientsTreatedHandler)
	}

	patient := r.Group("/patient")
	{
		patient.GET("/waitlist", h.WaitlistHandler)
	}

	live := r.Group("/ws")
	{
		live.GET("/admin", hub.AdminWebSocketHandler)
		live.GET("/patient/:code", hub.PatientWebSocketHandler)
	}

	return r
}
