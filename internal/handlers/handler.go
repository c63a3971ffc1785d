package handlers

import (
	"errors"
	"net/http"

	"triage_queue/internal/queue"
	"triage_queue/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Handler struct {
	svc *queue.Service
	log zerolog.Logger
}

func New(svc *queue.Service, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// fail переводит ошибку сервиса в ответ. Отсутствие пациента отличается от сбоя хранилища.
func (h *Handler) fail(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, queue.ErrPatientNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "PATIENT_NOT_FOUND",
			Message: "Пациент не найден",
		})
	case errors.Is(err, queue.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_STATUS",
			Message: "Недопустимый статус пациента",
			Details: err.Error(),
		})
	case errors.Is(err, queue.ErrInvalidPatient):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: message,
			Details: err.Error(),
		})
	}
}

// Ping godoc
// @Summary		Проверка доступности
// @Tags			service
// @Produce		json
// @Success		200	{object}	response.StatusResponse
// @Router			/ping [get]
func (h *Handler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, response.StatusResponse{Status: "active"})
}
