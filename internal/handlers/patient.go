package handlers

import (
	"net/http"

	"triage_queue/internal/response"

	"github.com/gin-gonic/gin"
)

// WaitlistHandler возвращает позицию пациента в очереди
// @Summary		Позиция пациента
// @Description	Ищет пациента по коду и имени; для пациента не в очереди позиция и ожидание равны 0
// @Tags			patient
// @Produce		json
// @Param			code	query		string	true	"Код пациента"
// @Param			name	query		string	true	"Имя пациента"
// @Success		200		{object}	models.PatientWithWaitTime
// @Failure		400		{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR) или хранилища (DB_ERROR)"
// @Failure		404		{object}	response.ErrorResponse	"Пациент не найден (PATIENT_NOT_FOUND)"
// @Router			/patient/waitlist [get]
func (h *Handler) WaitlistHandler(c *gin.Context) {
	code := c.Query("code")
	name := c.Query("name")
	if code == "" || name == "" {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Необходимо указать code и name",
		})
		return
	}

	patient, err := h.svc.Lookup(c.Request.Context(), code, name)
	if err != nil {
		h.fail(c, err, "Ошибка поиска пациента")
		return
	}

	h.log.Debug().Uint("patient_id", patient.ID).
		Int("wait_time", patient.WaitTime).
		Int("position_in_line", patient.PositionInLine).
		Msg("рассчитана позиция пациента")
	c.JSON(http.StatusOK, patient)
}
