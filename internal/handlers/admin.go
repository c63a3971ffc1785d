package handlers

import (
	"net/http"
	"strconv"

	"triage_queue/internal/models"
	"triage_queue/internal/response"

	"github.com/gin-gonic/gin"
)

type AddPatientRequest struct {
	Name     string `json:"name" binding:"required"`
	Severity *int   `json:"severity" binding:"required,gte=0"`
}

type UpdateStatusRequest struct {
	Status models.Status `json:"status" binding:"required"`
}

// AddPatientHandler регистрирует пациента в очереди
// @Summary		Регистрация пациента
// @Description	Создаёт пациента со статусом waiting, генерирует код и уведомляет подписчиков
// @Tags			admin
// @Accept			json
// @Produce		json
// @Param			patient	body		AddPatientRequest		true	"Имя и тяжесть состояния"
// @Success		200		{object}	models.Patient			"Созданный пациент"
// @Failure		400		{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR) или хранилища (DB_ERROR)"
// @Router			/admin/add_patient [post]
func (h *Handler) AddPatientHandler(c *gin.Context) {
	var req AddPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	patient, err := h.svc.CheckIn(c.Request.Context(), req.Name, *req.Severity)
	if err != nil {
		h.fail(c, err, "Ошибка добавления пациента")
		return
	}

	c.JSON(http.StatusOK, patient)
}

// UpdatePatientStatusHandler меняет статус пациента
// @Summary		Смена статуса пациента
// @Description	Выставляет статус waiting, in_treatment или treated и уведомляет подписчиков
// @Tags			admin
// @Accept			json
// @Produce		json
// @Param			id		path		int						true	"ID пациента"
// @Param			status	body		UpdateStatusRequest		true	"Новый статус"
// @Success		200		{object}	models.Patient			"Обновлённый пациент"
// @Failure		400		{object}	response.ErrorResponse	"Ошибка валидации (INVALID_PATIENT_ID, INVALID_STATUS) или хранилища (DB_ERROR)"
// @Failure		404		{object}	response.ErrorResponse	"Пациент не найден (PATIENT_NOT_FOUND)"
// @Router			/admin/update_patient_status/{id} [put]
func (h *Handler) UpdatePatientStatusHandler(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_PATIENT_ID",
			Message: "Неверный идентификатор пациента",
		})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	patient, err := h.svc.UpdateStatus(c.Request.Context(), uint(id), req.Status)
	if err != nil {
		h.fail(c, err, "Ошибка обновления статуса пациента")
		return
	}

	c.JSON(http.StatusOK, patient)
}

// PatientsInLineHandler возвращает очередь ожидания
// @Summary		Очередь ожидания
// @Description	Пациенты в статусе waiting по времени регистрации, с позицией и оценкой ожидания
// @Tags			admin
// @Produce		json
// @Success		200	{array}		models.PatientWithWaitTime
// @Failure		400	{object}	response.ErrorResponse	"Ошибка хранилища (DB_ERROR)"
// @Router			/admin/patients_in_line [get]
func (h *Handler) PatientsInLineHandler(c *gin.Context) {
	patients, err := h.svc.WaitingQueue(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Ошибка загрузки очереди")
		return
	}
	c.JSON(http.StatusOK, patients)
}

// PatientsInTreatmentHandler возвращает пациентов на лечении
// @Summary		Пациенты на лечении
// @Tags			admin
// @Produce		json
// @Success		200	{array}		models.Patient
// @Failure		400	{object}	response.ErrorResponse	"Ошибка хранилища (DB_ERROR)"
// @Router			/admin/patients_in_treatment [get]
func (h *Handler) PatientsInTreatmentHandler(c *gin.Context) {
	patients, err := h.svc.InTreatment(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Ошибка загрузки пациентов на лечении")
		return
	}
	c.JSON(http.StatusOK, patients)
}

// PatientsTreatedHandler возвращает последних вылеченных пациентов
// @Summary		Вылеченные пациенты
// @Description	10 последних пациентов в статусе treated, новые первыми
// @Tags			admin
// @Produce		json
// @Success		200	{array}		models.Patient
// @Failure		400	{object}	response.ErrorResponse	"Ошибка хранилища (DB_ERROR)"
// @Router			/admin/patients_treated [get]
func (h *Handler) PatientsTreatedHandler(c *gin.Context) {
	patients, err := h.svc.RecentlyTreated(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Ошибка загрузки вылеченных пациентов")
		return
	}
	c.JSON(http.StatusOK, patients)
}
