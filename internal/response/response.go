package response

// StatusResponse ответ проверки доступности сервиса
type StatusResponse struct {
	Status string `json:"status" example:"active"`
}

// ErrorResponse представляет ответ с ошибкой API
type ErrorResponse struct {
	// Код ошибки для программной обработки
	// example: VALIDATION_ERROR
	Code string `json:"code"`

	// Человекочитаемое сообщение об ошибке
	// example: Ошибка валидации данных
	Message string `json:"message"`

	// Дополнительные детали об ошибке (опционально)
	// example: поле name обязательно
	Details string `json:"details,omitempty"`
}
