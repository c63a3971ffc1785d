package models

import (
	"time"
)

// Status задаёт состояние пациента в приёмном отделении.
type Status string

const (
	StatusWaiting     Status = "waiting"
	StatusInTreatment Status = "in_treatment"
	StatusTreated     Status = "treated"
)

// Valid сообщает, входит ли статус в допустимый набор.
// Переходы между статусами не ограничиваются: любой статус можно выставить из любого.
func (s Status) Valid() bool {
	switch s {
	case StatusWaiting, StatusInTreatment, StatusTreated:
		return true
	}
	return false
}

type Patient struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Code        string    `json:"code" gorm:"size:3;index;not null"` // Короткий код для поиска, уникальность не гарантируется
	Severity    int       `json:"severity" gorm:"not null"`          // Чем больше, тем срочнее; порядок очереди не меняет
	CheckInTime time.Time `json:"check_in_time" gorm:"index;not null"`
	Status      Status    `json:"status" gorm:"type:varchar(16);index;not null"`
}

// PatientWithWaitTime дополняет запись пациента вычисляемыми полями очереди.
// Поля не хранятся в базе и пересчитываются при каждом чтении.
type PatientWithWaitTime struct {
	Patient
	WaitTime       int `json:"wait_time"`
	PositionInLine int `json:"position_in_line"`
}
