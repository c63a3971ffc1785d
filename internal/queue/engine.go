package queue

import "triage_queue/internal/models"

// Минут ожидания на единицу тяжести.
const minutesPerSeverity = 10

// Entry описывает участника очереди ожидания.
type Entry struct {
	ID       uint
	Severity int
}

// Placement содержит позицию в очереди (с 1) и оценку ожидания.
// Нулевое значение означает «пациента нет в очереди».
type Placement struct {
	WaitTime int
	Position int
}

// EntriesOf строит очередь из пациентов, уже упорядоченных по времени регистрации.
func EntriesOf(patients []models.Patient) []Entry {
	entries := make([]Entry, len(patients))
	for i, p := range patients {
		entries[i] = Entry{ID: p.ID, Severity: p.Severity}
	}
	return entries
}

// Locate проходит очередь с начала и суммирует severity*10 всех, кто стоит раньше id.
// Если id в очереди нет, возвращает нулевую Placement.
func Locate(queue []Entry, id uint) Placement {
	wait := 0
	for i, e := range queue {
		if e.ID == id {
			return Placement{WaitTime: wait, Position: i + 1}
		}
		wait += e.Severity * minutesPerSeverity
	}
	return Placement{}
}

// Annotate считает Placement для всех участников за один проход.
// Для каждого id результат совпадает с Locate; при повторе id побеждает первое вхождение.
func Annotate(queue []Entry) map[uint]Placement {
	out := make(map[uint]Placement, len(queue))
	wait := 0
	for i, e := range queue {
		if _, seen := out[e.ID]; !seen {
			out[e.ID] = Placement{WaitTime: wait, Position: i + 1}
		}
		wait += e.Severity * minutesPerSeverity
	}
	return out
}

// TotalWait возвращает ожидание для пациента, который встанет в конец очереди сейчас.
func TotalWait(queue []Entry) int {
	wait := 0
	for _, e := range queue {
		wait += e.Severity * minutesPerSeverity
	}
	return wait
}
