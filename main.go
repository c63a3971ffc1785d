package main

import (
	"triage_queue/cmd"
	_ "triage_queue/docs"
)

// @Title			Очередь приёмного отделения
// @Version		1.0
// @Description	Регистрация пациентов, оценка ожидания и live-обновления по WebSocket
// @BasePath		/
func main() {
	cmd.Execute()
}
