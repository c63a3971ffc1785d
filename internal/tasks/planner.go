package tasks

import (
	"context"
	"fmt"
	"time"

	"triage_queue/internal/queue"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const reportTimeout = 10 * time.Second

// ReportQueueLoad пишет в лог сводку по очереди: сколько ждут, сколько на лечении,
// оценку ожидания для нового пациента и число подключённых клиентов.
func ReportQueueLoad(svc *queue.Service, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	summary, err := svc.Summary(ctx)
	if err != nil {
		log.Error().Err(err).Msg("ошибка при сборе сводки по очереди")
		return
	}

	log.Info().
		Int("waiting", summary.Waiting).
		Int("in_treatment", summary.InTreatment).
		Int("new_arrival_wait", summary.NewArrivalWait).
		Int("subscribers", summary.Subscribers).
		Msg("нагрузка на очередь")
}

// InitScheduler инициализирует планировщик cron-задач. Расписание задаётся с секундами.
func InitScheduler(spec string, svc *queue.Service, log zerolog.Logger) (*cron.Cron, error) {
	c := cron.New(cron.WithSeconds())

	if _, err := c.AddFunc(spec, func() { ReportQueueLoad(svc, log) }); err != nil {
		return nil, fmt.Errorf("schedule queue load report %q: %w", spec, err)
	}

	c.Start()
	log.Info().Str("spec", spec).Msg("cron-планировщик запущен")
	return c, nil
}
