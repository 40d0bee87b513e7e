package reclaimworker

import (
	"context"
	"time"

	"team-recruiting-backend/config"
	"team-recruiting-backend/lib/schedule"
	baseworker "team-recruiting-backend/lib/utils/base-worker"
	"team-recruiting-backend/lib/utils/lock"
)

const reclaimLockKey = "stuck-reservation-reclaim"

// Фоновая задача отката зависших броней: оффер, застрявший в scheduling
// дольше ttl (процесс упал между фазами брони), возвращается в pending.
// Это обязательная часть протокола бронирования, а не опциональная уборка
func StartWorker(ctx context.Context) {
	ttl := time.Duration(config.Conf.Schedule.ReservationTTLMinutes) * time.Minute
	interval := time.Duration(config.Conf.Schedule.ReclaimIntervalSeconds) * time.Second
	worker := baseworker.NewInstance("StuckReservationReclaim", interval, interval)
	job := func(ctx context.Context) {
		// не запускаем новый проход, пока не закончился предыдущий
		started, err := lock.WithDelay(ctx, reclaimLockKey, time.Second, func() error {
			reclaimed, err := schedule.Instance.ReclaimStuck(ctx, ttl)
			if err != nil {
				return err
			}
			if reclaimed > 0 {
				worker.GetLogger().WithField("count", reclaimed).Info("зависшие брони откачены")
			}
			return nil
		})
		if err != nil {
			worker.GetLogger().WithError(err).Error("ошибка отката зависших броней")
			return
		}
		if !started {
			worker.GetLogger().Warn("предыдущий проход ещё не завершён, пропуск")
		}
	}
	go worker.Run(ctx, job)
}
