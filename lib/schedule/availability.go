package schedule

import (
	"time"

	calendarapimodels "team-recruiting-backend/models/api/calendar"
	dbmodels "team-recruiting-backend/models/db"

	"github.com/pkg/errors"
)

// ensureInsideWindow проверяет, что слот попадает в доступное окно политики:
// день недели и часы считаются в таймзоне политики. Проверка идёт до любого
// обращения к календарю.
func ensureInsideWindow(policy dbmodels.SchedulingPolicy, start, end time.Time) error {
	loc, err := time.LoadLocation(policy.Timezone)
	if err != nil {
		return errors.Wrap(err, "неизвестная таймзона в политике бронирования")
	}
	localStart := start.In(loc)
	localEnd := end.In(loc)

	dayAllowed := false
	for _, day := range policy.AvailableDays {
		if int(localStart.Weekday()) == int(day) {
			dayAllowed = true
			break
		}
	}
	if !dayAllowed {
		return errors.New("в этот день недели интервью не проводятся")
	}
	if localStart.Hour() < policy.AvailableStartHour {
		return errors.New("слот раньше начала доступного окна")
	}
	// конец слота не должен вылезать за последний доступный час
	endLimit := time.Date(localStart.Year(), localStart.Month(), localStart.Day(),
		policy.AvailableEndHour, 0, 0, 0, loc)
	if localEnd.After(endLimit) {
		return errors.New("слот выходит за конец доступного окна")
	}
	return nil
}

// hasOverlap ищет пересечение слота с существующими событиями, расширяя слот
// буфером политики с обеих сторон
func hasOverlap(events []calendarapimodels.Event, start, end time.Time, buffer time.Duration) bool {
	paddedStart := start.Add(-buffer)
	paddedEnd := end.Add(buffer)
	for _, event := range events {
		if event.Start.Before(paddedEnd) && paddedStart.Before(event.End) {
			return true
		}
	}
	return false
}
