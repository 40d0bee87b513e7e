package schedule

import (
	"context"
	"fmt"
	"time"

	"team-recruiting-backend/db"
	applicationstore "team-recruiting-backend/lib/application/store"
	"team-recruiting-backend/lib/calendar"
	schedulepolicy "team-recruiting-backend/lib/schedule/policy"
	"team-recruiting-backend/lib/utils/helpers"
	initchecker "team-recruiting-backend/lib/utils/init-checker"
	"team-recruiting-backend/models"
	calendarapimodels "team-recruiting-backend/models/api/calendar"
	scheduleapimodels "team-recruiting-backend/models/api/schedule"
	dbmodels "team-recruiting-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Coordinator бронирует слот интервью против внешнего календаря в три фазы:
// reserve (атомарный переход pending -> scheduling, он же и есть блокировка),
// внешняя проверка и создание события вне транзакции,
// confirm/rollback (scheduling -> scheduled либо откат в pending).
// Всё состояние координации живёт в записи заявки, сам координатор stateless
type Provider interface {
	Book(ctx context.Context, applicationID, candidateID, system string, start time.Time) (*scheduleapimodels.BookingResult, error)
	Cancel(ctx context.Context, applicationID, system, reason, cancelledBy string) error
	MarkOutcome(applicationID, system string, outcome models.OfferStatus) error
	// ReclaimStuck откатывает брони, зависшие в scheduling дольше ttl:
	// упавший между фазами процесс не должен навечно держать слот
	ReclaimStuck(ctx context.Context, ttl time.Duration) (reclaimed int, err error)
}

var Instance Provider

func NewHandler() {
	initchecker.CheckInit(
		"schedulepolicy.Instance", schedulepolicy.Instance,
		"calendar.Instance", calendar.Instance,
	)
	Instance = impl{
		store:    applicationstore.NewInstance(db.DB),
		policy:   schedulepolicy.Instance,
		calendar: calendar.Instance,
	}
}

type impl struct {
	store    applicationstore.Provider
	policy   schedulepolicy.Provider
	calendar calendar.Provider
}

func (i impl) Book(ctx context.Context, applicationID, candidateID, system string, start time.Time) (*scheduleapimodels.BookingResult, error) {
	rec, err := i.store.GetByID(applicationID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка чтения заявки")
	}
	if rec == nil {
		return nil, models.ErrNotFound
	}
	if candidateID != "" && rec.CandidateID != candidateID {
		return nil, models.ErrForbidden
	}
	policy, err := i.policy.GetByTeamSystem(rec.Team, system)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка чтения политики бронирования")
	}
	if policy == nil {
		return nil, errors.Wrap(models.ErrNotFound, "для системы не настроено расписание интервью")
	}
	end := start.Add(policy.Duration())

	logger := log.
		WithField("application_id", applicationID).
		WithField("system", system).
		WithField("slot_start", start)

	// фаза 1: захват брони. Атомарность записи заявки гарантирует, что из
	// двух гонящихся запросов scheduling поставит ровно один, второй увидит
	// чужую бронь и получит конфликт
	_, err = i.store.UpdateTx(applicationID, func(rec *dbmodels.Application) error {
		offer := rec.FindInterviewOffer(system)
		if offer == nil {
			return errors.Wrap(models.ErrNotFound, "приглашение на интервью не найдено")
		}
		switch offer.Status {
		case models.OfferStatusScheduled:
			return models.ErrAlreadyScheduled
		case models.OfferStatusScheduling:
			return models.ErrReservationInProgress
		case models.OfferStatusPending:
		default:
			return errors.Wrap(models.ErrInvalidTransition, "интервью уже завершено или отменено")
		}
		now := time.Now()
		offer.Status = models.OfferStatusScheduling
		offer.ScheduledAt = &start
		offer.ScheduledEndAt = &end
		offer.ScheduledOnDate = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Info("слот зарезервирован, бронируем в календаре")

	// фаза 2: вне транзакции, любая ошибка ведёт к откату
	eventID, err := i.bookExternal(ctx, *policy, rec.Team, system, start, end)
	if err != nil {
		i.rollback(applicationID, system, logger)
		return nil, err
	}

	// фаза 3: подтверждение
	_, err = i.store.UpdateTx(applicationID, func(rec *dbmodels.Application) error {
		offer := rec.FindInterviewOffer(system)
		if offer == nil || offer.Status != models.OfferStatusScheduling {
			// бронь успели отозвать, событие осталось сиротой
			return errors.Wrap(models.ErrInvalidTransition, "бронь была отозвана, попробуйте снова")
		}
		offer.Status = models.OfferStatusScheduled
		offer.ExternalEventID = eventID
		return nil
	})
	if err != nil {
		i.deleteEventQuiet(ctx, policy.CalendarID, eventID, logger)
		return nil, err
	}
	logger.WithField("event_id", eventID).Info("интервью назначено")
	return &scheduleapimodels.BookingResult{
		System:          system,
		ScheduledAt:     start,
		ScheduledEndAt:  end,
		ExternalEventID: eventID,
	}, nil
}

// bookExternal проверяет окно политики и занятость календаря, затем создаёт
// событие. Неполные данные календаря трактуем как занятость (fail closed)
func (i impl) bookExternal(ctx context.Context, policy dbmodels.SchedulingPolicy, team models.Team, system string, start, end time.Time) (string, error) {
	if err := ensureInsideWindow(policy, start, end); err != nil {
		return "", err
	}
	from := start.Add(-policy.Buffer())
	to := end.Add(policy.Buffer())
	events, err := i.calendar.ListEvents(ctx, policy.CalendarID, from, to)
	if err != nil {
		return "", err
	}
	if hasOverlap(events, start, end, policy.Buffer()) {
		return "", errors.New("слот пересекается с другим событием календаря")
	}
	return i.calendar.CreateEvent(ctx, policy.CalendarID, calendarapimodels.CreateEventRequest{
		Summary:   fmt.Sprintf("Интервью: %v / %v", team.ToHuman(), system),
		Start:     start,
		End:       end,
		Attendees: policy.InterviewerEmails,
	})
}

// rollback возвращает оффер ровно в pending с очисткой полей брони.
// Неудачный откат оставляет состояние рассогласованным с календарём,
// это алертовая ситуация, а не пользовательская ошибка
func (i impl) rollback(applicationID, system string, logger *log.Entry) {
	_, err := i.store.UpdateTx(applicationID, func(rec *dbmodels.Application) error {
		offer := rec.FindInterviewOffer(system)
		if offer == nil || offer.Status != models.OfferStatusScheduling {
			return nil
		}
		offer.ClearSchedule()
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("откат брони не удался, оффер завис в scheduling, требуется вмешательство")
		return
	}
	logger.Info("бронь откачена")
}

func (i impl) deleteEventQuiet(ctx context.Context, calendarID, eventID string, logger *log.Entry) {
	if err := i.calendar.DeleteEvent(ctx, calendarID, eventID); err != nil {
		logger.
			WithError(err).
			WithField("event_id", eventID).
			Warn("не удалось удалить событие календаря")
	}
}

func (i impl) Cancel(ctx context.Context, applicationID, system, reason, cancelledBy string) error {
	if reason == "" {
		return errors.New("не указана причина отмены")
	}
	var eventID string
	var team models.Team
	_, err := i.store.UpdateTx(applicationID, func(rec *dbmodels.Application) error {
		offer := rec.FindInterviewOffer(system)
		if offer == nil {
			return errors.Wrap(models.ErrNotFound, "приглашение на интервью не найдено")
		}
		if !offer.Status.IsAllowTransition(models.OfferStatusCancelled) {
			return errors.Wrap(models.ErrInvalidTransition, "в этом статусе бронь не отменяется")
		}
		now := time.Now()
		eventID = offer.ExternalEventID
		team = rec.Team
		offer.Status = models.OfferStatusCancelled
		offer.CancelledAt = &now
		offer.CancelReason = reason
		return nil
	})
	if err != nil {
		return err
	}
	logger := log.
		WithField("application_id", applicationID).
		WithField("system", system).
		WithField("cancelled_by", cancelledBy)
	logger.Info("интервью отменено")

	// состояние заявки считается источником истины, удаление события best-effort
	if eventID != "" {
		policy, err := i.policy.GetByTeamSystem(team, system)
		if err != nil || policy == nil {
			logger.WithError(err).Warn("политика не найдена, событие календаря не удалено")
			return nil
		}
		i.deleteEventQuiet(ctx, policy.CalendarID, eventID, logger)
	}
	return nil
}

func (i impl) MarkOutcome(applicationID, system string, outcome models.OfferStatus) error {
	_, err := i.store.UpdateTx(applicationID, func(rec *dbmodels.Application) error {
		offer := rec.FindInterviewOffer(system)
		if offer == nil {
			return errors.Wrap(models.ErrNotFound, "приглашение на интервью не найдено")
		}
		if !offer.Status.IsAllowTransition(outcome) {
			return errors.Wrap(models.ErrInvalidTransition, "итог можно выставить только назначенному интервью")
		}
		offer.Status = outcome
		return nil
	})
	return err
}

func (i impl) ReclaimStuck(ctx context.Context, ttl time.Duration) (int, error) {
	list, err := i.store.ListWithSchedulingOffers()
	if err != nil {
		return 0, errors.Wrap(err, "ошибка поиска зависших броней")
	}
	cutoff := time.Now().Add(-ttl)
	total := 0
	for _, rec := range list {
		if helpers.IsContextDone(ctx) {
			return total, nil
		}
		reclaimed := 0
		_, err = i.store.UpdateTx(rec.ID, func(rec *dbmodels.Application) error {
			reclaimed = 0
			for idx := range rec.InterviewOffers {
				offer := &rec.InterviewOffers[idx]
				if offer.Status != models.OfferStatusScheduling {
					continue
				}
				if offer.ScheduledOnDate != nil && offer.ScheduledOnDate.After(cutoff) {
					continue
				}
				offer.ClearSchedule()
				reclaimed++
			}
			return nil
		})
		if err != nil {
			log.
				WithError(err).
				WithField("application_id", rec.ID).
				Error("не удалось откатить зависшую бронь")
			continue
		}
		if reclaimed > 0 {
			log.
				WithField("application_id", rec.ID).
				WithField("count", reclaimed).
				Warn("откачены зависшие брони")
			total += reclaimed
		}
	}
	return total, nil
}
