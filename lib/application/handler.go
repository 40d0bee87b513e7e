package application

import (
	"time"

	"team-recruiting-backend/db"
	applicationstore "team-recruiting-backend/lib/application/store"
	"team-recruiting-backend/models"
	applicationapimodels "team-recruiting-backend/models/api/application"
	dbmodels "team-recruiting-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(data dbmodels.CreateApplicationData) (id string, err error)
	Submit(candidateID, id string) error
	GetByID(id string) (*dbmodels.Application, error)
	ListByCandidate(candidateID string) ([]dbmodels.Application, error)
	List(filter dbmodels.ApplicationFilter) ([]applicationapimodels.ApplicationView, error)

	ExtendInterviewOffers(id string, systems []string) error
	RejectFromSystems(id string, systems []string) (fullyRejected bool, err error)
	ExtendTrialOffer(id, system string) error
	RecordTrialResponse(candidateID, id string, accepted bool, rejectionReason string) error
	Accept(id, system, role, details string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: applicationstore.NewInstance(db.DB),
	}
}

type impl struct {
	store applicationstore.Provider
}

func (i impl) Create(data dbmodels.CreateApplicationData) (string, error) {
	if err := data.Validate(); err != nil {
		return "", err
	}
	existing, err := i.store.GetByCandidateTeam(data.CandidateID, data.Team)
	if err != nil {
		return "", errors.Wrap(err, "ошибка проверки существующей заявки")
	}
	if existing != nil {
		return "", errors.New("заявка в эту команду уже существует")
	}
	rec := dbmodels.Application{
		CandidateID:       data.CandidateID,
		Team:              data.Team,
		Status:            models.ApplicationStatusInProgress,
		PreferredSystems:  data.PreferredSystems,
		InterviewOffers:   dbmodels.InterviewOfferList{},
		TrialOffers:       dbmodels.TrialOfferList{},
		RejectedBySystems: []string{},
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания заявки")
	}
	return id, nil
}

func (i impl) Submit(candidateID, id string) error {
	_, err := i.store.UpdateTx(id, func(rec *dbmodels.Application) error {
		if rec.CandidateID != candidateID {
			return models.ErrForbidden
		}
		if rec.Status != models.ApplicationStatusInProgress {
			return errors.Wrap(models.ErrInvalidTransition, "заявка уже отправлена")
		}
		now := time.Now()
		rec.Status = models.ApplicationStatusSubmitted
		rec.SubmittedAt = &now
		return nil
	})
	return err
}

func (i impl) GetByID(id string) (*dbmodels.Application, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, models.ErrNotFound
	}
	return rec, nil
}

func (i impl) ListByCandidate(candidateID string) ([]dbmodels.Application, error) {
	return i.store.ListByCandidate(candidateID)
}

func (i impl) List(filter dbmodels.ApplicationFilter) ([]applicationapimodels.ApplicationView, error) {
	list, err := i.store.List(filter)
	if err != nil {
		return nil, err
	}
	result := make([]applicationapimodels.ApplicationView, 0, len(list))
	for _, rec := range list {
		result = append(result, applicationapimodels.ApplicationConvert(rec))
	}
	return result, nil
}

// ExtendInterviewOffers добавляет pending-офферы для систем без оффера,
// снимает с них прежний отказ и двигает заявку в interview.
// Повторный оффер уже приглашённой системе не делает ничего
func (i impl) ExtendInterviewOffers(id string, systems []string) error {
	if len(systems) == 0 {
		return errors.New("не указаны системы")
	}
	_, err := i.store.UpdateTx(id, func(rec *dbmodels.Application) error {
		for _, system := range systems {
			rec.RejectedBySystems = removeSystem(rec.RejectedBySystems, system)
			if offer := rec.FindInterviewOffer(system); offer != nil {
				if offer.Status.IsActive() {
					continue
				}
				// у системы не больше одного оффера: отменённый переоткрываем
				offer.ClearSchedule()
				offer.CancelledAt = nil
				offer.CancelReason = ""
				offer.CreatedAt = time.Now()
				continue
			}
			rec.InterviewOffers = append(rec.InterviewOffers, dbmodels.InterviewOffer{
				System:    system,
				Status:    models.OfferStatusPending,
				CreatedAt: time.Now(),
			})
		}
		if rec.Status == models.ApplicationStatusRejected ||
			rec.Status.Rank() < models.ApplicationStatusInterview.Rank() {
			rec.Status = models.ApplicationStatusInterview
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.
		WithField("application_id", id).
		WithField("systems", systems).
		Info("выданы приглашения на интервью")
	return nil
}

// RejectFromSystems снимает офферы указанных систем и помечает отказ.
// Заявка становится rejected только когда активных офферов не осталось:
// отказ одной системы при живом оффере другой статус не трогает
func (i impl) RejectFromSystems(id string, systems []string) (fullyRejected bool, err error) {
	if len(systems) == 0 {
		return false, errors.New("не указаны системы")
	}
	_, err = i.store.UpdateTx(id, func(rec *dbmodels.Application) error {
		fullyRejected = false
		for _, system := range systems {
			rec.InterviewOffers = removeOffers(rec.InterviewOffers, system)
			if !rec.IsRejectedBySystem(system) {
				rec.RejectedBySystems = append(rec.RejectedBySystems, system)
			}
		}
		if rec.ActiveOfferCount() == 0 && rec.Status != models.ApplicationStatusAccepted {
			rec.Status = models.ApplicationStatusRejected
			fullyRejected = true
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	log.
		WithField("application_id", id).
		WithField("systems", systems).
		WithField("fully_rejected", fullyRejected).
		Info("зафиксирован отказ систем")
	return fullyRejected, nil
}

func (i impl) ExtendTrialOffer(id, system string) error {
	if system == "" {
		return errors.New("не указана система")
	}
	_, err := i.store.UpdateTx(id, func(rec *dbmodels.Application) error {
		if rec.UnresolvedTrialOffer() != nil {
			return errors.Wrap(models.ErrInvalidTransition, "есть приглашение на пробный день без ответа")
		}
		// пробный день без предшествующего интервью не выдаём
		offer := rec.FindInterviewOffer(system)
		if offer == nil || !offer.Status.IsActive() || rec.IsRejectedBySystem(system) {
			return errors.Wrap(models.ErrInvalidTransition, "система не приглашала кандидата на интервью")
		}
		rec.TrialOffers = append(rec.TrialOffers, dbmodels.TrialOffer{
			System:    system,
			Status:    models.OfferStatusPending,
			CreatedAt: time.Now(),
		})
		rec.Status = models.ApplicationStatusTrial
		return nil
	})
	return err
}

func (i impl) RecordTrialResponse(candidateID, id string, accepted bool, rejectionReason string) error {
	if !accepted && rejectionReason == "" {
		return errors.New("при отказе нужно указать причину")
	}
	_, err := i.store.UpdateTx(id, func(rec *dbmodels.Application) error {
		if rec.CandidateID != candidateID {
			return models.ErrForbidden
		}
		if len(rec.TrialOffers) == 0 {
			return errors.Wrap(models.ErrNotFound, "приглашение на пробный день не найдено")
		}
		offer := rec.UnresolvedTrialOffer()
		if offer == nil {
			return models.ErrAlreadyResponded
		}
		now := time.Now()
		offer.Accepted = &accepted
		offer.RespondedAt = &now
		if !accepted {
			offer.RejectionReason = rejectionReason
		}
		return nil
	})
	return err
}

func (i impl) Accept(id, system, role, details string) error {
	if role == "" {
		return errors.New("не указана роль")
	}
	_, err := i.store.UpdateTx(id, func(rec *dbmodels.Application) error {
		offer := rec.FindInterviewOffer(system)
		if offer == nil || !offer.Status.IsActive() || rec.IsRejectedBySystem(system) {
			return errors.Wrap(models.ErrInvalidTransition, "у системы нет активного оффера для кандидата")
		}
		rec.Status = models.ApplicationStatusAccepted
		rec.AcceptedSystem = system
		rec.AcceptedRole = role
		rec.AcceptedDetails = details
		return nil
	})
	if err != nil {
		return err
	}
	log.
		WithField("application_id", id).
		WithField("system", system).
		Info("кандидат принят")
	return nil
}

func removeSystem(systems []string, system string) []string {
	result := systems[:0]
	for _, s := range systems {
		if s != system {
			result = append(result, s)
		}
	}
	return result
}

func removeOffers(offers dbmodels.InterviewOfferList, system string) dbmodels.InterviewOfferList {
	result := offers[:0]
	for _, offer := range offers {
		if offer.System != system {
			result = append(result, offer)
		}
	}
	return result
}
