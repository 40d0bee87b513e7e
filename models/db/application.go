package dbmodels

import (
	"time"

	"team-recruiting-backend/models"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

type Application struct {
	BaseModel
	CandidateID string      `gorm:"type:varchar(36);index:idx_candidate_team,unique"`
	Team        models.Team `gorm:"type:varchar(50);index:idx_candidate_team,unique"`
	// авторитетный статус, кандидату показывается через проекцию с учётом этапа набора
	Status            models.ApplicationStatus `gorm:"type:varchar(50);index"`
	PreferredSystems  pq.StringArray           `gorm:"type:text[]"` // пожелания кандидата, не ограничивают офферы
	InterviewOffers   InterviewOfferList       `gorm:"type:jsonb"`
	TrialOffers       TrialOfferList           `gorm:"type:jsonb"`
	RejectedBySystems pq.StringArray           `gorm:"type:text[]"`
	AcceptedSystem    string                   `gorm:"type:varchar(100)"`
	AcceptedRole      string                   `gorm:"type:varchar(255)"`
	AcceptedDetails   string
	SubmittedAt       *time.Time
	// счётчик версий для оптимистичной блокировки, растёт на каждой записи
	Version int64 `gorm:"not null;default:0"`
}

func (a Application) FindInterviewOffer(system string) *InterviewOffer {
	for idx := range a.InterviewOffers {
		if a.InterviewOffers[idx].System == system {
			return &a.InterviewOffers[idx]
		}
	}
	return nil
}

func (a Application) IsRejectedBySystem(system string) bool {
	for _, rejected := range a.RejectedBySystems {
		if rejected == system {
			return true
		}
	}
	return false
}

// ActiveOfferCount считает офферы, не снятые отменой
func (a Application) ActiveOfferCount() int {
	count := 0
	for _, offer := range a.InterviewOffers {
		if offer.Status.IsActive() {
			count++
		}
	}
	return count
}

// UnresolvedTrialOffer возвращает приглашение на пробный день без ответа кандидата
func (a Application) UnresolvedTrialOffer() *TrialOffer {
	for idx := range a.TrialOffers {
		if a.TrialOffers[idx].Accepted == nil {
			return &a.TrialOffers[idx]
		}
	}
	return nil
}

type ApplicationFilter struct {
	Team   models.Team              `json:"team"`
	Status models.ApplicationStatus `json:"status"`
	System string                   `json:"system"`
}

type CreateApplicationData struct {
	CandidateID      string      `json:"-"`
	Team             models.Team `json:"team"`
	PreferredSystems []string    `json:"preferred_systems"`
}

func (d CreateApplicationData) Validate() error {
	if d.CandidateID == "" {
		return errors.New("не указан идентификатор кандидата")
	}
	if !d.Team.IsValid() {
		return errors.New("неизвестная команда")
	}
	if len(d.PreferredSystems) > models.MaxPreferredSystems {
		return errors.Errorf("можно указать не более %v желаемых систем", models.MaxPreferredSystems)
	}
	seen := map[string]bool{}
	for _, system := range d.PreferredSystems {
		if system == "" {
			return errors.New("пустое имя системы")
		}
		if seen[system] {
			return errors.New("системы в пожеланиях не должны повторяться")
		}
		seen[system] = true
	}
	return nil
}
