package applicationstore

import (
	"time"

	"team-recruiting-backend/models"
	dbmodels "team-recruiting-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Application) (id string, err error)
	GetByID(id string) (rec *dbmodels.Application, err error)
	GetByCandidateTeam(candidateID string, team models.Team) (rec *dbmodels.Application, err error)
	ListByCandidate(candidateID string) ([]dbmodels.Application, error)
	List(filter dbmodels.ApplicationFilter) ([]dbmodels.Application, error)
	// UpdateTx выполняет атомарный цикл чтение-изменение-запись одной заявки.
	// mutate получает свежую копию записи; при конфликте версий чтение и
	// изменение повторяются заново, ограниченное число раз
	UpdateTx(id string, mutate func(rec *dbmodels.Application) error) (*dbmodels.Application, error)
	ListWithSchedulingOffers() ([]dbmodels.Application, error)
}

// кол-во повторов при конфликте оптимистичной блокировки,
// наружу конфликт отдаём только после исчерпания попыток
const txRetryCount = 3

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Application) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Application, error) {
	rec := dbmodels.Application{}
	err := i.db.
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetByCandidateTeam(candidateID string, team models.Team) (*dbmodels.Application, error) {
	rec := dbmodels.Application{}
	err := i.db.
		Where("candidate_id = ?", candidateID).
		Where("team = ?", team).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) ListByCandidate(candidateID string) (list []dbmodels.Application, err error) {
	list = []dbmodels.Application{}
	err = i.db.
		Where("candidate_id = ?", candidateID).
		Order("created_at").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) List(filter dbmodels.ApplicationFilter) (list []dbmodels.Application, err error) {
	list = []dbmodels.Application{}
	tx := i.db.Model(dbmodels.Application{})
	if filter.Team != "" {
		tx = tx.Where("team = ?", filter.Team)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.System != "" {
		tx = tx.Where("interview_offers @> ?", `[{"system":"`+filter.System+`"}]`)
	}
	err = tx.Order("created_at").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) UpdateTx(id string, mutate func(rec *dbmodels.Application) error) (*dbmodels.Application, error) {
	for attempt := 0; attempt < txRetryCount; attempt++ {
		rec, err := i.GetByID(id)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, models.ErrNotFound
		}
		oldVersion := rec.Version
		if err = mutate(rec); err != nil {
			// бизнес-отказ, записи не было
			return nil, err
		}
		rec.Version = oldVersion + 1
		tx := i.db.
			Model(&dbmodels.Application{}).
			Where("id = ? AND version = ?", id, oldVersion).
			Updates(i.updMap(*rec))
		if tx.Error != nil {
			return nil, tx.Error
		}
		if tx.RowsAffected == 1 {
			return rec, nil
		}
		// версия ушла вперёд, перечитываем и повторяем
	}
	return nil, models.ErrConcurrentModification
}

// полный набор изменяемых колонок: mutate может тронуть любую из них,
// карта нужна чтобы записывались и обнулённые значения
func (i impl) updMap(rec dbmodels.Application) map[string]interface{} {
	return map[string]interface{}{
		"status":              rec.Status,
		"preferred_systems":   rec.PreferredSystems,
		"interview_offers":    rec.InterviewOffers,
		"trial_offers":        rec.TrialOffers,
		"rejected_by_systems": rec.RejectedBySystems,
		"accepted_system":     rec.AcceptedSystem,
		"accepted_role":       rec.AcceptedRole,
		"accepted_details":    rec.AcceptedDetails,
		"submitted_at":        rec.SubmittedAt,
		"version":             rec.Version,
		"updated_at":          time.Now(),
	}
}

func (i impl) ListWithSchedulingOffers() (list []dbmodels.Application, err error) {
	list = []dbmodels.Application{}
	err = i.db.
		Where("interview_offers @> ?", `[{"status":"scheduling"}]`).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
