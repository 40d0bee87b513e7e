package schedulepolicystore

import (
	"team-recruiting-backend/models"
	dbmodels "team-recruiting-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.SchedulingPolicy) (id string, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	GetByID(id string) (*dbmodels.SchedulingPolicy, error)
	GetByTeamSystem(team models.Team, system string) (*dbmodels.SchedulingPolicy, error)
	List(team models.Team) ([]dbmodels.SchedulingPolicy, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.SchedulingPolicy) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.SchedulingPolicy{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (i impl) Delete(id string) error {
	return i.db.
		Where("id = ?", id).
		Delete(&dbmodels.SchedulingPolicy{}).
		Error
}

func (i impl) GetByID(id string) (*dbmodels.SchedulingPolicy, error) {
	rec := dbmodels.SchedulingPolicy{}
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

func (i impl) GetByTeamSystem(team models.Team, system string) (*dbmodels.SchedulingPolicy, error) {
	rec := dbmodels.SchedulingPolicy{}
	err := i.db.
		Where("team = ?", team).
		Where("system = ?", system).
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

func (i impl) List(team models.Team) (list []dbmodels.SchedulingPolicy, err error) {
	list = []dbmodels.SchedulingPolicy{}
	tx := i.db.Model(dbmodels.SchedulingPolicy{})
	if team != "" {
		tx = tx.Where("team = ?", team)
	}
	err = tx.Order("team, system").Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
