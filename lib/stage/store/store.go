package stagestore

import (
	"team-recruiting-backend/models"
	dbmodels "team-recruiting-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Get() (*dbmodels.RecruitStage, error)
	Set(step models.RecruitStep, updatedBy string) error
	CreateIfMissing(step models.RecruitStep) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Get() (*dbmodels.RecruitStage, error) {
	rec := dbmodels.RecruitStage{}
	err := i.db.
		Where("code = ?", dbmodels.RecruitStageCode).
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

func (i impl) Set(step models.RecruitStep, updatedBy string) error {
	tx := i.db.
		Model(&dbmodels.RecruitStage{}).
		Where("code = ?", dbmodels.RecruitStageCode).
		Updates(map[string]interface{}{
			"current_step": step,
			"updated_by":   updatedBy,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (i impl) CreateIfMissing(step models.RecruitStep) error {
	rec, err := i.Get()
	if err != nil {
		return err
	}
	if rec != nil {
		return nil
	}
	return i.db.Create(&dbmodels.RecruitStage{
		Code:        dbmodels.RecruitStageCode,
		CurrentStep: step,
		UpdatedBy:   models.SystemUser,
	}).Error
}
