package dbmodels

import (
	"team-recruiting-backend/models"
)

// единственная строка с текущим этапом набора, код фиксированный
const RecruitStageCode = "current"

type RecruitStage struct {
	BaseModel
	Code        string             `gorm:"type:varchar(50);uniqueIndex"`
	CurrentStep models.RecruitStep `gorm:"type:varchar(50)"`
	UpdatedBy   string             `gorm:"type:varchar(255)"`
}
