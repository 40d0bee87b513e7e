package stageapimodels

import (
	"time"

	"team-recruiting-backend/models"
)

type StageView struct {
	CurrentStep models.RecruitStep `json:"current_step"`
	UpdatedAt   time.Time          `json:"updated_at"`
	UpdatedBy   string             `json:"updated_by"`
}

type SetStageRequest struct {
	Step models.RecruitStep `json:"step"`
}
