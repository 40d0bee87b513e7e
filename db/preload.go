package db

import (
	stagestore "team-recruiting-backend/lib/stage/store"
	"team-recruiting-backend/models"

	log "github.com/sirupsen/logrus"
)

func InitPreload() {
	initRecruitStage()
}

// набор стартует с приёма заявок, если строка этапа ещё не создана
func initRecruitStage() {
	store := stagestore.NewInstance(DB)
	err := store.CreateIfMissing(models.RecruitStepOpen)
	if err != nil {
		log.WithError(err).Error("ошибка инициализации этапа набора")
		return
	}
	log.Info("этап набора инициализирован")
}
