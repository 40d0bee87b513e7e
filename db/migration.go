package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	dbmodels "team-recruiting-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.Application{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Application")
	}
	if err := DB.AutoMigrate(&dbmodels.SchedulingPolicy{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры SchedulingPolicy")
	}
	if err := DB.AutoMigrate(&dbmodels.RecruitStage{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры RecruitStage")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
