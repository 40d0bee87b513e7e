package initializers

import (
	"context"
	"time"

	"team-recruiting-backend/config"
	"team-recruiting-backend/fiberlog"
	applicationhandler "team-recruiting-backend/lib/application"
	calendarclient "team-recruiting-backend/lib/calendar"
	schedulehandler "team-recruiting-backend/lib/schedule"
	schedulepolicyhandler "team-recruiting-backend/lib/schedule/policy"
	reclaimworker "team-recruiting-backend/lib/schedule/reclaim-worker"
	stagehandler "team-recruiting-backend/lib/stage"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	calendarclient.NewProvider(
		config.Conf.Calendar.Host,
		config.Conf.Calendar.APIKey,
		time.Duration(config.Conf.Calendar.TimeoutSeconds)*time.Second,
	)
	stagehandler.NewHandler(time.Duration(config.Conf.Stage.CacheTTLSeconds) * time.Second)
	schedulepolicyhandler.NewHandler()
	applicationhandler.NewHandler()
	schedulehandler.NewHandler()
	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	// Задача отката броней, зависших в scheduling
	reclaimworker.StartWorker(ctx)
}
