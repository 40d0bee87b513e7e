package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"team-recruiting" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Auth struct {
		JWTSecret string `default:"" env:"AUTH_JWT_SECRET"`
	}
	Calendar struct {
		Host           string `default:"" env:"CALENDAR_HOST"`
		APIKey         string `default:"" env:"CALENDAR_API_KEY"`
		TimeoutSeconds int    `default:"10" env:"CALENDAR_TIMEOUT_SECONDS"`
	}
	Schedule struct {
		// бронь, зависшая в scheduling дольше TTL, откатывается фоновой задачей
		ReservationTTLMinutes  int `default:"5" env:"SCHEDULE_RESERVATION_TTL_MINUTES"`
		ReclaimIntervalSeconds int `default:"60" env:"SCHEDULE_RECLAIM_INTERVAL_SECONDS"`
	}
	Stage struct {
		CacheTTLSeconds int `default:"5" env:"STAGE_CACHE_TTL_SECONDS"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
