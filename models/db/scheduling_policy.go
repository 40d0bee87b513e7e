package dbmodels

import (
	"time"

	"team-recruiting-backend/models"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// SchedulingPolicy хранит настройки бронирования интервью для пары команда+система,
// редактируется сотрудниками, координатор читает
type SchedulingPolicy struct {
	BaseModel
	Team               models.Team    `gorm:"type:varchar(50);index:idx_team_system,unique"`
	System             string         `gorm:"type:varchar(100);index:idx_team_system,unique"`
	CalendarID         string         `gorm:"type:varchar(255)"`
	InterviewerEmails  pq.StringArray `gorm:"type:text[]"`
	DurationMinutes    int
	BufferMinutes      int
	AvailableDays      pq.Int64Array `gorm:"type:integer[]"` // дни недели 0-6, 0 = воскресенье
	AvailableStartHour int
	AvailableEndHour   int
	Timezone           string `gorm:"type:varchar(100)"`
}

func (p SchedulingPolicy) Validate() error {
	if !p.Team.IsValid() {
		return errors.New("неизвестная команда")
	}
	if p.System == "" {
		return errors.New("не указана система")
	}
	if p.CalendarID == "" {
		return errors.New("не указан идентификатор календаря")
	}
	if len(p.InterviewerEmails) == 0 {
		return errors.New("не указаны интервьюеры")
	}
	if p.DurationMinutes <= 0 {
		return errors.New("длительность интервью должна быть положительной")
	}
	if p.BufferMinutes < 0 {
		return errors.New("буфер между интервью не может быть отрицательным")
	}
	if len(p.AvailableDays) == 0 {
		return errors.New("не указаны доступные дни недели")
	}
	for _, day := range p.AvailableDays {
		if day < 0 || day > 6 {
			return errors.Errorf("недопустимый день недели: %v", day)
		}
	}
	if p.AvailableStartHour < 0 || p.AvailableStartHour > 23 ||
		p.AvailableEndHour < 0 || p.AvailableEndHour > 23 ||
		p.AvailableStartHour >= p.AvailableEndHour {
		return errors.New("недопустимое окно доступных часов")
	}
	if _, err := time.LoadLocation(p.Timezone); err != nil {
		return errors.Wrap(err, "неизвестная таймзона")
	}
	return nil
}

func (p SchedulingPolicy) Duration() time.Duration {
	return time.Duration(p.DurationMinutes) * time.Minute
}

func (p SchedulingPolicy) Buffer() time.Duration {
	return time.Duration(p.BufferMinutes) * time.Minute
}
