package schedulepolicy

import (
	"team-recruiting-backend/db"
	schedulepolicystore "team-recruiting-backend/lib/schedule/policy/store"
	"team-recruiting-backend/models"
	scheduleapimodels "team-recruiting-backend/models/api/schedule"
	dbmodels "team-recruiting-backend/models/db"

	"github.com/pkg/errors"
)

type Provider interface {
	Create(data scheduleapimodels.PolicyData) (id string, err error)
	Update(id string, data scheduleapimodels.PolicyData) error
	Delete(id string) error
	List(team models.Team) ([]scheduleapimodels.PolicyView, error)
	// GetByTeamSystem используется координатором бронирования
	GetByTeamSystem(team models.Team, system string) (*dbmodels.SchedulingPolicy, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: schedulepolicystore.NewInstance(db.DB),
	}
}

type impl struct {
	store schedulepolicystore.Provider
}

func (i impl) Create(data scheduleapimodels.PolicyData) (string, error) {
	rec := policyRecord(data)
	if err := rec.Validate(); err != nil {
		return "", err
	}
	existing, err := i.store.GetByTeamSystem(data.Team, data.System)
	if err != nil {
		return "", errors.Wrap(err, "ошибка проверки существующей политики")
	}
	if existing != nil {
		return "", errors.New("политика для этой пары команда+система уже есть")
	}
	return i.store.Create(rec)
}

func (i impl) Update(id string, data scheduleapimodels.PolicyData) error {
	rec := policyRecord(data)
	if err := rec.Validate(); err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"team":                 rec.Team,
		"system":               rec.System,
		"calendar_id":          rec.CalendarID,
		"interviewer_emails":   rec.InterviewerEmails,
		"duration_minutes":     rec.DurationMinutes,
		"buffer_minutes":       rec.BufferMinutes,
		"available_days":       rec.AvailableDays,
		"available_start_hour": rec.AvailableStartHour,
		"available_end_hour":   rec.AvailableEndHour,
		"timezone":             rec.Timezone,
	}
	return i.store.Update(id, updMap)
}

func (i impl) Delete(id string) error {
	return i.store.Delete(id)
}

func (i impl) List(team models.Team) ([]scheduleapimodels.PolicyView, error) {
	list, err := i.store.List(team)
	if err != nil {
		return nil, err
	}
	result := make([]scheduleapimodels.PolicyView, 0, len(list))
	for _, rec := range list {
		result = append(result, scheduleapimodels.PolicyConvert(rec))
	}
	return result, nil
}

func (i impl) GetByTeamSystem(team models.Team, system string) (*dbmodels.SchedulingPolicy, error) {
	return i.store.GetByTeamSystem(team, system)
}

func policyRecord(data scheduleapimodels.PolicyData) dbmodels.SchedulingPolicy {
	return dbmodels.SchedulingPolicy{
		Team:               data.Team,
		System:             data.System,
		CalendarID:         data.CalendarID,
		InterviewerEmails:  data.InterviewerEmails,
		DurationMinutes:    data.DurationMinutes,
		BufferMinutes:      data.BufferMinutes,
		AvailableDays:      data.AvailableDays,
		AvailableStartHour: data.AvailableStartHour,
		AvailableEndHour:   data.AvailableEndHour,
		Timezone:           data.Timezone,
	}
}
