package scheduleapimodels

import (
	"time"

	"team-recruiting-backend/models"
	dbmodels "team-recruiting-backend/models/db"

	"github.com/pkg/errors"
)

type BookingRequest struct {
	System string    `json:"system"`
	Start  time.Time `json:"start"`
}

func (r BookingRequest) Validate() error {
	if r.System == "" {
		return errors.New("не указана система")
	}
	if r.Start.IsZero() {
		return errors.New("не указано время слота")
	}
	return nil
}

type BookingResult struct {
	System          string    `json:"system"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	ScheduledEndAt  time.Time `json:"scheduled_end_at"`
	ExternalEventID string    `json:"external_event_id"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

type OutcomeRequest struct {
	Outcome models.OfferStatus `json:"outcome"`
}

func (r OutcomeRequest) Validate() error {
	if r.Outcome != models.OfferStatusCompleted && r.Outcome != models.OfferStatusNoShow {
		return errors.New("итог интервью должен быть completed или no_show")
	}
	return nil
}

type PolicyData struct {
	Team               models.Team `json:"team"`
	System             string      `json:"system"`
	CalendarID         string      `json:"calendar_id"`
	InterviewerEmails  []string    `json:"interviewer_emails"`
	DurationMinutes    int         `json:"duration_minutes"`
	BufferMinutes      int         `json:"buffer_minutes"`
	AvailableDays      []int64     `json:"available_days"`
	AvailableStartHour int         `json:"available_start_hour"`
	AvailableEndHour   int         `json:"available_end_hour"`
	Timezone           string      `json:"timezone"`
}

type PolicyView struct {
	ID string `json:"id"`
	PolicyData
}

func PolicyConvert(rec dbmodels.SchedulingPolicy) PolicyView {
	return PolicyView{
		ID: rec.ID,
		PolicyData: PolicyData{
			Team:               rec.Team,
			System:             rec.System,
			CalendarID:         rec.CalendarID,
			InterviewerEmails:  rec.InterviewerEmails,
			DurationMinutes:    rec.DurationMinutes,
			BufferMinutes:      rec.BufferMinutes,
			AvailableDays:      rec.AvailableDays,
			AvailableStartHour: rec.AvailableStartHour,
			AvailableEndHour:   rec.AvailableEndHour,
			Timezone:           rec.Timezone,
		},
	}
}
