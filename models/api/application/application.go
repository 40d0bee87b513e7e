package applicationapimodels

import (
	"time"

	"team-recruiting-backend/models"
	dbmodels "team-recruiting-backend/models/db"
)

// ApplicationView: полная запись для сотрудников, без маскирования
type ApplicationView struct {
	ID                string                   `json:"id"`
	CandidateID       string                   `json:"candidate_id"`
	Team              models.Team              `json:"team"`
	Status            models.ApplicationStatus `json:"status"`
	PreferredSystems  []string                 `json:"preferred_systems"`
	InterviewOffers   []InterviewOfferView     `json:"interview_offers"`
	TrialOffers       []TrialOfferView         `json:"trial_offers"`
	RejectedBySystems []string                 `json:"rejected_by_systems"`
	AcceptedSystem    string                   `json:"accepted_system,omitempty"`
	AcceptedRole      string                   `json:"accepted_role,omitempty"`
	AcceptedDetails   string                   `json:"accepted_details,omitempty"`
	SubmittedAt       *time.Time               `json:"submitted_at,omitempty"`
	CreatedAt         time.Time                `json:"created_at"`
}

type InterviewOfferView struct {
	System          string             `json:"system"`
	Status          models.OfferStatus `json:"status"`
	CreatedAt       time.Time          `json:"created_at"`
	ScheduledAt     *time.Time         `json:"scheduled_at,omitempty"`
	ScheduledEndAt  *time.Time         `json:"scheduled_end_at,omitempty"`
	ScheduledOnDate *time.Time         `json:"scheduled_on_date,omitempty"`
	ExternalEventID string             `json:"external_event_id,omitempty"`
	CancelledAt     *time.Time         `json:"cancelled_at,omitempty"`
	CancelReason    string             `json:"cancel_reason,omitempty"`
}

type TrialOfferView struct {
	System          string     `json:"system"`
	CreatedAt       time.Time  `json:"created_at"`
	Accepted        *bool      `json:"accepted,omitempty"`
	RespondedAt     *time.Time `json:"responded_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
}

// CandidateApplicationView: проекция для кандидата, статус с учётом этапа
// набора, без внутренних полей (отказы систем, детали решений)
type CandidateApplicationView struct {
	ID               string                        `json:"id"`
	Team             models.Team                   `json:"team"`
	Status           models.ApplicationStatus      `json:"status"`
	PreferredSystems []string                      `json:"preferred_systems"`
	InterviewOffers  []CandidateInterviewOfferView `json:"interview_offers,omitempty"`
	TrialOffers      []CandidateTrialOfferView     `json:"trial_offers,omitempty"`
	SubmittedAt      *time.Time                    `json:"submitted_at,omitempty"`
}

type CandidateInterviewOfferView struct {
	System         string             `json:"system"`
	Status         models.OfferStatus `json:"status"`
	ScheduledAt    *time.Time         `json:"scheduled_at,omitempty"`
	ScheduledEndAt *time.Time         `json:"scheduled_end_at,omitempty"`
}

type CandidateTrialOfferView struct {
	System      string     `json:"system"`
	Accepted    *bool      `json:"accepted,omitempty"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}

func ApplicationConvert(rec dbmodels.Application) ApplicationView {
	view := ApplicationView{
		ID:                rec.ID,
		CandidateID:       rec.CandidateID,
		Team:              rec.Team,
		Status:            rec.Status,
		PreferredSystems:  rec.PreferredSystems,
		InterviewOffers:   make([]InterviewOfferView, 0, len(rec.InterviewOffers)),
		TrialOffers:       make([]TrialOfferView, 0, len(rec.TrialOffers)),
		RejectedBySystems: rec.RejectedBySystems,
		AcceptedSystem:    rec.AcceptedSystem,
		AcceptedRole:      rec.AcceptedRole,
		AcceptedDetails:   rec.AcceptedDetails,
		SubmittedAt:       rec.SubmittedAt,
		CreatedAt:         rec.CreatedAt,
	}
	for _, offer := range rec.InterviewOffers {
		view.InterviewOffers = append(view.InterviewOffers, InterviewOfferView{
			System:          offer.System,
			Status:          offer.Status,
			CreatedAt:       offer.CreatedAt,
			ScheduledAt:     offer.ScheduledAt,
			ScheduledEndAt:  offer.ScheduledEndAt,
			ScheduledOnDate: offer.ScheduledOnDate,
			ExternalEventID: offer.ExternalEventID,
			CancelledAt:     offer.CancelledAt,
			CancelReason:    offer.CancelReason,
		})
	}
	for _, offer := range rec.TrialOffers {
		view.TrialOffers = append(view.TrialOffers, TrialOfferView{
			System:          offer.System,
			CreatedAt:       offer.CreatedAt,
			Accepted:        offer.Accepted,
			RespondedAt:     offer.RespondedAt,
			RejectionReason: offer.RejectionReason,
		})
	}
	return view
}

type SystemsRequest struct {
	Systems []string `json:"systems"`
}

type TrialOfferRequest struct {
	System string `json:"system"`
}

type TrialResponseRequest struct {
	Accepted        bool   `json:"accepted"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}

type AcceptRequest struct {
	System  string `json:"system"`
	Role    string `json:"role"`
	Details string `json:"details,omitempty"`
}
