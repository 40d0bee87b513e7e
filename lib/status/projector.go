package status

import (
	"team-recruiting-backend/models"
	applicationapimodels "team-recruiting-backend/models/api/application"
	dbmodels "team-recruiting-backend/models/db"
)

// VisibleStatus проецирует авторитетный статус заявки в то, что разрешено
// видеть кандидату на текущем этапе набора. Маскирование считается от
// rawStatus целиком: кандидат не узнаёт про отказ одной системы, пока
// другая ещё решает.
//
//	этап                        | interview/trial/accepted/rejected видны как
//	open, reviewing             | submitted
//	release_interviews..        | trial/accepted -> interview; rejected -> submitted
//	release_trial..             | accepted -> trial; rejected -> submitted
//	release_decisions           | без маскирования
func VisibleStatus(raw models.ApplicationStatus, step models.RecruitStep) models.ApplicationStatus {
	if raw == models.ApplicationStatusInProgress || raw == models.ApplicationStatusSubmitted {
		return raw
	}
	switch {
	case step.Before(models.RecruitStepReleaseInterviews):
		return models.ApplicationStatusSubmitted
	case step.Before(models.RecruitStepReleaseTrial):
		if raw == models.ApplicationStatusRejected {
			return models.ApplicationStatusSubmitted
		}
		return models.ApplicationStatusInterview
	case step.Before(models.RecruitStepReleaseDecisions):
		if raw == models.ApplicationStatusRejected {
			return models.ApplicationStatusSubmitted
		}
		if raw == models.ApplicationStatusInterview {
			return models.ApplicationStatusInterview
		}
		return models.ApplicationStatusTrial
	default:
		return raw
	}
}

// CandidateView собирает проекцию заявки для кандидата: маскированный статус,
// без внутренних полей (отказы систем, детали решения). Офферы показываются
// только с этапа их публикации.
func CandidateView(rec dbmodels.Application, step models.RecruitStep) applicationapimodels.CandidateApplicationView {
	view := applicationapimodels.CandidateApplicationView{
		ID:               rec.ID,
		Team:             rec.Team,
		Status:           VisibleStatus(rec.Status, step),
		PreferredSystems: rec.PreferredSystems,
		SubmittedAt:      rec.SubmittedAt,
	}
	if step.AtOrAfter(models.RecruitStepReleaseInterviews) {
		for _, offer := range rec.InterviewOffers {
			if !offer.Status.IsActive() {
				continue
			}
			view.InterviewOffers = append(view.InterviewOffers, applicationapimodels.CandidateInterviewOfferView{
				System:         offer.System,
				Status:         offer.Status,
				ScheduledAt:    offer.ScheduledAt,
				ScheduledEndAt: offer.ScheduledEndAt,
			})
		}
	}
	if step.AtOrAfter(models.RecruitStepReleaseTrial) {
		for _, offer := range rec.TrialOffers {
			view.TrialOffers = append(view.TrialOffers, applicationapimodels.CandidateTrialOfferView{
				System:      offer.System,
				Accepted:    offer.Accepted,
				RespondedAt: offer.RespondedAt,
			})
		}
	}
	return view
}
