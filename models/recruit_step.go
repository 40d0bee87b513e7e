package models

type RecruitStep string

const (
	RecruitStepOpen              RecruitStep = "open"
	RecruitStepReviewing         RecruitStep = "reviewing"
	RecruitStepReleaseInterviews RecruitStep = "release_interviews"
	RecruitStepInterviewing      RecruitStep = "interviewing"
	RecruitStepReleaseTrial      RecruitStep = "release_trial"
	RecruitStepTrialWorkday      RecruitStep = "trial_workday"
	RecruitStepReleaseDecisions  RecruitStep = "release_decisions"
)

// полный порядок этапов набора
var recruitStepOrder = map[RecruitStep]int{
	RecruitStepOpen:              0,
	RecruitStepReviewing:         1,
	RecruitStepReleaseInterviews: 2,
	RecruitStepInterviewing:      3,
	RecruitStepReleaseTrial:      4,
	RecruitStepTrialWorkday:      5,
	RecruitStepReleaseDecisions:  6,
}

func (s RecruitStep) Order() int {
	if order, exist := recruitStepOrder[s]; exist {
		return order
	}
	return -1
}

func (s RecruitStep) IsValid() bool {
	_, exist := recruitStepOrder[s]
	return exist
}

// Before: этап строго раньше указанного
func (s RecruitStep) Before(other RecruitStep) bool {
	return s.Order() < other.Order()
}

// AtOrAfter: этап наступил
func (s RecruitStep) AtOrAfter(other RecruitStep) bool {
	return s.Order() >= other.Order()
}

var recruitStepHumanName = map[RecruitStep]string{
	RecruitStepOpen:              "Приём заявок",
	RecruitStepReviewing:         "Рассмотрение",
	RecruitStepReleaseInterviews: "Публикация приглашений на интервью",
	RecruitStepInterviewing:      "Интервью",
	RecruitStepReleaseTrial:      "Публикация приглашений на пробный день",
	RecruitStepTrialWorkday:      "Пробный день",
	RecruitStepReleaseDecisions:  "Публикация решений",
}

func (s RecruitStep) ToHuman() string {
	if human, exist := recruitStepHumanName[s]; exist {
		return human
	}
	return string(s)
}
