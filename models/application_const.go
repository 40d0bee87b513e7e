package models

type Team string

const (
	TeamCombustion Team = "combustion"
	TeamElectric   Team = "electric"
	TeamDriverless Team = "driverless"
)

var teamHumanName = map[Team]string{
	TeamCombustion: "Команда ДВС",
	TeamElectric:   "Команда электро",
	TeamDriverless: "Команда беспилотников",
}

func (t Team) ToHuman() string {
	if human, exist := teamHumanName[t]; exist {
		return human
	}
	return string(t)
}

func (t Team) IsValid() bool {
	_, exist := teamHumanName[t]
	return exist
}

type ApplicationStatus string

const (
	ApplicationStatusInProgress ApplicationStatus = "in_progress"
	ApplicationStatusSubmitted  ApplicationStatus = "submitted"
	ApplicationStatusInterview  ApplicationStatus = "interview"
	ApplicationStatusTrial      ApplicationStatus = "trial"
	ApplicationStatusAccepted   ApplicationStatus = "accepted"
	ApplicationStatusRejected   ApplicationStatus = "rejected"
)

// порядок продвижения по воронке, rejected вне порядка
var applicationStatusRank = map[ApplicationStatus]int{
	ApplicationStatusInProgress: 0,
	ApplicationStatusSubmitted:  1,
	ApplicationStatusInterview:  2,
	ApplicationStatusTrial:      3,
	ApplicationStatusAccepted:   4,
}

func (s ApplicationStatus) Rank() int {
	if rank, exist := applicationStatusRank[s]; exist {
		return rank
	}
	return -1
}

var applicationStatusHumanName = map[ApplicationStatus]string{
	ApplicationStatusInProgress: "Заполняется",
	ApplicationStatusSubmitted:  "Отправлена",
	ApplicationStatusInterview:  "Интервью",
	ApplicationStatusTrial:      "Пробный день",
	ApplicationStatusAccepted:   "Принят",
	ApplicationStatusRejected:   "Отклонен",
}

func (s ApplicationStatus) ToHuman() string {
	if human, exist := applicationStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// максимум систем, которые кандидат может указать как желаемые
const MaxPreferredSystems = 3
