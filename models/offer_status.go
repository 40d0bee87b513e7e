package models

type OfferStatus string

const (
	OfferStatusPending    OfferStatus = "pending"
	OfferStatusScheduling OfferStatus = "scheduling"
	OfferStatusScheduled  OfferStatus = "scheduled"
	OfferStatusCompleted  OfferStatus = "completed"
	OfferStatusCancelled  OfferStatus = "cancelled"
	OfferStatusNoShow     OfferStatus = "no_show"
)

// допустимые переходы статуса оффера на интервью,
// scheduled -> scheduling запрещён: сначала отмена, потом новая бронь
var offerStatusTransitions = map[OfferStatus][]OfferStatus{
	OfferStatusPending:    {OfferStatusScheduling, OfferStatusCancelled},
	OfferStatusScheduling: {OfferStatusScheduled, OfferStatusPending},
	OfferStatusScheduled:  {OfferStatusCompleted, OfferStatusCancelled, OfferStatusNoShow},
}

func (s OfferStatus) IsAllowTransition(to OfferStatus) bool {
	allowed, exist := offerStatusTransitions[s]
	if !exist {
		// терминальный статус
		return false
	}
	for _, status := range allowed {
		if status == to {
			return true
		}
	}
	return false
}

// оффер считается активным, пока система не отказала и бронь не отменена
func (s OfferStatus) IsActive() bool {
	return s != OfferStatusCancelled
}

var offerStatusHumanName = map[OfferStatus]string{
	OfferStatusPending:    "Ожидает выбора слота",
	OfferStatusScheduling: "Бронируется",
	OfferStatusScheduled:  "Назначено",
	OfferStatusCompleted:  "Проведено",
	OfferStatusCancelled:  "Отменено",
	OfferStatusNoShow:     "Неявка",
}

func (s OfferStatus) ToHuman() string {
	if human, exist := offerStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}
