package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"team-recruiting-backend/models"

	"github.com/pkg/errors"
)

type InterviewOffer struct {
	System    string             `json:"system"`
	Status    models.OfferStatus `json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	// поля брони, заполняются только после выхода из pending
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	ScheduledEndAt  *time.Time `json:"scheduled_end_at,omitempty"`
	ScheduledOnDate *time.Time `json:"scheduled_on_date,omitempty"`
	ExternalEventID string     `json:"external_event_id,omitempty"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
	CancelReason    string     `json:"cancel_reason,omitempty"`
}

// ClearSchedule откатывает оффер к состоянию до попытки брони
func (o *InterviewOffer) ClearSchedule() {
	o.Status = models.OfferStatusPending
	o.ScheduledAt = nil
	o.ScheduledEndAt = nil
	o.ScheduledOnDate = nil
	o.ExternalEventID = ""
}

type TrialOffer struct {
	System          string             `json:"system"`
	Status          models.OfferStatus `json:"status"`
	CreatedAt       time.Time          `json:"created_at"`
	Accepted        *bool              `json:"accepted,omitempty"` // пишется один раз
	RespondedAt     *time.Time         `json:"responded_at,omitempty"`
	RejectionReason string             `json:"rejection_reason,omitempty"`
}

type InterviewOfferList []InterviewOffer

func (l InterviewOfferList) Value() (driver.Value, error) {
	if l == nil {
		l = InterviewOfferList{}
	}
	return json.Marshal([]InterviewOffer(l))
}

func (l *InterviewOfferList) Scan(value interface{}) error {
	return scanOfferList(value, l)
}

// в легаси-записях оффер мог храниться одиночным объектом,
// нормализуем к списку на границе хранилища
func (l *InterviewOfferList) UnmarshalJSON(data []byte) error {
	var list []InterviewOffer
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}
	var single InterviewOffer
	if err := json.Unmarshal(data, &single); err != nil {
		return errors.Wrap(err, "не удалось разобрать список офферов на интервью")
	}
	*l = InterviewOfferList{single}
	return nil
}

type TrialOfferList []TrialOffer

func (l TrialOfferList) Value() (driver.Value, error) {
	if l == nil {
		l = TrialOfferList{}
	}
	return json.Marshal([]TrialOffer(l))
}

func (l *TrialOfferList) Scan(value interface{}) error {
	return scanOfferList(value, l)
}

func (l *TrialOfferList) UnmarshalJSON(data []byte) error {
	var list []TrialOffer
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}
	var single TrialOffer
	if err := json.Unmarshal(data, &single); err != nil {
		return errors.Wrap(err, "не удалось разобрать список приглашений на пробный день")
	}
	*l = TrialOfferList{single}
	return nil
}

func scanOfferList(value interface{}, out json.Unmarshaler) error {
	if value == nil {
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.Errorf("неожиданный тип jsonb колонки: %T", value)
	}
	if len(data) == 0 {
		return nil
	}
	return out.UnmarshalJSON(data)
}
