package calendarapimodels

import "time"

// модели обмена с внешним сервисом календаря

type Event struct {
	ID        string    `json:"id"`
	Summary   string    `json:"summary"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Attendees []string  `json:"attendees"`
}

type CreateEventRequest struct {
	Summary   string    `json:"summary"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Attendees []string  `json:"attendees"`
}

type CreateEventResponse struct {
	ID string `json:"id"`
}

type ListEventsResponse struct {
	Events []Event `json:"events"`
}
