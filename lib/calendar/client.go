package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"team-recruiting-backend/models"
	calendarapimodels "team-recruiting-backend/models/api/calendar"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Provider описывает клиент внешнего сервиса календаря.
// Сервис нетранзакционный: согласованность с бронью обеспечивает координатор
type Provider interface {
	ListEvents(ctx context.Context, calendarID string, from, to time.Time) ([]calendarapimodels.Event, error)
	CreateEvent(ctx context.Context, calendarID string, req calendarapimodels.CreateEventRequest) (eventID string, err error)
	// DeleteEvent вызывается best-effort, ошибка логируется вызывающим
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
}

var Instance Provider

func NewProvider(host, apiKey string, timeout time.Duration) {
	Instance = &impl{
		host:   host,
		apiKey: apiKey,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type impl struct {
	host   string
	apiKey string
	client *http.Client
}

const (
	eventsListPath   string = "%s/v1/calendars/%v/events?time_min=%v&time_max=%v"
	eventCreatePath  string = "%s/v1/calendars/%v/events"
	eventDeletePath  string = "%s/v1/calendars/%v/events/%v"
	requestIDHeader  string = "X-Request-Id"
	authHeaderFormat string = "Bearer %v"
)

func (i impl) ListEvents(ctx context.Context, calendarID string, from, to time.Time) ([]calendarapimodels.Event, error) {
	uri := fmt.Sprintf(eventsListPath, i.host, url.PathEscape(calendarID),
		url.QueryEscape(from.Format(time.RFC3339)), url.QueryEscape(to.Format(time.RFC3339)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка подготовки запроса списка событий")
	}
	i.setHeaders(req)
	resp, err := i.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(models.ErrExternalService, "запрос списка событий не выполнен: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(models.ErrExternalService, "список событий: код ответа %v (%v)", resp.StatusCode, readBody(resp.Body))
	}
	result := calendarapimodels.ListEventsResponse{}
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.Wrapf(models.ErrExternalService, "ошибка разбора списка событий: %v", err)
	}
	return result.Events, nil
}

func (i impl) CreateEvent(ctx context.Context, calendarID string, data calendarapimodels.CreateEventRequest) (string, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return "", errors.Wrap(err, "ошибка подготовки запроса создания события")
	}
	uri := fmt.Sprintf(eventCreatePath, i.host, url.PathEscape(calendarID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uri, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "ошибка подготовки запроса создания события")
	}
	i.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	resp, err := i.client.Do(req)
	if err != nil {
		return "", errors.Wrapf(models.ErrExternalService, "запрос создания события не выполнен: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", errors.Wrapf(models.ErrExternalService, "создание события: код ответа %v (%v)", resp.StatusCode, readBody(resp.Body))
	}
	result := calendarapimodels.CreateEventResponse{}
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", errors.Wrapf(models.ErrExternalService, "ошибка разбора ответа создания события: %v", err)
	}
	if result.ID == "" {
		return "", errors.Wrap(models.ErrExternalService, "сервис календаря не вернул идентификатор события")
	}
	return result.ID, nil
}

func (i impl) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	uri := fmt.Sprintf(eventDeletePath, i.host, url.PathEscape(calendarID), url.PathEscape(eventID))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, uri, nil)
	if err != nil {
		return errors.Wrap(err, "ошибка подготовки запроса удаления события")
	}
	i.setHeaders(req)
	resp, err := i.client.Do(req)
	if err != nil {
		return errors.Wrapf(models.ErrExternalService, "запрос удаления события не выполнен: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent &&
		resp.StatusCode != http.StatusNotFound {
		return errors.Wrapf(models.ErrExternalService, "удаление события: код ответа %v", resp.StatusCode)
	}
	return nil
}

func (i impl) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", fmt.Sprintf(authHeaderFormat, i.apiKey))
	req.Header.Set(requestIDHeader, uuid.NewString())
}

func readBody(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, 1024))
	if err != nil {
		log.WithError(err).Debug("не удалось прочитать тело ответа календаря")
		return ""
	}
	return string(data)
}
