package schedule

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"team-recruiting-backend/models"
	calendarapimodels "team-recruiting-backend/models/api/calendar"
	scheduleapimodels "team-recruiting-backend/models/api/schedule"
	dbmodels "team-recruiting-backend/models/db"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeAppStore struct {
	mu   sync.Mutex
	recs map[string]*dbmodels.Application
}

func cloneRec(rec dbmodels.Application) dbmodels.Application {
	data, err := json.Marshal(rec)
	if err != nil {
		panic(err)
	}
	result := dbmodels.Application{}
	if err = json.Unmarshal(data, &result); err != nil {
		panic(err)
	}
	result.ID = rec.ID
	result.Version = rec.Version
	return result
}

func (f *fakeAppStore) Create(rec dbmodels.Application) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := cloneRec(rec)
	f.recs[rec.ID] = &clone
	return rec.ID, nil
}

func (f *fakeAppStore) GetByID(id string) (*dbmodels.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, exist := f.recs[id]
	if !exist {
		return nil, nil
	}
	clone := cloneRec(*rec)
	return &clone, nil
}

func (f *fakeAppStore) GetByCandidateTeam(candidateID string, team models.Team) (*dbmodels.Application, error) {
	return nil, nil
}

func (f *fakeAppStore) ListByCandidate(candidateID string) ([]dbmodels.Application, error) {
	return nil, nil
}

func (f *fakeAppStore) List(filter dbmodels.ApplicationFilter) ([]dbmodels.Application, error) {
	return nil, nil
}

func (f *fakeAppStore) UpdateTx(id string, mutate func(rec *dbmodels.Application) error) (*dbmodels.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, exist := f.recs[id]
	if !exist {
		return nil, models.ErrNotFound
	}
	clone := cloneRec(*rec)
	if err := mutate(&clone); err != nil {
		return nil, err
	}
	clone.Version++
	f.recs[id] = &clone
	result := cloneRec(clone)
	return &result, nil
}

func (f *fakeAppStore) ListWithSchedulingOffers() ([]dbmodels.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := []dbmodels.Application{}
	for _, rec := range f.recs {
		for _, offer := range rec.InterviewOffers {
			if offer.Status == models.OfferStatusScheduling {
				list = append(list, cloneRec(*rec))
				break
			}
		}
	}
	return list, nil
}

func (f *fakeAppStore) offer(t *testing.T, id, system string) dbmodels.InterviewOffer {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, exist := f.recs[id]
	require.Equal(t, true, exist)
	offer := rec.FindInterviewOffer(system)
	require.NotNil(t, offer)
	return *offer
}

func (f *fakeAppStore) offerStatus(id, system string) models.OfferStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, exist := f.recs[id]
	if !exist {
		return ""
	}
	offer := rec.FindInterviewOffer(system)
	if offer == nil {
		return ""
	}
	return offer.Status
}

type fakePolicyStore struct {
	policies map[string]*dbmodels.SchedulingPolicy
}

func (f *fakePolicyStore) Create(data scheduleapimodels.PolicyData) (string, error) {
	return "", nil
}

func (f *fakePolicyStore) Update(id string, data scheduleapimodels.PolicyData) error {
	return nil
}

func (f *fakePolicyStore) Delete(id string) error {
	return nil
}

func (f *fakePolicyStore) List(team models.Team) ([]scheduleapimodels.PolicyView, error) {
	return nil, nil
}

func (f *fakePolicyStore) GetByTeamSystem(team models.Team, system string) (*dbmodels.SchedulingPolicy, error) {
	return f.policies[string(team)+"/"+system], nil
}

type fakeCalendar struct {
	mu          sync.Mutex
	events      []calendarapimodels.Event
	listErr     error
	createErr   error
	listCalls   int
	created     []calendarapimodels.CreateEventRequest
	deleted     []string
	createBlock chan struct{}
}

func (f *fakeCalendar) ListEvents(ctx context.Context, calendarID string, from, to time.Time) ([]calendarapimodels.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.events, nil
}

func (f *fakeCalendar) CreateEvent(ctx context.Context, calendarID string, req calendarapimodels.CreateEventRequest) (string, error) {
	if f.createBlock != nil {
		<-f.createBlock
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, req)
	return "event-1", nil
}

func (f *fakeCalendar) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, eventID)
	return nil
}

func (f *fakeCalendar) createCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

var testLocation = func() *time.Location {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		panic(err)
	}
	return loc
}()

// слот в понедельник 10:00 по таймзоне политики
var testSlotStart = time.Date(2026, 9, 7, 10, 0, 0, 0, testLocation)

func newTestCoordinator(offerStatus models.OfferStatus) (impl, *fakeAppStore, *fakeCalendar) {
	store := &fakeAppStore{recs: map[string]*dbmodels.Application{}}
	rec := dbmodels.Application{
		CandidateID: "candidate-1",
		Team:        models.TeamCombustion,
		Status:      models.ApplicationStatusInterview,
		InterviewOffers: dbmodels.InterviewOfferList{
			{System: "Chassis", Status: offerStatus, CreatedAt: time.Now()},
		},
	}
	rec.ID = "app-1"
	_, _ = store.Create(rec)

	policy := &dbmodels.SchedulingPolicy{
		Team:               models.TeamCombustion,
		System:             "Chassis",
		CalendarID:         "cal-1",
		InterviewerEmails:  []string{"lead@team.dev"},
		DurationMinutes:    60,
		BufferMinutes:      15,
		AvailableDays:      []int64{1, 2, 3, 4, 5},
		AvailableStartHour: 10,
		AvailableEndHour:   18,
		Timezone:           "Europe/Moscow",
	}
	policyStore := &fakePolicyStore{policies: map[string]*dbmodels.SchedulingPolicy{
		"combustion/Chassis": policy,
	}}
	cal := &fakeCalendar{}
	return impl{store: store, policy: policyStore, calendar: cal}, store, cal
}

func TestBook(t *testing.T) {
	ctx := context.Background()

	t.Run(`successful booking check`, func(t *testing.T) {
		coordinator, store, cal := newTestCoordinator(models.OfferStatusPending)
		result, err := coordinator.Book(ctx, "app-1", "candidate-1", "Chassis", testSlotStart)
		require.Nil(t, err)
		require.Equal(t, "event-1", result.ExternalEventID)
		require.Equal(t, testSlotStart.Add(time.Hour), result.ScheduledEndAt)

		offer := store.offer(t, "app-1", "Chassis")
		require.Equal(t, models.OfferStatusScheduled, offer.Status)
		require.Equal(t, "event-1", offer.ExternalEventID)
		require.Equal(t, 1, cal.createCount())
	})

	t.Run(`already scheduled check`, func(t *testing.T) {
		coordinator, _, cal := newTestCoordinator(models.OfferStatusScheduled)
		_, err := coordinator.Book(ctx, "app-1", "candidate-1", "Chassis", testSlotStart)
		require.Equal(t, true, errors.Is(err, models.ErrAlreadyScheduled))
		require.Equal(t, 0, cal.createCount())
	})

	t.Run(`foreign candidate check`, func(t *testing.T) {
		coordinator, _, _ := newTestCoordinator(models.OfferStatusPending)
		_, err := coordinator.Book(ctx, "app-1", "candidate-2", "Chassis", testSlotStart)
		require.Equal(t, true, errors.Is(err, models.ErrForbidden))
	})

	t.Run(`concurrent booking gets conflict check`, func(t *testing.T) {
		coordinator, store, cal := newTestCoordinator(models.OfferStatusPending)
		cal.createBlock = make(chan struct{})

		done := make(chan error, 1)
		go func() {
			_, err := coordinator.Book(ctx, "app-1", "candidate-1", "Chassis", testSlotStart)
			done <- err
		}()

		// ждём, пока первый запрос захватит бронь и уйдёт в календарь
		require.Eventually(t, func() bool {
			return store.offerStatus("app-1", "Chassis") == models.OfferStatusScheduling
		}, time.Second, 5*time.Millisecond)

		_, err := coordinator.Book(ctx, "app-1", "candidate-1", "Chassis", testSlotStart)
		require.Equal(t, true, errors.Is(err, models.ErrReservationInProgress))

		close(cal.createBlock)
		require.Nil(t, <-done)
		require.Equal(t, models.OfferStatusScheduled, store.offer(t, "app-1", "Chassis").Status)
	})

	t.Run(`calendar failure rolls back to pending check`, func(t *testing.T) {
		coordinator, store, cal := newTestCoordinator(models.OfferStatusPending)
		cal.createErr = errors.New("календарь недоступен")

		_, err := coordinator.Book(ctx, "app-1", "candidate-1", "Chassis", testSlotStart)
		require.NotNil(t, err)

		offer := store.offer(t, "app-1", "Chassis")
		require.Equal(t, models.OfferStatusPending, offer.Status)
		require.Nil(t, offer.ScheduledAt)
		require.Nil(t, offer.ScheduledEndAt)
		require.Nil(t, offer.ScheduledOnDate)
		require.Equal(t, "", offer.ExternalEventID)
	})

	t.Run(`list failure is treated as busy check`, func(t *testing.T) {
		coordinator, store, cal := newTestCoordinator(models.OfferStatusPending)
		cal.listErr = errors.New("timeout")

		_, err := coordinator.Book(ctx, "app-1", "candidate-1", "Chassis", testSlotStart)
		require.NotNil(t, err)
		require.Equal(t, 0, cal.createCount())
		require.Equal(t, models.OfferStatusPending, store.offer(t, "app-1", "Chassis").Status)
	})

	t.Run(`slot outside window never reaches calendar check`, func(t *testing.T) {
		coordinator, store, cal := newTestCoordinator(models.OfferStatusPending)

		// воскресенье
		sunday := time.Date(2026, 9, 6, 10, 0, 0, 0, testLocation)
		_, err := coordinator.Book(ctx, "app-1", "candidate-1", "Chassis", sunday)
		require.NotNil(t, err)
		require.Equal(t, 0, cal.listCalls)
		require.Equal(t, 0, cal.createCount())
		require.Equal(t, models.OfferStatusPending, store.offer(t, "app-1", "Chassis").Status)
	})

	t.Run(`overlap with existing event check`, func(t *testing.T) {
		coordinator, store, cal := newTestCoordinator(models.OfferStatusPending)
		cal.events = []calendarapimodels.Event{
			{ID: "other", Start: testSlotStart.Add(30 * time.Minute), End: testSlotStart.Add(90 * time.Minute)},
		}

		_, err := coordinator.Book(ctx, "app-1", "candidate-1", "Chassis", testSlotStart)
		require.NotNil(t, err)
		require.Equal(t, 0, cal.createCount())
		require.Equal(t, models.OfferStatusPending, store.offer(t, "app-1", "Chassis").Status)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	t.Run(`cancel scheduled removes event check`, func(t *testing.T) {
		coordinator, store, cal := newTestCoordinator(models.OfferStatusPending)
		_, err := coordinator.Book(ctx, "app-1", "candidate-1", "Chassis", testSlotStart)
		require.Nil(t, err)

		require.Nil(t, coordinator.Cancel(ctx, "app-1", "Chassis", "кандидат заболел", models.SystemUser))
		offer := store.offer(t, "app-1", "Chassis")
		require.Equal(t, models.OfferStatusCancelled, offer.Status)
		require.Equal(t, "кандидат заболел", offer.CancelReason)
		require.Equal(t, []string{"event-1"}, cal.deleted)
	})

	t.Run(`cancel requires reason check`, func(t *testing.T) {
		coordinator, _, _ := newTestCoordinator(models.OfferStatusPending)
		require.NotNil(t, coordinator.Cancel(ctx, "app-1", "Chassis", "", models.SystemUser))
	})
}

func TestMarkOutcome(t *testing.T) {
	t.Run(`outcome only for scheduled check`, func(t *testing.T) {
		coordinator, store, _ := newTestCoordinator(models.OfferStatusScheduled)
		require.Nil(t, coordinator.MarkOutcome("app-1", "Chassis", models.OfferStatusCompleted))
		require.Equal(t, models.OfferStatusCompleted, store.offer(t, "app-1", "Chassis").Status)
	})

	t.Run(`outcome for pending rejected check`, func(t *testing.T) {
		coordinator, _, _ := newTestCoordinator(models.OfferStatusPending)
		err := coordinator.MarkOutcome("app-1", "Chassis", models.OfferStatusCompleted)
		require.Equal(t, true, errors.Is(err, models.ErrInvalidTransition))
	})
}

func TestReclaimStuck(t *testing.T) {
	ctx := context.Background()
	coordinator, store, _ := newTestCoordinator(models.OfferStatusPending)

	old := time.Now().Add(-10 * time.Minute)
	fresh := time.Now()
	start := testSlotStart
	_, err := store.UpdateTx("app-1", func(rec *dbmodels.Application) error {
		rec.InterviewOffers[0].Status = models.OfferStatusScheduling
		rec.InterviewOffers[0].ScheduledAt = &start
		rec.InterviewOffers[0].ScheduledOnDate = &old
		rec.InterviewOffers = append(rec.InterviewOffers, dbmodels.InterviewOffer{
			System:          "Powertrain",
			Status:          models.OfferStatusScheduling,
			ScheduledOnDate: &fresh,
			CreatedAt:       time.Now(),
		})
		return nil
	})
	require.Nil(t, err)

	reclaimed, err := coordinator.ReclaimStuck(ctx, 5*time.Minute)
	require.Nil(t, err)
	require.Equal(t, 1, reclaimed)

	stuck := store.offer(t, "app-1", "Chassis")
	require.Equal(t, models.OfferStatusPending, stuck.Status)
	require.Nil(t, stuck.ScheduledAt)

	// свежая бронь не трогается
	require.Equal(t, models.OfferStatusScheduling, store.offer(t, "app-1", "Powertrain").Status)
}
