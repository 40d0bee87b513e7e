package application

import (
	"encoding/json"
	"testing"

	"team-recruiting-backend/lib/status"
	"team-recruiting-backend/models"
	dbmodels "team-recruiting-backend/models/db"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	recs map[string]*dbmodels.Application
	seq  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{recs: map[string]*dbmodels.Application{}}
}

func cloneApplication(rec dbmodels.Application) dbmodels.Application {
	data, err := json.Marshal(rec)
	if err != nil {
		panic(err)
	}
	result := dbmodels.Application{}
	if err = json.Unmarshal(data, &result); err != nil {
		panic(err)
	}
	result.ID = rec.ID
	result.CreatedAt = rec.CreatedAt
	result.Version = rec.Version
	return result
}

func (f *fakeStore) Create(rec dbmodels.Application) (string, error) {
	f.seq++
	rec.ID = string(rune('a' + f.seq))
	clone := cloneApplication(rec)
	f.recs[rec.ID] = &clone
	return rec.ID, nil
}

func (f *fakeStore) GetByID(id string) (*dbmodels.Application, error) {
	rec, exist := f.recs[id]
	if !exist {
		return nil, nil
	}
	clone := cloneApplication(*rec)
	return &clone, nil
}

func (f *fakeStore) GetByCandidateTeam(candidateID string, team models.Team) (*dbmodels.Application, error) {
	for _, rec := range f.recs {
		if rec.CandidateID == candidateID && rec.Team == team {
			clone := cloneApplication(*rec)
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListByCandidate(candidateID string) ([]dbmodels.Application, error) {
	list := []dbmodels.Application{}
	for _, rec := range f.recs {
		if rec.CandidateID == candidateID {
			list = append(list, cloneApplication(*rec))
		}
	}
	return list, nil
}

func (f *fakeStore) List(filter dbmodels.ApplicationFilter) ([]dbmodels.Application, error) {
	list := []dbmodels.Application{}
	for _, rec := range f.recs {
		list = append(list, cloneApplication(*rec))
	}
	return list, nil
}

func (f *fakeStore) UpdateTx(id string, mutate func(rec *dbmodels.Application) error) (*dbmodels.Application, error) {
	rec, exist := f.recs[id]
	if !exist {
		return nil, models.ErrNotFound
	}
	clone := cloneApplication(*rec)
	if err := mutate(&clone); err != nil {
		return nil, err
	}
	clone.Version++
	f.recs[id] = &clone
	result := cloneApplication(clone)
	return &result, nil
}

func (f *fakeStore) ListWithSchedulingOffers() ([]dbmodels.Application, error) {
	list := []dbmodels.Application{}
	for _, rec := range f.recs {
		for _, offer := range rec.InterviewOffers {
			if offer.Status == models.OfferStatusScheduling {
				list = append(list, cloneApplication(*rec))
				break
			}
		}
	}
	return list, nil
}

func newTestHandler() (impl, *fakeStore) {
	store := newFakeStore()
	return impl{store: store}, store
}

func createSubmitted(t *testing.T, handler impl) string {
	id, err := handler.Create(dbmodels.CreateApplicationData{
		CandidateID:      "candidate-1",
		Team:             models.TeamCombustion,
		PreferredSystems: []string{"Chassis", "Powertrain"},
	})
	require.Nil(t, err)
	require.Nil(t, handler.Submit("candidate-1", id))
	return id
}

func TestExtendInterviewOffers(t *testing.T) {
	t.Run(`idempotent extend check`, func(t *testing.T) {
		handler, store := newTestHandler()
		id := createSubmitted(t, handler)

		require.Nil(t, handler.ExtendInterviewOffers(id, []string{"Chassis"}))
		require.Nil(t, handler.ExtendInterviewOffers(id, []string{"Chassis"}))

		rec := store.recs[id]
		require.Len(t, rec.InterviewOffers, 1)
		require.Equal(t, "Chassis", rec.InterviewOffers[0].System)
		require.Equal(t, models.OfferStatusPending, rec.InterviewOffers[0].Status)
		require.Equal(t, models.ApplicationStatusInterview, rec.Status)
	})

	t.Run(`extend clears previous rejection check`, func(t *testing.T) {
		handler, store := newTestHandler()
		id := createSubmitted(t, handler)

		require.Nil(t, handler.ExtendInterviewOffers(id, []string{"Chassis"}))
		_, err := handler.RejectFromSystems(id, []string{"Chassis"})
		require.Nil(t, err)
		require.Equal(t, models.ApplicationStatusRejected, store.recs[id].Status)

		require.Nil(t, handler.ExtendInterviewOffers(id, []string{"Chassis"}))
		rec := store.recs[id]
		require.Empty(t, rec.RejectedBySystems)
		require.Len(t, rec.InterviewOffers, 1)
		require.Equal(t, models.ApplicationStatusInterview, rec.Status)
	})
}

func TestRejectFromSystems(t *testing.T) {
	t.Run(`partial rejection keeps application alive check`, func(t *testing.T) {
		handler, store := newTestHandler()
		id := createSubmitted(t, handler)
		require.Nil(t, handler.ExtendInterviewOffers(id, []string{"Chassis", "Powertrain"}))

		fullyRejected, err := handler.RejectFromSystems(id, []string{"Powertrain"})
		require.Nil(t, err)
		require.Equal(t, false, fullyRejected)

		rec := store.recs[id]
		require.Equal(t, models.ApplicationStatusInterview, rec.Status)
		require.Len(t, rec.InterviewOffers, 1)
		require.Equal(t, "Chassis", rec.InterviewOffers[0].System)
		require.Equal(t, []string(rec.RejectedBySystems), []string{"Powertrain"})
	})

	t.Run(`last rejection turns application rejected check`, func(t *testing.T) {
		handler, store := newTestHandler()
		id := createSubmitted(t, handler)
		require.Nil(t, handler.ExtendInterviewOffers(id, []string{"Chassis", "Powertrain"}))

		_, err := handler.RejectFromSystems(id, []string{"Powertrain"})
		require.Nil(t, err)
		fullyRejected, err := handler.RejectFromSystems(id, []string{"Chassis"})
		require.Nil(t, err)
		require.Equal(t, true, fullyRejected)

		rec := store.recs[id]
		require.Equal(t, models.ApplicationStatusRejected, rec.Status)
		// инвариант: у rejected-заявки нет активных офферов вне rejected_by_systems
		for _, offer := range rec.InterviewOffers {
			require.Equal(t, false, offer.Status.IsActive())
		}
	})

	t.Run(`duplicate rejection is ignored check`, func(t *testing.T) {
		handler, store := newTestHandler()
		id := createSubmitted(t, handler)
		require.Nil(t, handler.ExtendInterviewOffers(id, []string{"Chassis"}))

		_, err := handler.RejectFromSystems(id, []string{"Chassis"})
		require.Nil(t, err)
		_, err = handler.RejectFromSystems(id, []string{"Chassis"})
		require.Nil(t, err)
		require.Equal(t, []string(store.recs[id].RejectedBySystems), []string{"Chassis"})
	})
}

func TestTrialOffers(t *testing.T) {
	t.Run(`trial offer requires interview offer check`, func(t *testing.T) {
		handler, _ := newTestHandler()
		id := createSubmitted(t, handler)

		err := handler.ExtendTrialOffer(id, "Chassis")
		require.NotNil(t, err)
		require.Equal(t, true, errors.Is(err, models.ErrInvalidTransition))
	})

	t.Run(`trial response is write-once check`, func(t *testing.T) {
		handler, store := newTestHandler()
		id := createSubmitted(t, handler)
		require.Nil(t, handler.ExtendInterviewOffers(id, []string{"Chassis"}))
		require.Nil(t, handler.ExtendTrialOffer(id, "Chassis"))
		require.Equal(t, models.ApplicationStatusTrial, store.recs[id].Status)

		require.Nil(t, handler.RecordTrialResponse("candidate-1", id, true, ""))
		err := handler.RecordTrialResponse("candidate-1", id, false, "передумал")
		require.NotNil(t, err)
		require.Equal(t, true, errors.Is(err, models.ErrAlreadyResponded))
	})

	t.Run(`decline requires reason check`, func(t *testing.T) {
		handler, _ := newTestHandler()
		id := createSubmitted(t, handler)
		require.Nil(t, handler.ExtendInterviewOffers(id, []string{"Chassis"}))
		require.Nil(t, handler.ExtendTrialOffer(id, "Chassis"))

		err := handler.RecordTrialResponse("candidate-1", id, false, "")
		require.NotNil(t, err)
	})
}

func TestAccept(t *testing.T) {
	t.Run(`accept requires active offer check`, func(t *testing.T) {
		handler, store := newTestHandler()
		id := createSubmitted(t, handler)
		require.Nil(t, handler.ExtendInterviewOffers(id, []string{"Chassis"}))

		err := handler.Accept(id, "Powertrain", "инженер", "")
		require.NotNil(t, err)
		require.Equal(t, true, errors.Is(err, models.ErrInvalidTransition))

		require.Nil(t, handler.Accept(id, "Chassis", "инженер", "подвеска"))
		rec := store.recs[id]
		require.Equal(t, models.ApplicationStatusAccepted, rec.Status)
		require.Equal(t, "Chassis", rec.AcceptedSystem)
	})
}

// сквозной сценарий: две системы, поэтапные отказы и публикация решений
func TestRejectionScenario(t *testing.T) {
	handler, store := newTestHandler()
	id := createSubmitted(t, handler)
	require.Nil(t, handler.ExtendInterviewOffers(id, []string{"Chassis", "Powertrain"}))

	visible := status.VisibleStatus(store.recs[id].Status, models.RecruitStepInterviewing)
	require.Equal(t, models.ApplicationStatusInterview, visible)

	_, err := handler.RejectFromSystems(id, []string{"Powertrain"})
	require.Nil(t, err)
	require.Equal(t, models.ApplicationStatusInterview, store.recs[id].Status)

	fullyRejected, err := handler.RejectFromSystems(id, []string{"Chassis"})
	require.Nil(t, err)
	require.Equal(t, true, fullyRejected)
	require.Equal(t, models.ApplicationStatusRejected, store.recs[id].Status)

	// до публикации решений кандидат видит только submitted
	visible = status.VisibleStatus(store.recs[id].Status, models.RecruitStepInterviewing)
	require.Equal(t, models.ApplicationStatusSubmitted, visible)

	visible = status.VisibleStatus(store.recs[id].Status, models.RecruitStepReleaseDecisions)
	require.Equal(t, models.ApplicationStatusRejected, visible)
}
