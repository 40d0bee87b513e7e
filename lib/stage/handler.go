package stage

import (
	"time"

	"team-recruiting-backend/db"
	stagestore "team-recruiting-backend/lib/stage/store"
	"team-recruiting-backend/models"
	stageapimodels "team-recruiting-backend/models/api/stage"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Глобальный этап набора. Смена этапа доверена только администратору;
// монотонность порядка не навязывается, откат назад считается
// осознанным override и фиксируется в updated_by
type Provider interface {
	GetCurrentStep() (models.RecruitStep, error)
	Get() (stageapimodels.StageView, error)
	SetStep(step models.RecruitStep, updatedBy string) error
}

var Instance Provider

const stepCacheKey = "current_step"

func NewHandler(cacheTTL time.Duration) {
	Instance = &impl{
		store: stagestore.NewInstance(db.DB),
		// смена этапа должна доезжать до маскирования быстро,
		// поэтому ttl кэша - секунды
		cache: cache.New(cacheTTL, 10*cacheTTL),
	}
}

type impl struct {
	store stagestore.Provider
	cache *cache.Cache
}

func (i *impl) GetCurrentStep() (models.RecruitStep, error) {
	if cached, found := i.cache.Get(stepCacheKey); found {
		return cached.(models.RecruitStep), nil
	}
	rec, err := i.store.Get()
	if err != nil {
		return "", errors.Wrap(err, "ошибка чтения этапа набора")
	}
	if rec == nil {
		return "", errors.New("этап набора не инициализирован")
	}
	i.cache.SetDefault(stepCacheKey, rec.CurrentStep)
	return rec.CurrentStep, nil
}

func (i *impl) Get() (stageapimodels.StageView, error) {
	rec, err := i.store.Get()
	if err != nil {
		return stageapimodels.StageView{}, errors.Wrap(err, "ошибка чтения этапа набора")
	}
	if rec == nil {
		return stageapimodels.StageView{}, errors.New("этап набора не инициализирован")
	}
	return stageapimodels.StageView{
		CurrentStep: rec.CurrentStep,
		UpdatedAt:   rec.UpdatedAt,
		UpdatedBy:   rec.UpdatedBy,
	}, nil
}

func (i *impl) SetStep(step models.RecruitStep, updatedBy string) error {
	if !step.IsValid() {
		return errors.New("неизвестный этап набора")
	}
	current, err := i.GetCurrentStep()
	if err != nil {
		return err
	}
	if err = i.store.Set(step, updatedBy); err != nil {
		return errors.Wrap(err, "ошибка смены этапа набора")
	}
	i.cache.Delete(stepCacheKey)
	logger := log.
		WithField("from", current).
		WithField("to", step).
		WithField("updated_by", updatedBy)
	if step.Before(current) {
		logger.Warn("этап набора переведён назад")
	} else {
		logger.Info("этап набора изменён")
	}
	return nil
}
