package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"team-recruiting-backend/models"
	apimodels "team-recruiting-backend/models/api"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	id := ctx.Params("id")
	if id == "" {
		return "", errors.New("не указан идентификатор")
	}
	return id, nil
}

// SendError переводит ошибку ядра в код ответа: конфликты брони и
// бизнес-отказы уходят клиенту как есть для показа пользователю
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, models.ErrForbidden):
		status = fiber.StatusForbidden
	case errors.Is(err, models.ErrAlreadyScheduled),
		errors.Is(err, models.ErrReservationInProgress),
		errors.Is(err, models.ErrConcurrentModification):
		status = fiber.StatusConflict
	case errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrAlreadyResponded):
		status = fiber.StatusBadRequest
	case errors.Is(err, models.ErrExternalService):
		status = fiber.StatusBadGateway
	}
	if status == fiber.StatusInternalServerError {
		log.WithError(err).Error("внутренняя ошибка обработки запроса")
	}
	return ctx.Status(status).JSON(apimodels.NewError(err.Error()))
}
