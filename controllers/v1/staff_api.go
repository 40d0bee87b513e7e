package apiv1

import (
	"team-recruiting-backend/controllers"
	applicationhandler "team-recruiting-backend/lib/application"
	schedulehandler "team-recruiting-backend/lib/schedule"
	"team-recruiting-backend/middleware"
	apimodels "team-recruiting-backend/models/api"
	applicationapimodels "team-recruiting-backend/models/api/application"
	scheduleapimodels "team-recruiting-backend/models/api/schedule"
	dbmodels "team-recruiting-backend/models/db"

	"github.com/gofiber/fiber/v2"
)

type staffApiController struct {
	controllers.BaseAPIController
}

// действия сотрудников над заявками: офферы, отказы, пробный день, решение
func InitStaffApiRouters(app *fiber.App) {
	controller := staffApiController{}
	app.Route("application", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Route(":id", func(idRouter fiber.Router) {
			idRouter.Get("", controller.get)
			idRouter.Post("interview-offers", controller.extendInterviewOffers)
			idRouter.Post("reject", controller.rejectFromSystems)
			idRouter.Post("trial-offer", controller.extendTrialOffer)
			idRouter.Post("accept", controller.accept)
			idRouter.Route("interview/:system", func(sysRouter fiber.Router) {
				sysRouter.Post("cancel", controller.cancelInterview)
				sysRouter.Post("outcome", controller.markOutcome)
			})
		})
	})
}

// @Summary Список заявок
// @Tags Сотрудник
// @Description Список заявок с фильтром по команде, статусу и системе
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   body	body	dbmodels.ApplicationFilter	false	"фильтр"
// @Success 200 {object} apimodels.Response{data=[]applicationapimodels.ApplicationView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/staff/application/list [post]
func (c *staffApiController) list(ctx *fiber.Ctx) error {
	filter := dbmodels.ApplicationFilter{}
	if err := c.BodyParser(ctx, &filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := applicationhandler.Instance.List(filter)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Заявка целиком
// @Tags Сотрудник
// @Description Полная запись заявки без маскирования
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID заявки"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @router /api/v1/staff/application/{id} [get]
func (c *staffApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	rec, err := applicationhandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(applicationapimodels.ApplicationConvert(*rec)))
}

// @Summary Выдать приглашения на интервью
// @Tags Сотрудник
// @Description Добавить pending-офферы указанных систем, повторная выдача - no-op
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID заявки"
// @Param   body	body	applicationapimodels.SystemsRequest	true	"системы"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/staff/application/{id}/interview-offers [post]
func (c *staffApiController) extendInterviewOffers(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	data := applicationapimodels.SystemsRequest{}
	if err = c.BodyParser(ctx, &data); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = applicationhandler.Instance.ExtendInterviewOffers(id, data.Systems)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отказ систем
// @Tags Сотрудник
// @Description Снять офферы систем; заявка становится rejected только без оставшихся активных офферов
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID заявки"
// @Param   body	body	applicationapimodels.SystemsRequest	true	"системы"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/staff/application/{id}/reject [post]
func (c *staffApiController) rejectFromSystems(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	data := applicationapimodels.SystemsRequest{}
	if err = c.BodyParser(ctx, &data); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	fullyRejected, err := applicationhandler.Instance.RejectFromSystems(id, data.Systems)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(fullyRejected))
}

// @Summary Пригласить на пробный день
// @Tags Сотрудник
// @Description Выдать приглашение на пробный день от системы с активным оффером
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID заявки"
// @Param   body	body	applicationapimodels.TrialOfferRequest	true	"система"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/staff/application/{id}/trial-offer [post]
func (c *staffApiController) extendTrialOffer(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	data := applicationapimodels.TrialOfferRequest{}
	if err = c.BodyParser(ctx, &data); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = applicationhandler.Instance.ExtendTrialOffer(id, data.System)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Принять кандидата
// @Tags Сотрудник
// @Description Терминальный перевод заявки в accepted от имени системы
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID заявки"
// @Param   body	body	applicationapimodels.AcceptRequest	true	"система, роль, детали"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/staff/application/{id}/accept [post]
func (c *staffApiController) accept(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	data := applicationapimodels.AcceptRequest{}
	if err = c.BodyParser(ctx, &data); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = applicationhandler.Instance.Accept(id, data.System, data.Role, data.Details)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отменить назначенное интервью
// @Tags Сотрудник
// @Description Отмена брони с причиной; событие календаря удаляется best-effort
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID заявки"
// @Param   system	path	string	true	"система"
// @Param   body	body	scheduleapimodels.CancelRequest	true	"причина отмены"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/staff/application/{id}/interview/{system}/cancel [post]
func (c *staffApiController) cancelInterview(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	system := ctx.Params("system")
	data := scheduleapimodels.CancelRequest{}
	if err = c.BodyParser(ctx, &data); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = schedulehandler.Instance.Cancel(ctx.UserContext(), id, system, data.Reason, middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Итог интервью
// @Tags Сотрудник
// @Description Пометить назначенное интервью как проведённое или неявку
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID заявки"
// @Param   system	path	string	true	"система"
// @Param   body	body	scheduleapimodels.OutcomeRequest	true	"итог"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/staff/application/{id}/interview/{system}/outcome [post]
func (c *staffApiController) markOutcome(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	system := ctx.Params("system")
	data := scheduleapimodels.OutcomeRequest{}
	if err = c.BodyParser(ctx, &data); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = data.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = schedulehandler.Instance.MarkOutcome(id, system, data.Outcome)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
