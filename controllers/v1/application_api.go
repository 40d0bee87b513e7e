package apiv1

import (
	"team-recruiting-backend/controllers"
	applicationhandler "team-recruiting-backend/lib/application"
	schedulehandler "team-recruiting-backend/lib/schedule"
	stagehandler "team-recruiting-backend/lib/stage"
	"team-recruiting-backend/lib/status"
	"team-recruiting-backend/middleware"
	apimodels "team-recruiting-backend/models/api"
	applicationapimodels "team-recruiting-backend/models/api/application"
	scheduleapimodels "team-recruiting-backend/models/api/schedule"
	dbmodels "team-recruiting-backend/models/db"

	"github.com/gofiber/fiber/v2"
)

type applicationApiController struct {
	controllers.BaseAPIController
}

// кандидатские ручки: заявка, отправка, бронирование слота, ответ на пробный день
func InitApplicationApiRouters(app *fiber.App) {
	controller := applicationApiController{}
	app.Route("application", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Get("my", controller.my)
		router.Route(":id", func(idRouter fiber.Router) {
			idRouter.Post("submit", controller.submit)
			idRouter.Post("book", controller.book)
			idRouter.Post("trial-response", controller.trialResponse)
		})
	})
}

// @Summary Создать заявку в команду
// @Tags Заявка
// @Description Создать черновик заявки в команду с пожеланиями по системам
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   body	body	dbmodels.CreateApplicationData	true	"данные заявки"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/application [post]
func (c *applicationApiController) create(ctx *fiber.Ctx) error {
	data := dbmodels.CreateApplicationData{}
	if err := c.BodyParser(ctx, &data); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	data.CandidateID = middleware.GetUserID(ctx)
	id, err := applicationhandler.Instance.Create(data)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Мои заявки
// @Tags Заявка
// @Description Заявки кандидата со статусом, спроецированным по текущему этапу набора
// @Param   Authorization	header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]applicationapimodels.CandidateApplicationView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/my [get]
func (c *applicationApiController) my(ctx *fiber.Ctx) error {
	candidateID := middleware.GetUserID(ctx)
	list, err := applicationhandler.Instance.ListByCandidate(candidateID)
	if err != nil {
		return c.SendError(ctx, err)
	}
	step, err := stagehandler.Instance.GetCurrentStep()
	if err != nil {
		return c.SendError(ctx, err)
	}
	result := make([]applicationapimodels.CandidateApplicationView, 0, len(list))
	for _, rec := range list {
		result = append(result, status.CandidateView(rec, step))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Отправить заявку
// @Tags Заявка
// @Description Перевести заявку из черновика в отправленную
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID заявки"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/application/{id}/submit [post]
func (c *applicationApiController) submit(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = applicationhandler.Instance.Submit(middleware.GetUserID(ctx), id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Забронировать слот интервью
// @Tags Заявка
// @Description Забронировать время интервью у системы; при занятом слоте вернётся конфликт
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID заявки"
// @Param   body	body	scheduleapimodels.BookingRequest	true	"система и время слота"
// @Success 200 {object} apimodels.Response{data=scheduleapimodels.BookingResult}
// @Failure 400 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/application/{id}/book [post]
func (c *applicationApiController) book(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	data := scheduleapimodels.BookingRequest{}
	if err = c.BodyParser(ctx, &data); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = data.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := schedulehandler.Instance.Book(ctx.UserContext(), id, middleware.GetUserID(ctx), data.System, data.Start)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Ответить на приглашение на пробный день
// @Tags Заявка
// @Description Принять или отклонить приглашение; ответ даётся один раз
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID заявки"
// @Param   body	body	applicationapimodels.TrialResponseRequest	true	"ответ кандидата"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/application/{id}/trial-response [post]
func (c *applicationApiController) trialResponse(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	data := applicationapimodels.TrialResponseRequest{}
	if err = c.BodyParser(ctx, &data); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = applicationhandler.Instance.RecordTrialResponse(middleware.GetUserID(ctx), id, data.Accepted, data.RejectionReason)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
