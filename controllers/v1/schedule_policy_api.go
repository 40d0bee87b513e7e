package apiv1

import (
	"team-recruiting-backend/controllers"
	schedulepolicyhandler "team-recruiting-backend/lib/schedule/policy"
	"team-recruiting-backend/models"
	apimodels "team-recruiting-backend/models/api"
	scheduleapimodels "team-recruiting-backend/models/api/schedule"

	"github.com/gofiber/fiber/v2"
)

type schedulePolicyApiController struct {
	controllers.BaseAPIController
}

func InitSchedulePolicyApiRouters(app *fiber.App) {
	controller := schedulePolicyApiController{}
	app.Route("scheduling-policy", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Route(":id", func(idRouter fiber.Router) {
			idRouter.Put("", controller.update)
			idRouter.Delete("", controller.delete)
		})
	})
}

// @Summary Список политик бронирования
// @Tags Политика бронирования
// @Description Политики бронирования интервью, опционально по команде
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   team	query	string	false	"команда"
// @Success 200 {object} apimodels.Response{data=[]scheduleapimodels.PolicyView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/staff/scheduling-policy [get]
func (c *schedulePolicyApiController) list(ctx *fiber.Ctx) error {
	team := models.Team(ctx.Query("team"))
	list, err := schedulepolicyhandler.Instance.List(team)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Создать политику бронирования
// @Tags Политика бронирования
// @Description Создать политику для пары команда+система
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   body	body	scheduleapimodels.PolicyData	true	"политика"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/staff/scheduling-policy [post]
func (c *schedulePolicyApiController) create(ctx *fiber.Ctx) error {
	data := scheduleapimodels.PolicyData{}
	if err := c.BodyParser(ctx, &data); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := schedulepolicyhandler.Instance.Create(data)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Обновить политику бронирования
// @Tags Политика бронирования
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID политики"
// @Param   body	body	scheduleapimodels.PolicyData	true	"политика"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @router /api/v1/staff/scheduling-policy/{id} [put]
func (c *schedulePolicyApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	data := scheduleapimodels.PolicyData{}
	if err = c.BodyParser(ctx, &data); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = schedulepolicyhandler.Instance.Update(id, data)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удалить политику бронирования
// @Tags Политика бронирования
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   id	path	string	true	"ID политики"
// @Success 200
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/staff/scheduling-policy/{id} [delete]
func (c *schedulePolicyApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = schedulepolicyhandler.Instance.Delete(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
