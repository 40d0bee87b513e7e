package apiv1

import (
	"team-recruiting-backend/controllers"
	stagehandler "team-recruiting-backend/lib/stage"
	"team-recruiting-backend/middleware"
	apimodels "team-recruiting-backend/models/api"
	stageapimodels "team-recruiting-backend/models/api/stage"

	"github.com/gofiber/fiber/v2"
)

type stageApiController struct {
	controllers.BaseAPIController
}

func InitStageApiRouters(app *fiber.App) {
	controller := stageApiController{}
	app.Route("stage", func(router fiber.Router) {
		router.Get("", controller.get)
		router.Put("", controller.set)
	})
}

// @Summary Текущий этап набора
// @Tags Этап набора
// @Param   Authorization	header	string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=stageapimodels.StageView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/stage [get]
func (c *stageApiController) get(ctx *fiber.Ctx) error {
	view, err := stagehandler.Instance.Get()
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Сменить этап набора
// @Tags Этап набора
// @Description Смена глобального этапа; порядок не навязывается, откат назад считается осознанным override
// @Param   Authorization	header	string	true	"Authorization token"
// @Param   body	body	stageapimodels.SetStageRequest	true	"этап"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @router /api/v1/admin/stage [put]
func (c *stageApiController) set(ctx *fiber.Ctx) error {
	data := stageapimodels.SetStageRequest{}
	if err := c.BodyParser(ctx, &data); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err := stagehandler.Instance.SetStep(data.Step, middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
