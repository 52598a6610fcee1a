package controller

import (
	"ai-producer-be/internal/dto"
	"ai-producer-be/internal/pkg/serverutils"
	"ai-producer-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IStrategyController interface {
	RegisterRoutes(r fiber.Router)
	Get(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
}

type strategyController struct {
	service service.IStrategyService
}

func NewStrategyController(service service.IStrategyService) IStrategyController {
	return &strategyController{service: service}
}

func (c *strategyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/strategy/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/", c.Get)
	h.Put("/", c.Update)
}

func (c *strategyController) Get(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	res, err := c.service.GetStrategy(ctx.Context(), userId)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *strategyController) Update(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	var req dto.UpdateStrategyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.service.UpdateStrategy(ctx.Context(), userId, &req)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Strategy updated", res))
}
