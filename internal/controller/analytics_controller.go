package controller

import (
	"ai-support-chat-be/internal/pkg/serverutils"
	"ai-support-chat-be/pkg/analytics"

	"github.com/gofiber/fiber/v2"
)

type IAnalyticsController interface {
	RegisterRoutes(r fiber.Router)
	Summary(ctx *fiber.Ctx) error
	Recent(ctx *fiber.Ctx) error
}

type analyticsController struct {
	collector *analytics.Collector
}

func NewAnalyticsController(collector *analytics.Collector) IAnalyticsController {
	return &analyticsController{
		collector: collector,
	}
}

func (c *analyticsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/analytics/v1")
	h.Get("summary", c.Summary)
	h.Get("recent", c.Recent)
}

func (c *analyticsController) Summary(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Analytics summary", c.collector.Summary()))
}

func (c *analyticsController) Recent(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 20)
	return ctx.JSON(serverutils.SuccessResponse("Recent interactions", c.collector.Recent(limit)))
}
