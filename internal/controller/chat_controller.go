package controller

import (
	"ai-support-chat-be/internal/dto"
	"ai-support-chat-be/internal/pkg/serverutils"
	"ai-support-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendMessage(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	GetWindowSize(ctx *fiber.Ctx) error
	SetWindowSize(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("message", c.SendMessage)
	h.Get("session/:sessionId/history", c.GetHistory)
	h.Get("session/:sessionId/window", c.GetWindowSize)
	h.Put("session/:sessionId/window", c.SetWindowSize)
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.ChatMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendMessage(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Message processed", res))
}

func (c *chatController) GetHistory(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("sessionId")
	if sessionId == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Session id is required"))
	}

	res := c.chatService.GetHistory(sessionId)
	return ctx.JSON(serverutils.SuccessResponse("Session history", res))
}

func (c *chatController) GetWindowSize(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("sessionId")
	if sessionId == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Session id is required"))
	}

	res := c.chatService.GetWindowSize(sessionId)
	return ctx.JSON(serverutils.SuccessResponse("Conversation window size", res))
}

func (c *chatController) SetWindowSize(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("sessionId")
	if sessionId == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Session id is required"))
	}

	var req dto.SetWindowSizeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res := c.chatService.SetWindowSize(sessionId, req.Size)
	return ctx.JSON(serverutils.SuccessResponse("Conversation window size updated", res))
}
