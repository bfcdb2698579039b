package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ShiroiHyun/StudAIApp/internal/ports"
)

type NotificationHandler struct {
	service ports.NotificationService
	log     *zap.Logger
}

func NewNotificationHandler(service ports.NotificationService, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{service: service, log: log}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	notifications, err := h.service.ListNotifications(c.Context(), userID)
	if err != nil {
		h.log.Error("Failed to list notifications", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list notifications"})
	}
	return c.JSON(fiber.Map{"notifications": notifications})
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.service.MarkRead(c.Context(), c.Params("id")); err != nil {
		h.log.Error("Failed to mark notification read", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to mark notification read"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
