package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ShiroiHyun/StudAIApp/internal/ports"
)

type AdminHandler struct {
	service ports.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service ports.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{service: service, log: log}
}

func (h *AdminHandler) Metrics(c *fiber.Ctx) error {
	metrics, err := h.service.Metrics(c.Context())
	if err != nil {
		h.log.Error("Failed to compute metrics", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to compute metrics"})
	}
	return c.JSON(fiber.Map{"metrics": metrics})
}

func (h *AdminHandler) ListTickets(c *fiber.Ctx) error {
	tickets, err := h.service.ListTickets(c.Context())
	if err != nil {
		h.log.Error("Failed to list tickets", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list tickets"})
	}
	return c.JSON(fiber.Map{"tickets": tickets})
}

func (h *AdminHandler) ResolveTicket(c *fiber.Ctx) error {
	if err := h.service.ResolveTicket(c.Context(), c.Params("id")); err != nil {
		h.log.Error("Failed to resolve ticket", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resolve ticket"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AdminHandler) DownloadReport(c *fiber.Ctx) error {
	report, err := h.service.GenerateReport(c.Context())
	if err != nil {
		h.log.Error("Failed to generate report", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate report"})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="tickets.csv"`)
	return c.Send(report)
}
