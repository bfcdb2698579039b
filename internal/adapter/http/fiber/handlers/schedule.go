package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ShiroiHyun/StudAIApp/internal/domain"
	"github.com/ShiroiHyun/StudAIApp/internal/ports"
)

type ScheduleHandler struct {
	service ports.ScheduleService
	log     *zap.Logger
}

func NewScheduleHandler(service ports.ScheduleService, log *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{service: service, log: log}
}

func (h *ScheduleHandler) List(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	appointments, err := h.service.ListAppointments(c.Context(), userID)
	if err != nil {
		h.log.Error("Failed to list appointments", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list appointments"})
	}
	return c.JSON(fiber.Map{"appointments": appointments})
}

type AddAppointmentRequest struct {
	Title string `json:"title"`
	Date  string `json:"date"` // RFC 3339
	Type  string `json:"type"`
}

func (h *ScheduleHandler) Add(c *fiber.Ctx) error {
	var req AddAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title is required"})
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Date must be RFC 3339"})
	}

	userID, _ := c.Locals("user_id").(string)

	apt := domain.Appointment{
		UserID: userID,
		Title:  req.Title,
		Date:   date,
		Type:   domain.AppointmentType(req.Type),
	}
	if err := h.service.AddAppointment(c.Context(), &apt); err != nil {
		h.log.Error("Failed to add appointment", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add appointment"})
	}
	return c.Status(fiber.StatusCreated).JSON(apt)
}

type UpdateAppointmentRequest struct {
	Status string `json:"status"`
}

func (h *ScheduleHandler) UpdateStatus(c *fiber.Ctx) error {
	var req UpdateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	status := domain.AppointmentStatus(req.Status)
	switch status {
	case domain.AppointmentConfirmed, domain.AppointmentPending, domain.AppointmentCancelled:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown appointment status"})
	}

	if err := h.service.UpdateAppointmentStatus(c.Context(), c.Params("id"), status); err != nil {
		h.log.Error("Failed to update appointment", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update appointment"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
