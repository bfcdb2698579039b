package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ShiroiHyun/StudAIApp/internal/ports"
)

type CourseHandler struct {
	service ports.CourseService
	log     *zap.Logger
}

func NewCourseHandler(service ports.CourseService, log *zap.Logger) *CourseHandler {
	return &CourseHandler{service: service, log: log}
}

func (h *CourseHandler) List(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	courses, err := h.service.ListCourses(c.Context(), userID)
	if err != nil {
		h.log.Error("Failed to list courses", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list courses"})
	}
	return c.JSON(fiber.Map{"courses": courses})
}

type AddCourseRequest struct {
	Name string `json:"name"`
}

func (h *CourseHandler) Add(c *fiber.Ctx) error {
	var req AddCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Course name is required"})
	}

	userID, _ := c.Locals("user_id").(string)

	course, err := h.service.AddCourse(c.Context(), userID, req.Name)
	if err != nil {
		h.log.Error("Failed to add course", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add course"})
	}
	return c.Status(fiber.StatusCreated).JSON(course)
}
