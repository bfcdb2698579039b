package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ShiroiHyun/StudAIApp/internal/domain"
	"github.com/ShiroiHyun/StudAIApp/internal/ports"
	"github.com/ShiroiHyun/StudAIApp/internal/service/preferences"
)

type PreferencesHandler struct {
	users ports.UserRepository
	cache ports.Cache
	log   *zap.Logger
}

func NewPreferencesHandler(users ports.UserRepository, cache ports.Cache, log *zap.Logger) *PreferencesHandler {
	return &PreferencesHandler{users: users, cache: cache, log: log}
}

func (h *PreferencesHandler) Get(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	store := preferences.Load(c.Context(), userID, h.users, h.cache, h.log)
	return c.JSON(store.Get())
}

type UpdatePreferencesRequest struct {
	HighContrast        bool    `json:"high_contrast"`
	FontSize            string  `json:"font_size"`
	TTSSpeed            float64 `json:"tts_speed"`
	ScreenReaderEnabled bool    `json:"screen_reader_enabled"`
}

func (h *PreferencesHandler) Update(c *fiber.Ctx) error {
	var req UpdatePreferencesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	fontSize := domain.FontSize(req.FontSize)
	switch fontSize {
	case domain.FontSizeNormal, domain.FontSizeLarge, domain.FontSizeExtraLarge:
	case "":
		fontSize = domain.FontSizeNormal
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown font size"})
	}

	userID, _ := c.Locals("user_id").(string)

	prefs := domain.AccessibilityPreferences{
		HighContrast:        req.HighContrast,
		FontSize:            fontSize,
		TTSSpeed:            domain.ClampTTSSpeed(req.TTSSpeed),
		ScreenReaderEnabled: req.ScreenReaderEnabled,
	}

	store := preferences.Load(c.Context(), userID, h.users, h.cache, h.log)
	if err := store.Update(c.Context(), prefs); err != nil {
		h.log.Error("Failed to update preferences", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update preferences"})
	}
	return c.JSON(store.Get())
}

// ToggleContrast flips high contrast, same path the voice command takes.
func (h *PreferencesHandler) ToggleContrast(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	store := preferences.Load(c.Context(), userID, h.users, h.cache, h.log)
	enabled, err := store.ToggleHighContrast(c.Context())
	if err != nil {
		h.log.Error("Failed to toggle contrast", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to toggle contrast"})
	}
	return c.JSON(fiber.Map{"high_contrast": enabled})
}

type UpdateConsentsRequest struct {
	DataCollection bool `json:"data_collection"`
	VoiceRecording bool `json:"voice_recording"`
}

func (h *PreferencesHandler) UpdateConsents(c *fiber.Ctx) error {
	var req UpdateConsentsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	userID, _ := c.Locals("user_id").(string)

	consents := domain.Consents{
		DataCollection: req.DataCollection,
		VoiceRecording: req.VoiceRecording,
	}
	if err := h.users.UpdateConsents(c.Context(), userID, consents); err != nil {
		h.log.Error("Failed to update consents", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update consents"})
	}
	return c.JSON(consents)
}
