package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ShiroiHyun/StudAIApp/internal/adapter/queue"
	"github.com/ShiroiHyun/StudAIApp/internal/ports"
	"github.com/ShiroiHyun/StudAIApp/internal/service/preferences"
	"github.com/ShiroiHyun/StudAIApp/internal/service/voice"
)

// VoiceHandler serves the one-shot command endpoint: the client did
// its own capture and sends a finished transcript. Each request runs
// through a private pipeline, so concurrent commands from different
// devices never contend for a session slot.
type VoiceHandler struct {
	classifier voice.Classifier
	users      ports.UserRepository
	cache      ports.Cache
	courses    ports.CourseService
	mq         queue.MessageQueue
	log        *zap.Logger
}

func NewVoiceHandler(
	classifier voice.Classifier,
	users ports.UserRepository,
	cache ports.Cache,
	courses ports.CourseService,
	mq queue.MessageQueue,
	log *zap.Logger,
) *VoiceHandler {
	return &VoiceHandler{
		classifier: classifier,
		users:      users,
		cache:      cache,
		courses:    courses,
		mq:         mq,
		log:        log,
	}
}

type CommandRequest struct {
	Transcript string `json:"transcript"`
}

type commandAction struct {
	Type  string `json:"type"`
	Route string `json:"route,omitempty"`
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
}

// actionCollector records what the dispatcher would have pushed at a
// live UI, so the HTTP response can carry it instead.
type actionCollector struct {
	actions []commandAction
}

func (a *actionCollector) Navigate(route string) {
	a.actions = append(a.actions, commandAction{Type: "navigate", Route: route})
}

func (a *actionCollector) FillField(field, value string) {
	a.actions = append(a.actions, commandAction{Type: "fill_field", Field: field, Value: value})
}

func (h *VoiceHandler) ProcessCommand(c *fiber.Ctx) error {
	var req CommandRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	userID, _ := c.Locals("user_id").(string)

	prefs := preferences.Load(c.Context(), userID, h.users, h.cache, h.log)
	collector := &actionCollector{}

	dispatcher := voice.NewDispatcher(prefs, h.courses, h.log)
	dispatcher.AttachNavigationSink(collector)
	dispatcher.AttachFormSink(collector)

	listener := voice.NewListener(nil, h.log)
	speaker := voice.NewSpeaker(nil, prefs, "", h.log)
	coordinator := voice.NewCoordinator(listener, h.classifier, dispatcher, speaker, h.mq, userID, h.log)

	intent, result, err := coordinator.Handle(c.Context(), req.Transcript)
	if err != nil {
		h.log.Error("Failed to process voice command", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process voice command"})
	}

	if result.Err != nil {
		h.log.Warn("Voice command dispatch failed",
			zap.String("action", string(intent.Action)),
			zap.Error(result.Err),
		)
	}

	return c.JSON(fiber.Map{
		"intent": fiber.Map{
			"action":     intent.Action,
			"target":     intent.Target,
			"value":      intent.Value,
			"source":     intent.Source,
			"confidence": intent.Confidence,
		},
		"feedback": result.Feedback,
		"actions":  collector.actions,
	})
}
