package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/ShiroiHyun/StudAIApp/internal/adapter/queue"
	"github.com/ShiroiHyun/StudAIApp/internal/domain"
	"github.com/ShiroiHyun/StudAIApp/internal/ports"
	"github.com/ShiroiHyun/StudAIApp/internal/service/preferences"
	"github.com/ShiroiHyun/StudAIApp/internal/service/voice"
)

// Client frames.
const (
	frameStart      = "start"
	frameTranscript = "transcript"
	frameError      = "error"
	frameStop       = "stop"
	frameScreen     = "screen"
)

// Server frames.
const (
	frameSpeak        = "speak"
	frameCancelSpeech = "cancel_speech"
	frameNavigate     = "navigate"
	frameFillField    = "fill_field"
	frameState        = "state"
)

type clientFrame struct {
	Type    string `json:"type"`
	Text    string `json:"text,omitempty"`
	Message string `json:"message,omitempty"`
}

type serverFrame struct {
	Type   string  `json:"type"`
	ID     string  `json:"id,omitempty"`
	Text   string  `json:"text,omitempty"`
	Rate   float64 `json:"rate,omitempty"`
	Locale string  `json:"locale,omitempty"`
	Route  string  `json:"route,omitempty"`
	Field  string  `json:"field,omitempty"`
	Value  string  `json:"value,omitempty"`
	Status string  `json:"status,omitempty"`
}

// VoiceStreamHandler runs one voice session pipeline per websocket
// connection. The browser does the actual audio work (speech-to-text
// and text-to-speech); the connection carries transcripts up and
// spoken feedback plus UI actions down.
type VoiceStreamHandler struct {
	classifier voice.Classifier
	users      ports.UserRepository
	cache      ports.Cache
	courses    ports.CourseService
	mq         queue.MessageQueue
	engine     voice.SynthesisEngine // optional server-side synthesis; nil means client-side TTS
	locale     string
	logger     *zap.Logger
}

func NewVoiceStreamHandler(
	classifier voice.Classifier,
	users ports.UserRepository,
	cache ports.Cache,
	courses ports.CourseService,
	mq queue.MessageQueue,
	engine voice.SynthesisEngine,
	locale string,
	logger *zap.Logger,
) *VoiceStreamHandler {
	return &VoiceStreamHandler{
		classifier: classifier,
		users:      users,
		cache:      cache,
		courses:    courses,
		mq:         mq,
		engine:     engine,
		locale:     locale,
		logger:     logger,
	}
}

// HandleVoiceStream owns the connection for its lifetime.
func (h *VoiceStreamHandler) HandleVoiceStream(c *websocket.Conn) {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		c.Close()
		return
	}

	bridge := newConnBridge(c, h.logger)
	defer bridge.close()

	prefs := preferences.Load(context.Background(), userID, h.users, h.cache, h.logger)

	dispatcher := voice.NewDispatcher(prefs, h.courses, h.logger)
	dispatcher.AttachNavigationSink(bridge)
	dispatcher.AttachFormSink(bridge)
	dispatcher.AttachScreenReader(bridge)

	var engine voice.SynthesisEngine = bridge
	if h.engine != nil {
		engine = h.engine
	}

	listener := voice.NewListener(bridge, h.logger)
	speaker := voice.NewSpeaker(engine, prefs, h.locale, h.logger)
	coordinator := voice.NewCoordinator(listener, h.classifier, dispatcher, speaker, h.mq, userID, h.logger)
	defer coordinator.Deactivate()

	log := h.logger.With(zap.String("user_id", userID))
	log.Info("Voice stream connected")

	for {
		_, data, err := c.ReadMessage()
		if err != nil {
			log.Debug("Voice stream closed", zap.Error(err))
			return
		}

		var frame clientFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			log.Warn("Unparseable voice frame", zap.Error(err))
			continue
		}

		switch frame.Type {
		case frameStart:
			if err := coordinator.Activate(context.Background()); err != nil {
				if !errors.Is(err, domain.ErrSessionBusy) {
					log.Error("Failed to activate voice session", zap.Error(err))
				}
			}
		case frameTranscript:
			bridge.deliver(frame.Text, nil)
		case frameError:
			log.Warn("Client capture failed", zap.String("message", frame.Message))
			bridge.deliver("", domain.ErrCaptureUnavailable)
		case frameStop:
			coordinator.Deactivate()
		case frameScreen:
			bridge.setScreenText(frame.Text)
		default:
			log.Warn("Unknown voice frame", zap.String("type", frame.Type))
		}

		bridge.sendState(coordinator.Status())
	}
}

// connBridge adapts one websocket connection to the capture, synthesis
// and UI interfaces of the voice pipeline.
type connBridge struct {
	conn *websocket.Conn
	log  *zap.Logger

	writeMu sync.Mutex

	mu         sync.Mutex
	pending    chan captureDelivery
	screenText string
	lastSpoken string
	closed     bool
}

type captureDelivery struct {
	transcript string
	err        error
}

func newConnBridge(conn *websocket.Conn, log *zap.Logger) *connBridge {
	return &connBridge{conn: conn, log: log}
}

// Capture waits for the client to push a transcript or an error.
func (b *connBridge) Capture(ctx context.Context) (string, error) {
	b.mu.Lock()
	pending := make(chan captureDelivery, 1)
	b.pending = pending
	b.mu.Unlock()

	select {
	case <-ctx.Done():
		b.mu.Lock()
		if b.pending == pending {
			b.pending = nil
		}
		b.mu.Unlock()
		return "", ctx.Err()
	case d := <-pending:
		return d.transcript, d.err
	}
}

// deliver resolves the waiting capture, if any. A transcript arriving
// outside a session is dropped: the client spoke without activating.
func (b *connBridge) deliver(transcript string, err error) {
	b.mu.Lock()
	pending := b.pending
	b.pending = nil
	b.mu.Unlock()

	if pending == nil {
		return
	}
	pending <- captureDelivery{transcript: transcript, err: err}
}

// Speak pushes the utterance to the client for local vocalization. A
// preempted utterance gets an explicit cancel so the client stops
// mid-sentence instead of queueing.
func (b *connBridge) Speak(ctx context.Context, req voice.SpeechRequest) error {
	b.mu.Lock()
	previous := b.lastSpoken
	b.lastSpoken = req.UtteranceID
	b.mu.Unlock()

	if previous != "" {
		b.send(serverFrame{Type: frameCancelSpeech, ID: previous})
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return b.send(serverFrame{
		Type:   frameSpeak,
		ID:     req.UtteranceID,
		Text:   req.Text,
		Rate:   req.Rate,
		Locale: req.Locale,
	})
}

func (b *connBridge) Navigate(route string) {
	b.send(serverFrame{Type: frameNavigate, Route: route})
}

func (b *connBridge) FillField(field, value string) {
	b.send(serverFrame{Type: frameFillField, Field: field, Value: value})
}

func (b *connBridge) ScreenText() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.screenText
}

func (b *connBridge) setScreenText(text string) {
	b.mu.Lock()
	b.screenText = text
	b.mu.Unlock()
}

func (b *connBridge) sendState(status domain.SessionStatus) {
	b.send(serverFrame{Type: frameState, Status: string(status)})
}

func (b *connBridge) send(frame serverFrame) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}

	b.writeMu.Lock()
	defer b.writeMu.Unlock()

	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return websocket.ErrCloseSent
	}

	if err := b.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		b.log.Debug("Voice stream write failed", zap.Error(err))
		return err
	}
	return nil
}

// close releases the waiting capture so the listener goroutine does
// not leak when the connection drops mid-session.
func (b *connBridge) close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	b.deliver("", domain.ErrCaptureUnavailable)
}

// SetupVoiceRoutes mounts the voice websocket behind an upgrade guard.
func SetupVoiceRoutes(app *fiber.App, handler *VoiceStreamHandler) {
	app.Use("/ws/voice", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/voice", websocket.New(handler.HandleVoiceStream))
}
