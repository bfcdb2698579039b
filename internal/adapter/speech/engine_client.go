package speech

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"github.com/ShiroiHyun/StudAIApp/internal/service/voice"
	"github.com/ShiroiHyun/StudAIApp/pkg/config"
)

// EngineClient streams utterances to a server-side synthesis engine
// over a websocket. Speak blocks until the engine reports playback
// finished, so it satisfies the voice.SynthesisEngine contract; the
// speaker above it provides all preemption.
type EngineClient struct {
	url         string
	voice       string
	dialTimeout time.Duration
	log         *zap.Logger

	mu   sync.Mutex
	conn *websocket.Conn
}

func NewEngineClient(cfg config.SpeechConfig, log *zap.Logger) *EngineClient {
	dialTimeout := cfg.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = 10 * time.Second
	}
	return &EngineClient{
		url:         cfg.EngineURL,
		voice:       cfg.EngineVoice,
		dialTimeout: dialTimeout,
		log:         log,
	}
}

type synthesizeRequest struct {
	Synthesize synthesizePayload `json:"synthesize"`
}

type synthesizePayload struct {
	ID     string  `json:"id"`
	Text   string  `json:"text"`
	Rate   float64 `json:"rate"`
	Locale string  `json:"locale"`
	Voice  string  `json:"voice,omitempty"`
}

type cancelRequest struct {
	Cancel struct {
		ID string `json:"id"`
	} `json:"cancel"`
}

type engineEvent struct {
	Started *struct {
		ID    string `json:"id"`
		Voice string `json:"voice"`
	} `json:"started,omitempty"`
	Finished *struct {
		ID string `json:"id"`
	} `json:"finished,omitempty"`
	Error *struct {
		ID      string `json:"id"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *EngineClient) Speak(ctx context.Context, req voice.SpeechRequest) error {
	conn, err := c.ensureConn(ctx)
	if err != nil {
		return fmt.Errorf("speech engine unavailable: %w", err)
	}

	msg := synthesizeRequest{Synthesize: synthesizePayload{
		ID:     req.UtteranceID,
		Text:   req.Text,
		Rate:   req.Rate,
		Locale: req.Locale,
		Voice:  c.voice,
	}}
	if err := c.write(ctx, conn, msg); err != nil {
		c.drop(conn)
		return fmt.Errorf("failed to send utterance: %w", err)
	}

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			// Cancellation is the speaker preempting this utterance;
			// tell the engine to stop vocalizing it.
			if ctx.Err() != nil {
				c.cancel(req.UtteranceID, conn)
				return ctx.Err()
			}
			c.drop(conn)
			return fmt.Errorf("speech engine read failed: %w", err)
		}

		var event engineEvent
		if err := json.Unmarshal(data, &event); err != nil {
			c.log.Warn("Unparseable speech engine event", zap.Error(err))
			continue
		}

		switch {
		case event.Started != nil && event.Started.ID == req.UtteranceID:
			if c.voice != "" && event.Started.Voice != c.voice {
				c.log.Debug("Engine fell back to another voice",
					zap.String("requested", c.voice),
					zap.String("actual", event.Started.Voice),
				)
			}
		case event.Finished != nil && event.Finished.ID == req.UtteranceID:
			return nil
		case event.Error != nil && event.Error.ID == req.UtteranceID:
			return fmt.Errorf("speech engine error: %s", event.Error.Message)
		}
	}
}

func (c *EngineClient) ensureConn(ctx context.Context) (*websocket.Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return c.conn, nil
	}

	dialCtx, cancel := context.WithTimeout(ctx, c.dialTimeout)
	defer cancel()

	conn, _, err := websocket.Dial(dialCtx, c.url, nil)
	if err != nil {
		return nil, err
	}

	c.conn = conn
	c.log.Info("Connected to speech engine", zap.String("url", c.url))
	return conn, nil
}

// cancel is best effort: the connection may already be gone.
func (c *EngineClient) cancel(utteranceID string, conn *websocket.Conn) {
	var msg cancelRequest
	msg.Cancel.ID = utteranceID

	ctx, done := context.WithTimeout(context.Background(), 2*time.Second)
	defer done()
	if err := c.write(ctx, conn, msg); err != nil {
		c.drop(conn)
	}
}

func (c *EngineClient) write(ctx context.Context, conn *websocket.Conn, msg interface{}) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return conn.Write(ctx, websocket.MessageText, data)
}

func (c *EngineClient) drop(conn *websocket.Conn) {
	conn.Close(websocket.StatusInternalError, "resetting connection")

	c.mu.Lock()
	if c.conn == conn {
		c.conn = nil
	}
	c.mu.Unlock()
}

func (c *EngineClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close(websocket.StatusNormalClosure, "shutting down")
	c.conn = nil
	return err
}
