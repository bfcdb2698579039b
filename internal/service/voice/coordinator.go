package voice

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ShiroiHyun/StudAIApp/internal/adapter/queue"
	"github.com/ShiroiHyun/StudAIApp/internal/domain"
	"github.com/ShiroiHyun/StudAIApp/internal/observability/telemetry"
)

const (
	feedbackMicUnavailable = "El micrófono no está disponible."
	feedbackCaptureFailed  = "No te entendí. Intenta de nuevo."

	subjectSessionStarted   = "voice.session.started"
	subjectSessionCompleted = "voice.session.completed"
)

// Coordinator is the session state machine. It sequences one capture
// into classify, dispatch and spoken feedback, and guarantees that at
// most one session is ever in flight: activations arriving while the
// machine is not idle are rejected with ErrSessionBusy and dropped,
// never queued.
type Coordinator struct {
	listener   *Listener
	classifier Classifier
	dispatcher *Dispatcher
	speaker    *Speaker
	mq         queue.MessageQueue
	userID     string
	log        *zap.Logger

	mu      sync.Mutex
	session *domain.VoiceSession
}

func NewCoordinator(
	listener *Listener,
	classifier Classifier,
	dispatcher *Dispatcher,
	speaker *Speaker,
	mq queue.MessageQueue,
	userID string,
	log *zap.Logger,
) *Coordinator {
	return &Coordinator{
		listener:   listener,
		classifier: classifier,
		dispatcher: dispatcher,
		speaker:    speaker,
		mq:         mq,
		userID:     userID,
		log:        log,
	}
}

// Activate starts a new session. Returns ErrSessionBusy when one is
// already running; callers treat that as a no-op.
func (c *Coordinator) Activate(ctx context.Context) error {
	c.mu.Lock()
	if c.session != nil {
		c.mu.Unlock()
		telemetry.VoiceSessionsRejected.Inc()
		return domain.ErrSessionBusy
	}

	session := &domain.VoiceSession{
		ID:        uuid.NewString(),
		UserID:    c.userID,
		Status:    domain.SessionListening,
		StartedAt: time.Now().UTC(),
	}
	c.session = session
	c.mu.Unlock()

	telemetry.VoiceSessionsActive.Inc()
	c.publish(subjectSessionStarted, session)
	c.log.Info("Voice session started",
		zap.String("session_id", session.ID),
		zap.String("user_id", session.UserID),
	)

	results := c.listener.Start(ctx)
	go c.run(ctx, session, results)
	return nil
}

// Deactivate stops the session while it is still listening. The
// capture is cancelled and the machine returns to idle without
// classifying. Outside Listening it does nothing: a command that has
// started classifying runs to completion. Idempotent.
func (c *Coordinator) Deactivate() {
	c.mu.Lock()
	listening := c.session != nil && c.session.Status == domain.SessionListening
	c.mu.Unlock()
	if listening {
		c.listener.Stop()
	}
}

// Status reports the current session phase, SessionIdle when none.
func (c *Coordinator) Status() domain.SessionStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return domain.SessionIdle
	}
	return c.session.Status
}

// Handle pushes an already-transcribed utterance through the same
// classify, dispatch and speak cycle a live capture would take. Used
// by the HTTP command endpoint, where capture happened client side.
func (c *Coordinator) Handle(ctx context.Context, transcript string) (domain.Intent, DispatchResult, error) {
	c.mu.Lock()
	if c.session != nil {
		c.mu.Unlock()
		telemetry.VoiceSessionsRejected.Inc()
		return domain.Intent{}, DispatchResult{}, domain.ErrSessionBusy
	}
	session := &domain.VoiceSession{
		ID:        uuid.NewString(),
		UserID:    c.userID,
		Status:    domain.SessionClassifying,
		StartedAt: time.Now().UTC(),
	}
	c.session = session
	c.mu.Unlock()

	telemetry.VoiceSessionsActive.Inc()
	c.publish(subjectSessionStarted, session)

	intent, result := c.process(ctx, session, transcript)
	return intent, result, nil
}

func (c *Coordinator) run(ctx context.Context, session *domain.VoiceSession, results <-chan CaptureResult) {
	res := <-results

	if res.Err != nil {
		if errors.Is(res.Err, context.Canceled) {
			// Explicit deactivation, nothing to say.
			c.finish(session)
			return
		}
		c.log.Warn("Capture failed",
			zap.String("session_id", session.ID),
			zap.Error(res.Err),
		)
		feedback := feedbackCaptureFailed
		if errors.Is(res.Err, domain.ErrCaptureUnavailable) {
			feedback = feedbackMicUnavailable
		}
		c.setStatus(session, domain.SessionSpeaking)
		<-c.speaker.Speak(feedback)
		c.finish(session)
		return
	}

	c.process(ctx, session, res.Transcript)
}

// process runs classify -> dispatch -> speak and always finishes the
// session, returning the machine to idle.
func (c *Coordinator) process(ctx context.Context, session *domain.VoiceSession, transcript string) (domain.Intent, DispatchResult) {
	c.setStatus(session, domain.SessionClassifying)
	session.Transcript = transcript

	intent := c.classifier.Classify(ctx, Normalize(transcript))
	session.Intent = intent.Action

	c.setStatus(session, domain.SessionDispatching)
	result := c.dispatcher.Dispatch(ctx, c.userID, intent)

	status := "ok"
	switch {
	case result.Err != nil:
		status = "error"
	case intent.Action == domain.ActionUnknown:
		status = "unknown"
	}
	telemetry.VoiceCommandsTotal.WithLabelValues(string(intent.Action), status).Inc()

	if result.Feedback != "" {
		c.setStatus(session, domain.SessionSpeaking)
		<-c.speaker.Speak(result.Feedback)
	}

	c.finish(session)
	return intent, result
}

func (c *Coordinator) setStatus(session *domain.VoiceSession, status domain.SessionStatus) {
	c.mu.Lock()
	session.Status = status
	c.mu.Unlock()
}

func (c *Coordinator) finish(session *domain.VoiceSession) {
	c.mu.Lock()
	session.Status = domain.SessionIdle
	session.EndedAt = time.Now().UTC()
	c.session = nil
	c.mu.Unlock()

	telemetry.VoiceSessionsActive.Dec()
	telemetry.VoiceSessionDuration.Observe(session.EndedAt.Sub(session.StartedAt).Seconds())
	c.publish(subjectSessionCompleted, session)
	c.log.Info("Voice session finished",
		zap.String("session_id", session.ID),
		zap.String("intent", string(session.Intent)),
		zap.Duration("duration", session.EndedAt.Sub(session.StartedAt)),
	)
}

func (c *Coordinator) publish(subject string, session *domain.VoiceSession) {
	if c.mq == nil {
		return
	}
	data, err := json.Marshal(session)
	if err != nil {
		return
	}
	if err := c.mq.Publish(subject, data); err != nil {
		c.log.Warn("Failed to publish session event",
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
}
