package voice

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ShiroiHyun/StudAIApp/internal/domain"
	"github.com/ShiroiHyun/StudAIApp/internal/observability/telemetry"
	"github.com/ShiroiHyun/StudAIApp/internal/service/preferences"
)

// Speaker owns the single active utterance slot. New speech always wins:
// Speak cancels whatever is playing before starting (barge-in), so at
// most one utterance is ever in flight.
//
// The speaking flag is reset in exactly one place, by the goroutine that
// set it, whether playback ends normally, is cancelled or errors. A
// generation counter keeps a preempted goroutine from clearing state
// that now belongs to its successor.
type Speaker struct {
	engine SynthesisEngine
	prefs  *preferences.Store
	locale string
	log    *zap.Logger

	mu         sync.Mutex
	speaking   bool
	cancel     context.CancelFunc
	generation uint64
}

func NewSpeaker(engine SynthesisEngine, prefs *preferences.Store, locale string, log *zap.Logger) *Speaker {
	return &Speaker{
		engine: engine,
		prefs:  prefs,
		locale: locale,
		log:    log,
	}
}

// Speak vocalizes text at the user's configured rate. The returned
// channel closes when playback finishes, is preempted, or errors; it
// closes immediately when speech output is disabled or no engine exists.
func (s *Speaker) Speak(text string) <-chan struct{} {
	return s.speak(text, 0)
}

// SpeakWithRate overrides the stored TTS speed for this one utterance.
func (s *Speaker) SpeakWithRate(text string, rate float64) <-chan struct{} {
	return s.speak(text, rate)
}

func (s *Speaker) speak(text string, override float64) <-chan struct{} {
	done := make(chan struct{})

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
		telemetry.UtterancesPreemptedTotal.Inc()
	}

	// Preferences are read here, not cached at construction, so a toggle
	// takes effect on the very next utterance.
	prefs := s.prefs.Get()
	if s.engine == nil || text == "" || !prefs.ScreenReaderEnabled {
		s.mu.Unlock()
		close(done)
		return done
	}

	rate := prefs.TTSSpeed
	if override > 0 {
		rate = domain.ClampTTSSpeed(override)
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.generation++
	gen := s.generation
	s.speaking = true

	req := SpeechRequest{
		UtteranceID: uuid.NewString(),
		Text:        text,
		Rate:        rate,
		Locale:      s.locale,
	}
	s.mu.Unlock()

	telemetry.UtterancesSpokenTotal.Inc()

	go func() {
		defer close(done)
		err := s.engine.Speak(ctx, req)
		cancel()

		s.mu.Lock()
		if s.generation == gen {
			s.speaking = false
			s.cancel = nil
		}
		s.mu.Unlock()

		if err != nil && !errors.Is(err, context.Canceled) {
			s.log.Warn("Speech playback failed",
				zap.String("utterance_id", req.UtteranceID),
				zap.Error(err),
			)
		}
	}()

	return done
}

// Stop cancels the in-flight utterance, if any. Idempotent.
func (s *Speaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Speaking reports whether an utterance is currently playing.
func (s *Speaker) Speaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speaking
}
