package voice

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/ShiroiHyun/StudAIApp/internal/domain"
)

// CaptureResult is the single outcome of one listening session: either
// a transcript or an error, never both.
type CaptureResult struct {
	Transcript string
	Err        error
}

// Listener drives one capture session at a time over a CaptureSource.
// Start hands back a buffered channel that receives exactly one
// CaptureResult, so the session always resolves even if nobody is
// reading at the instant the source finishes.
type Listener struct {
	source CaptureSource
	log    *zap.Logger

	mu         sync.Mutex
	cancel     context.CancelFunc
	listening  bool
	generation uint64
}

func NewListener(source CaptureSource, log *zap.Logger) *Listener {
	return &Listener{source: source, log: log}
}

// Start begins capturing. If a session is already running it is
// cancelled first; its channel still receives its (cancelled) result.
func (l *Listener) Start(ctx context.Context) <-chan CaptureResult {
	out := make(chan CaptureResult, 1)

	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}

	if l.source == nil {
		l.listening = false
		l.mu.Unlock()
		out <- CaptureResult{Err: domain.ErrCaptureUnavailable}
		return out
	}

	captureCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.listening = true
	l.generation++
	gen := l.generation
	l.mu.Unlock()

	go func() {
		transcript, err := l.source.Capture(captureCtx)
		cancel()

		// A restarted listener owns the flags now; only the session
		// that set them may clear them.
		l.mu.Lock()
		if l.generation == gen {
			l.listening = false
			l.cancel = nil
		}
		l.mu.Unlock()

		if err != nil {
			l.log.Debug("Capture ended with error", zap.Error(err))
			out <- CaptureResult{Err: err}
			return
		}
		out <- CaptureResult{Transcript: transcript}
	}()

	return out
}

// Stop cancels the running capture session, if any. Idempotent. The
// session's channel still receives a result carrying the cancellation.
func (l *Listener) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

// Listening reports whether a capture session is in progress.
func (l *Listener) Listening() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.listening
}
