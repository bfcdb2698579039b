package voice

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ShiroiHyun/StudAIApp/internal/domain"
	"github.com/ShiroiHyun/StudAIApp/internal/service/preferences"
)

// mockEngine reports each utterance on started and blocks playback
// until release is closed or the context is cancelled.
type mockEngine struct {
	started chan SpeechRequest
	release chan struct{}
}

func newMockEngine() *mockEngine {
	return &mockEngine{
		started: make(chan SpeechRequest, 8),
		release: make(chan struct{}),
	}
}

func (e *mockEngine) Speak(ctx context.Context, req SpeechRequest) error {
	e.started <- req
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-e.release:
		return nil
	}
}

func newTestSpeaker(engine SynthesisEngine) (*Speaker, *preferences.Store) {
	prefs := preferences.NewStore("user-1", domain.DefaultPreferences(), nil, nil, zap.NewNop())
	return NewSpeaker(engine, prefs, "es-ES", zap.NewNop()), prefs
}

func waitClosed(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func TestSpeaker_NewSpeechPreemptsOld(t *testing.T) {
	engine := newMockEngine()
	speaker, _ := newTestSpeaker(engine)

	doneA := speaker.Speak("primer mensaje")
	reqA := <-engine.started
	if reqA.Text != "primer mensaje" {
		t.Fatalf("first utterance text = %q", reqA.Text)
	}
	if !speaker.Speaking() {
		t.Fatal("speaker not marked speaking during playback")
	}

	doneB := speaker.Speak("segundo mensaje")

	// The first utterance is cancelled, not finished.
	waitClosed(t, doneA, "preempted utterance")

	reqB := <-engine.started
	if reqB.Text != "segundo mensaje" {
		t.Fatalf("second utterance text = %q", reqB.Text)
	}

	close(engine.release)
	waitClosed(t, doneB, "second utterance")

	if speaker.Speaking() {
		t.Error("speaking flag stuck after playback finished")
	}
}

func TestSpeaker_DisabledScreenReaderIsNoOp(t *testing.T) {
	engine := newMockEngine()
	speaker, prefs := newTestSpeaker(engine)

	if _, err := prefs.ToggleScreenReader(context.Background()); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	done := speaker.Speak("no debería sonar")
	waitClosed(t, done, "no-op utterance")

	select {
	case req := <-engine.started:
		t.Errorf("engine invoked with %q while disabled", req.Text)
	default:
	}
	if speaker.Speaking() {
		t.Error("speaking flag set for a no-op")
	}
}

func TestSpeaker_EmptyTextCompletesImmediately(t *testing.T) {
	engine := newMockEngine()
	speaker, _ := newTestSpeaker(engine)

	done := speaker.Speak("")
	waitClosed(t, done, "empty utterance")

	select {
	case <-engine.started:
		t.Error("engine invoked for empty text")
	default:
	}
}

func TestSpeaker_RateFollowsPreferences(t *testing.T) {
	engine := newMockEngine()
	close(engine.release)
	speaker, prefs := newTestSpeaker(engine)

	waitClosed(t, speaker.Speak("uno"), "first utterance")
	req := <-engine.started
	if req.Rate != 1.0 {
		t.Errorf("default rate = %f, want 1.0", req.Rate)
	}
	if req.Locale != "es-ES" {
		t.Errorf("locale = %q, want es-ES", req.Locale)
	}

	// A speed change applies to the next utterance, not a running one.
	if _, err := prefs.StepTTSSpeed(context.Background()); err != nil {
		t.Fatalf("step failed: %v", err)
	}
	waitClosed(t, speaker.Speak("dos"), "second utterance")
	req = <-engine.started
	if req.Rate != 1.25 {
		t.Errorf("stepped rate = %f, want 1.25", req.Rate)
	}

	waitClosed(t, speaker.SpeakWithRate("tres", 9.0), "clamped utterance")
	req = <-engine.started
	if req.Rate != domain.MaxTTSSpeed {
		t.Errorf("override rate = %f, want clamped to %f", req.Rate, float64(domain.MaxTTSSpeed))
	}
}

func TestSpeaker_StopIsIdempotent(t *testing.T) {
	engine := newMockEngine()
	speaker, _ := newTestSpeaker(engine)

	speaker.Stop()
	speaker.Stop()

	done := speaker.Speak("hola")
	<-engine.started

	speaker.Stop()
	speaker.Stop()
	waitClosed(t, done, "stopped utterance")

	if speaker.Speaking() {
		t.Error("speaking flag stuck after stop")
	}
}
