package voice

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ShiroiHyun/StudAIApp/internal/domain"
)

type mockCapture struct {
	CaptureFunc func(ctx context.Context) (string, error)
}

func (m *mockCapture) Capture(ctx context.Context) (string, error) {
	return m.CaptureFunc(ctx)
}

func receiveResult(t *testing.T, results <-chan CaptureResult) CaptureResult {
	t.Helper()
	select {
	case res := <-results:
		return res
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for capture result")
		return CaptureResult{}
	}
}

func TestListener_DeliversExactlyOneTranscript(t *testing.T) {
	source := &mockCapture{
		CaptureFunc: func(ctx context.Context) (string, error) {
			return "abrir mapa", nil
		},
	}
	listener := NewListener(source, zap.NewNop())

	results := listener.Start(context.Background())
	res := receiveResult(t, results)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.Transcript != "abrir mapa" {
		t.Errorf("transcript = %q", res.Transcript)
	}

	select {
	case extra := <-results:
		t.Errorf("received a second result: %+v", extra)
	case <-time.After(50 * time.Millisecond):
	}

	if listener.Listening() {
		t.Error("listening flag stuck after capture finished")
	}
}

func TestListener_NilSourceFailsFast(t *testing.T) {
	listener := NewListener(nil, zap.NewNop())

	res := receiveResult(t, listener.Start(context.Background()))
	if !errors.Is(res.Err, domain.ErrCaptureUnavailable) {
		t.Errorf("error = %v, want ErrCaptureUnavailable", res.Err)
	}
	if listener.Listening() {
		t.Error("listening flag set with no capture source")
	}
}

func TestListener_StopCancelsCapture(t *testing.T) {
	started := make(chan struct{})
	source := &mockCapture{
		CaptureFunc: func(ctx context.Context) (string, error) {
			close(started)
			<-ctx.Done()
			return "", ctx.Err()
		},
	}
	listener := NewListener(source, zap.NewNop())

	results := listener.Start(context.Background())
	<-started
	if !listener.Listening() {
		t.Fatal("listening flag not set during capture")
	}

	listener.Stop()
	listener.Stop()

	res := receiveResult(t, results)
	if !errors.Is(res.Err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", res.Err)
	}
	if listener.Listening() {
		t.Error("listening flag stuck after stop")
	}
}

func TestListener_RestartCancelsPreviousSession(t *testing.T) {
	blocked := make(chan struct{})
	first := true
	source := &mockCapture{
		CaptureFunc: func(ctx context.Context) (string, error) {
			if first {
				first = false
				close(blocked)
				<-ctx.Done()
				return "", ctx.Err()
			}
			return "segunda captura", nil
		},
	}
	listener := NewListener(source, zap.NewNop())

	resultsA := listener.Start(context.Background())
	<-blocked
	resultsB := listener.Start(context.Background())

	resA := receiveResult(t, resultsA)
	if !errors.Is(resA.Err, context.Canceled) {
		t.Errorf("first session error = %v, want context.Canceled", resA.Err)
	}

	resB := receiveResult(t, resultsB)
	if resB.Err != nil || resB.Transcript != "segunda captura" {
		t.Errorf("second session result = %+v", resB)
	}
}
