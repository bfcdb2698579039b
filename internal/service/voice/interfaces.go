package voice

import (
	"context"

	"github.com/ShiroiHyun/StudAIApp/internal/domain"
)

// Classifier maps a normalized utterance to an intent. Implementations
// never return an error: classification failures degrade to an Unknown
// intent with spoken feedback, they are not propagated.
type Classifier interface {
	Classify(ctx context.Context, utterance string) domain.Intent
}

// CaptureSource is the platform speech-to-text primitive behind the
// Listener. Capture blocks until a transcript is available or ctx is
// cancelled. A nil source means no capture capability exists.
type CaptureSource interface {
	Capture(ctx context.Context) (string, error)
}

// SpeechRequest is one utterance handed to a synthesis engine.
type SpeechRequest struct {
	UtteranceID string
	Text        string
	Rate        float64
	Locale      string
}

// SynthesisEngine is the platform text-to-speech primitive behind the
// Speaker. Speak blocks until playback finishes or ctx is cancelled.
// Engines select a voice matching req.Locale and fall back to their
// default voice when none is installed.
type SynthesisEngine interface {
	Speak(ctx context.Context, req SpeechRequest) error
}

// NavigationSink receives route changes from the dispatcher. Exposed to
// the UI layer; absence of a subscriber is not an error.
type NavigationSink interface {
	Navigate(route string)
}

// FormSink receives field values while a compatible form is mounted.
type FormSink interface {
	FillField(field, value string)
}

// ScreenReader supplies the currently visible content for read-aloud.
type ScreenReader interface {
	ScreenText() string
}
