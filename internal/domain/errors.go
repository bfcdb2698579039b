package domain

import "errors"

// Voice subsystem error taxonomy. None of these are fatal: the session
// coordinator always returns to idle and accepts new activations.
var (
	// ErrCaptureUnavailable means no capture device or permission exists.
	ErrCaptureUnavailable = errors.New("speech capture unavailable")

	// ErrCaptureTimeout means a capture session ended without any speech.
	ErrCaptureTimeout = errors.New("no speech detected")

	// ErrClassifierUnreachable is the remote classifier failing; it is
	// absorbed by local fallback and never reaches the user.
	ErrClassifierUnreachable = errors.New("remote classifier unreachable")

	// ErrSessionBusy is returned when an activation arrives while a
	// session is already running. Callers drop the activation.
	ErrSessionBusy = errors.New("voice session already active")

	// ErrNotListening is returned for listener operations that need an
	// active capture session.
	ErrNotListening = errors.New("no capture session active")
)
