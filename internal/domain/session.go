package domain

import "time"

// SessionStatus is the phase a voice session is currently in. Sessions
// only move forward: Idle -> Listening -> Classifying -> Dispatching ->
// Speaking -> Idle, with error paths cutting straight to Speaking.
type SessionStatus string

const (
	SessionIdle        SessionStatus = "idle"
	SessionListening   SessionStatus = "listening"
	SessionClassifying SessionStatus = "classifying"
	SessionDispatching SessionStatus = "dispatching"
	SessionSpeaking    SessionStatus = "speaking"
	SessionError       SessionStatus = "error"
)

// VoiceSession is one listen -> classify -> dispatch -> speak cycle.
type VoiceSession struct {
	ID         string        `json:"id"`
	UserID     string        `json:"user_id"`
	Status     SessionStatus `json:"status"`
	Transcript string        `json:"transcript,omitempty"`
	Intent     ActionKind    `json:"intent,omitempty"`
	StartedAt  time.Time     `json:"started_at"`
	EndedAt    time.Time     `json:"ended_at,omitempty"`
}
