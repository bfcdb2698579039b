package domain

// FontSize is an enumerated accessibility font scale.
type FontSize string

const (
	FontSizeNormal     FontSize = "normal"
	FontSizeLarge      FontSize = "large"
	FontSizeExtraLarge FontSize = "extraLarge"
)

// Next advances to the following size, wrapping back to normal.
func (f FontSize) Next() FontSize {
	switch f {
	case FontSizeNormal:
		return FontSizeLarge
	case FontSizeLarge:
		return FontSizeExtraLarge
	default:
		return FontSizeNormal
	}
}

// TTS speed bounds. Speeds outside this range are clamped, never rejected.
const (
	MinTTSSpeed = 0.5
	MaxTTSSpeed = 2.0
)

// ClampTTSSpeed forces a speed into the supported range.
func ClampTTSSpeed(speed float64) float64 {
	if speed < MinTTSSpeed {
		return MinTTSSpeed
	}
	if speed > MaxTTSSpeed {
		return MaxTTSSpeed
	}
	return speed
}

// AccessibilityPreferences holds the per-user accessibility settings the
// dispatcher mutates and the speaker reads on every utterance.
type AccessibilityPreferences struct {
	HighContrast        bool     `json:"high_contrast"`
	FontSize            FontSize `json:"font_size"`
	TTSSpeed            float64  `json:"tts_speed"`
	ScreenReaderEnabled bool     `json:"screen_reader_enabled"`
}

// DefaultPreferences matches the profile created on registration.
func DefaultPreferences() AccessibilityPreferences {
	return AccessibilityPreferences{
		HighContrast:        false,
		FontSize:            FontSizeNormal,
		TTSSpeed:            1.0,
		ScreenReaderEnabled: true,
	}
}

// Consents records the privacy options a user has accepted.
type Consents struct {
	DataCollection bool `json:"data_collection"`
	VoiceRecording bool `json:"voice_recording"`
}
