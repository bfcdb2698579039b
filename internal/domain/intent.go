package domain

// ActionKind identifies what a classified voice command asks the system to do.
type ActionKind string

const (
	ActionNavigate      ActionKind = "navigate"
	ActionToggleSetting ActionKind = "toggle_setting"
	ActionFillForm      ActionKind = "fill_form"
	ActionReadScreen    ActionKind = "read_screen"
	ActionCreateEntity  ActionKind = "create_entity"
	ActionUnknown       ActionKind = "unknown"
)

// IntentSource records which classification strategy produced an intent.
type IntentSource string

const (
	IntentSourceLocal  IntentSource = "local"
	IntentSourceRemote IntentSource = "remote"
)

// Intent is the structured outcome of classifying one utterance.
// Target and Value depend on Action: a route for navigation, a setting
// name for toggles, a form field plus its value for form filling, an
// entity payload for creation. Unknown intents carry neither.
type Intent struct {
	Action     ActionKind   `json:"action"`
	Target     string       `json:"target,omitempty"`
	Value      string       `json:"value,omitempty"`
	Feedback   string       `json:"feedback,omitempty"`
	Confidence float64      `json:"confidence,omitempty"`
	Source     IntentSource `json:"source,omitempty"`
}

// Setting names accepted by ActionToggleSetting intents.
const (
	SettingHighContrast = "highContrast"
	SettingFontSize     = "fontSize"
	SettingTTSSpeed     = "ttsSpeed"
	SettingScreenReader = "screenReader"
)

// Form fields accepted by ActionFillForm intents.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
)

// Routes the voice layer can navigate to.
const (
	RouteHome     = "/"
	RouteCourses  = "/courses"
	RouteProfile  = "/profile"
	RouteSchedule = "/schedule"
	RouteMap      = "/map"
	RouteOCR      = "/ocr"
	RouteCaptions = "/stt"
	RouteLogin    = "/login"
)
