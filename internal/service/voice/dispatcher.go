package voice

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/ShiroiHyun/StudAIApp/internal/domain"
	"github.com/ShiroiHyun/StudAIApp/internal/ports"
	"github.com/ShiroiHyun/StudAIApp/internal/service/preferences"
)

// User-safe failure feedback. Raw errors are logged, never vocalized.
const (
	feedbackSettingFailed = "No se pudo guardar el ajuste."
	feedbackCourseFailed  = "No se pudo agregar el curso. Intenta de nuevo."
	feedbackEmptyScreen   = "No hay contenido para leer."
)

// DispatchResult is what the coordinator hands to the speaker after an
// intent runs. Feedback is always safe to vocalize; Err carries the
// underlying failure for logging only.
type DispatchResult struct {
	Feedback string
	Err      error
}

// Dispatcher executes a resolved intent against the collaborators. It
// holds no persistent state beyond the preferences store reference and
// the route it last navigated to.
type Dispatcher struct {
	prefs   *preferences.Store
	courses ports.CourseService
	log     *zap.Logger

	mu           sync.Mutex
	nav          NavigationSink
	form         FormSink
	screen       ScreenReader
	currentRoute string
}

func NewDispatcher(prefs *preferences.Store, courses ports.CourseService, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		prefs:   prefs,
		courses: courses,
		log:     log,
	}
}

// AttachNavigationSink subscribes the UI's router. Passing nil detaches.
func (d *Dispatcher) AttachNavigationSink(nav NavigationSink) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nav = nav
}

// AttachFormSink subscribes the currently mounted form, if any.
func (d *Dispatcher) AttachFormSink(form FormSink) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.form = form
}

// AttachScreenReader subscribes the provider of visible screen content.
func (d *Dispatcher) AttachScreenReader(screen ScreenReader) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.screen = screen
}

// Dispatch runs the side effect an intent asks for and returns the text
// to vocalize. It never panics and never returns raw collaborator
// errors in Feedback.
func (d *Dispatcher) Dispatch(ctx context.Context, userID string, intent domain.Intent) DispatchResult {
	switch intent.Action {
	case domain.ActionNavigate:
		return d.navigate(intent)
	case domain.ActionToggleSetting:
		return d.toggleSetting(ctx, intent)
	case domain.ActionFillForm:
		return d.fillForm(intent)
	case domain.ActionCreateEntity:
		return d.createEntity(ctx, userID, intent)
	case domain.ActionReadScreen:
		return d.readScreen()
	default:
		// Unknown: no side effect, the classifier's feedback is spoken as-is.
		return DispatchResult{Feedback: intent.Feedback}
	}
}

func (d *Dispatcher) navigate(intent domain.Intent) DispatchResult {
	d.mu.Lock()
	defer d.mu.Unlock()

	if intent.Target != d.currentRoute {
		if d.nav != nil {
			d.nav.Navigate(intent.Target)
		}
		d.currentRoute = intent.Target
	}
	return DispatchResult{Feedback: intent.Feedback}
}

func (d *Dispatcher) toggleSetting(ctx context.Context, intent domain.Intent) DispatchResult {
	var (
		feedback string
		err      error
	)

	switch intent.Target {
	case domain.SettingHighContrast:
		var on bool
		if on, err = d.prefs.ToggleHighContrast(ctx); err == nil {
			feedback = "Contraste alto desactivado."
			if on {
				feedback = "Contraste alto activado."
			}
		}
	case domain.SettingFontSize:
		var size domain.FontSize
		if size, err = d.prefs.CycleFontSize(ctx); err == nil {
			feedback = fmt.Sprintf("Tamaño de letra: %s.", fontSizeName(size))
		}
	case domain.SettingTTSSpeed:
		var speed float64
		if speed, err = d.prefs.StepTTSSpeed(ctx); err == nil {
			feedback = fmt.Sprintf("Velocidad de voz: %.2f.", speed)
		}
	case domain.SettingScreenReader:
		var on bool
		if on, err = d.prefs.ToggleScreenReader(ctx); err == nil {
			feedback = "Lector de pantalla desactivado."
			if on {
				feedback = "Lector de pantalla activado."
			}
		}
	default:
		d.log.Warn("Toggle for unknown setting ignored", zap.String("setting", intent.Target))
		return DispatchResult{Feedback: intent.Feedback}
	}

	if err != nil {
		d.log.Error("Failed to toggle setting",
			zap.String("setting", intent.Target),
			zap.Error(err),
		)
		return DispatchResult{Feedback: feedbackSettingFailed, Err: err}
	}
	return DispatchResult{Feedback: feedback}
}

func fontSizeName(size domain.FontSize) string {
	switch size {
	case domain.FontSizeLarge:
		return "grande"
	case domain.FontSizeExtraLarge:
		return "extra grande"
	default:
		return "normal"
	}
}

func (d *Dispatcher) fillForm(intent domain.Intent) DispatchResult {
	d.mu.Lock()
	form := d.form
	d.mu.Unlock()

	// No mounted form is a silent no-op: voice field-filling only means
	// something while a compatible form is on screen.
	if form != nil {
		form.FillField(intent.Target, intent.Value)
	}
	return DispatchResult{Feedback: intent.Feedback}
}

func (d *Dispatcher) createEntity(ctx context.Context, userID string, intent domain.Intent) DispatchResult {
	if _, err := d.courses.AddCourse(ctx, userID, intent.Value); err != nil {
		d.log.Error("Failed to create course from voice command",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return DispatchResult{Feedback: feedbackCourseFailed, Err: err}
	}
	return DispatchResult{Feedback: intent.Feedback}
}

func (d *Dispatcher) readScreen() DispatchResult {
	d.mu.Lock()
	screen := d.screen
	d.mu.Unlock()

	if screen == nil {
		return DispatchResult{Feedback: feedbackEmptyScreen}
	}
	text := screen.ScreenText()
	if text == "" {
		text = feedbackEmptyScreen
	}
	return DispatchResult{Feedback: text}
}
