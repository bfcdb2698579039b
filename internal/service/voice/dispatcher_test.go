package voice

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/ShiroiHyun/StudAIApp/internal/domain"
	"github.com/ShiroiHyun/StudAIApp/internal/service/preferences"
)

type mockCourseService struct {
	ListCoursesFunc func(ctx context.Context, userID string) ([]domain.Course, error)
	AddCourseFunc   func(ctx context.Context, userID, name string) (*domain.Course, error)
}

func (m *mockCourseService) ListCourses(ctx context.Context, userID string) ([]domain.Course, error) {
	return m.ListCoursesFunc(ctx, userID)
}

func (m *mockCourseService) AddCourse(ctx context.Context, userID, name string) (*domain.Course, error) {
	return m.AddCourseFunc(ctx, userID, name)
}

type recordingNav struct {
	routes []string
}

func (r *recordingNav) Navigate(route string) { r.routes = append(r.routes, route) }

type recordingForm struct {
	field, value string
}

func (r *recordingForm) FillField(field, value string) { r.field, r.value = field, value }

type staticScreen struct {
	text string
}

func (s staticScreen) ScreenText() string { return s.text }

func newTestDispatcher(courses *mockCourseService) (*Dispatcher, *preferences.Store) {
	prefs := preferences.NewStore("user-1", domain.DefaultPreferences(), nil, nil, zap.NewNop())
	return NewDispatcher(prefs, courses, zap.NewNop()), prefs
}

func TestDispatcher_Navigate(t *testing.T) {
	d, _ := newTestDispatcher(nil)
	nav := &recordingNav{}
	d.AttachNavigationSink(nav)

	intent := domain.Intent{Action: domain.ActionNavigate, Target: domain.RouteMap, Feedback: "Abriendo navegación del campus."}
	result := d.Dispatch(context.Background(), "user-1", intent)
	if result.Err != nil {
		t.Fatalf("Dispatch failed: %v", result.Err)
	}
	if result.Feedback != intent.Feedback {
		t.Errorf("feedback = %q, want %q", result.Feedback, intent.Feedback)
	}
	if len(nav.routes) != 1 || nav.routes[0] != domain.RouteMap {
		t.Errorf("navigation sink saw %v", nav.routes)
	}

	// Navigating to the current route confirms without re-routing.
	result = d.Dispatch(context.Background(), "user-1", intent)
	if len(nav.routes) != 1 {
		t.Errorf("sink re-invoked for current route: %v", nav.routes)
	}
	if result.Feedback != intent.Feedback {
		t.Errorf("repeat feedback = %q, want %q", result.Feedback, intent.Feedback)
	}
}

func TestDispatcher_NavigateWithoutSink(t *testing.T) {
	d, _ := newTestDispatcher(nil)

	intent := domain.Intent{Action: domain.ActionNavigate, Target: domain.RouteHome, Feedback: "Volviendo al inicio."}
	result := d.Dispatch(context.Background(), "user-1", intent)
	if result.Err != nil || result.Feedback != intent.Feedback {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestDispatcher_ToggleHighContrast(t *testing.T) {
	d, prefs := newTestDispatcher(nil)
	intent := domain.Intent{Action: domain.ActionToggleSetting, Target: domain.SettingHighContrast}

	result := d.Dispatch(context.Background(), "user-1", intent)
	if result.Feedback != "Contraste alto activado." {
		t.Errorf("first toggle feedback = %q", result.Feedback)
	}
	if !prefs.Get().HighContrast {
		t.Error("high contrast not enabled in store")
	}

	result = d.Dispatch(context.Background(), "user-1", intent)
	if result.Feedback != "Contraste alto desactivado." {
		t.Errorf("second toggle feedback = %q", result.Feedback)
	}
	if prefs.Get().HighContrast {
		t.Error("high contrast not disabled in store")
	}
}

func TestDispatcher_FontSizeCycles(t *testing.T) {
	d, prefs := newTestDispatcher(nil)
	intent := domain.Intent{Action: domain.ActionToggleSetting, Target: domain.SettingFontSize}

	want := []domain.FontSize{domain.FontSizeLarge, domain.FontSizeExtraLarge, domain.FontSizeNormal}
	for i, size := range want {
		if result := d.Dispatch(context.Background(), "user-1", intent); result.Err != nil {
			t.Fatalf("dispatch %d failed: %v", i, result.Err)
		}
		if got := prefs.Get().FontSize; got != size {
			t.Errorf("after %d toggles font size = %s, want %s", i+1, got, size)
		}
	}
}

func TestDispatcher_FillForm(t *testing.T) {
	d, _ := newTestDispatcher(nil)
	form := &recordingForm{}
	d.AttachFormSink(form)

	intent := domain.Intent{
		Action:   domain.ActionFillForm,
		Target:   domain.FieldEmail,
		Value:    "ana@uni.edu",
		Feedback: "Entendido. Puse el correo: ana@uni.edu",
	}
	result := d.Dispatch(context.Background(), "user-1", intent)
	if form.field != domain.FieldEmail || form.value != "ana@uni.edu" {
		t.Errorf("form sink saw %q=%q", form.field, form.value)
	}
	if result.Feedback != intent.Feedback {
		t.Errorf("feedback = %q", result.Feedback)
	}

	// Without a mounted form the value is dropped silently.
	d.AttachFormSink(nil)
	result = d.Dispatch(context.Background(), "user-1", intent)
	if result.Err != nil || result.Feedback != intent.Feedback {
		t.Errorf("detached form result %+v", result)
	}
}

func TestDispatcher_CreateCourse(t *testing.T) {
	var gotUser, gotName string
	courses := &mockCourseService{
		AddCourseFunc: func(ctx context.Context, userID, name string) (*domain.Course, error) {
			gotUser, gotName = userID, name
			return &domain.Course{ID: "c1", Name: name}, nil
		},
	}
	d, _ := newTestDispatcher(courses)

	intent := domain.Intent{
		Action:   domain.ActionCreateEntity,
		Target:   "course",
		Value:    "historia del arte",
		Feedback: "Agregando curso historia del arte",
	}
	result := d.Dispatch(context.Background(), "user-1", intent)
	if result.Err != nil {
		t.Fatalf("Dispatch failed: %v", result.Err)
	}
	if gotUser != "user-1" || gotName != "historia del arte" {
		t.Errorf("AddCourse called with %q, %q", gotUser, gotName)
	}
}

func TestDispatcher_CreateCourseFailure(t *testing.T) {
	courses := &mockCourseService{
		AddCourseFunc: func(ctx context.Context, userID, name string) (*domain.Course, error) {
			return nil, errors.New("database unavailable")
		},
	}
	d, _ := newTestDispatcher(courses)

	intent := domain.Intent{Action: domain.ActionCreateEntity, Value: "historia", Feedback: "Agregando curso historia"}
	result := d.Dispatch(context.Background(), "user-1", intent)
	if result.Err == nil {
		t.Fatal("expected an error")
	}
	if result.Feedback != feedbackCourseFailed {
		t.Errorf("feedback = %q, want user-safe failure text", result.Feedback)
	}
}

func TestDispatcher_ReadScreen(t *testing.T) {
	d, _ := newTestDispatcher(nil)
	intent := domain.Intent{Action: domain.ActionReadScreen}

	result := d.Dispatch(context.Background(), "user-1", intent)
	if result.Feedback != feedbackEmptyScreen {
		t.Errorf("no reader attached: feedback = %q", result.Feedback)
	}

	d.AttachScreenReader(staticScreen{text: "Tienes 3 cursos activos"})
	result = d.Dispatch(context.Background(), "user-1", intent)
	if result.Feedback != "Tienes 3 cursos activos" {
		t.Errorf("feedback = %q, want screen content", result.Feedback)
	}

	d.AttachScreenReader(staticScreen{})
	result = d.Dispatch(context.Background(), "user-1", intent)
	if result.Feedback != feedbackEmptyScreen {
		t.Errorf("empty screen: feedback = %q", result.Feedback)
	}
}

func TestDispatcher_UnknownPassesFeedbackThrough(t *testing.T) {
	d, _ := newTestDispatcher(nil)

	intent := domain.Intent{Action: domain.ActionUnknown, Feedback: feedbackUnknown}
	result := d.Dispatch(context.Background(), "user-1", intent)
	if result.Err != nil || result.Feedback != feedbackUnknown {
		t.Errorf("unexpected result %+v", result)
	}
}
