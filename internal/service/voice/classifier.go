package voice

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ShiroiHyun/StudAIApp/internal/domain"
)

// Spoken feedback for commands the classifier recognizes. Spanish, like
// the vocabulary itself: the product ships to Spanish-speaking students.
const (
	feedbackEmpty      = "No escuché nada."
	feedbackUnknown    = "No entendí ese comando. Intenta decir: 'Ver mis horarios' o 'Mi correo es...'"
	feedbackPassword   = "Contraseña ingresada."
	feedbackCourses    = "Abriendo tus horarios de clase."
	feedbackProfile    = "Yendo a tu perfil."
	feedbackHome       = "Volviendo al inicio."
	feedbackSchedule   = "Abriendo agenda."
	feedbackMap        = "Abriendo navegación del campus."
	feedbackOCR        = "Abriendo lector inteligente."
	feedbackCaptions   = "Iniciando subtítulos."
	feedbackContrast   = "Cambiando contraste."
	feedbackFontSize   = "Aumentando tamaño de letra."
	feedbackLogout     = "Cerrando sesión."
	feedbackWhichCourse = "¿Qué curso deseas agregar?"
)

// rule pairs a trigger vocabulary with the intent it resolves to. Rules
// are evaluated top to bottom and the first match wins; several rules
// share vocabulary (correo/perfil, curso/agregar curso, leer/leer
// pantalla), so the order is part of the contract, not a detail.
type rule struct {
	triggers []string
	resolve  func(utterance string) domain.Intent
}

// RuleClassifier is the local keyword classifier. It is pure: the same
// utterance always yields the same intent.
type RuleClassifier struct {
	rules []rule
	log   *zap.Logger
}

func NewRuleClassifier(log *zap.Logger) *RuleClassifier {
	c := &RuleClassifier{log: log}
	c.rules = []rule{
		// Credential filling comes first: these utterances routinely
		// contain navigation vocabulary ("mi correo es juan...") and
		// must never resolve as navigation.
		{triggers: []string{"correo", "email", "usuario"}, resolve: emailIntent},
		{triggers: []string{"contraseña", "clave", "password"}, resolve: passwordIntent},

		// Creation before plain "curso" navigation.
		{triggers: []string{"agregar curso", "nuevo curso"}, resolve: createCourseIntent},

		{triggers: []string{"horario", "curso", "clase"}, resolve: navigateTo(domain.RouteCourses, feedbackCourses)},
		{triggers: []string{"perfil", "cuenta", "datos"}, resolve: navigateTo(domain.RouteProfile, feedbackProfile)},
		{triggers: []string{"inicio", "principal", "casa"}, resolve: navigateTo(domain.RouteHome, feedbackHome)},
		{triggers: []string{"agenda", "calendario", "citas"}, resolve: navigateTo(domain.RouteSchedule, feedbackSchedule)},
		{triggers: []string{"navega", "mapa", "ir a", "llevame"}, resolve: navigateTo(domain.RouteMap, feedbackMap)},

		// "leer pantalla" reads the visible content aloud; it must win
		// over the bare "leer" that opens the OCR reader.
		{triggers: []string{"leer pantalla"}, resolve: func(string) domain.Intent {
			return domain.Intent{Action: domain.ActionReadScreen, Source: domain.IntentSourceLocal}
		}},
		{triggers: []string{"leer", "ocr", "escanear", "foto"}, resolve: navigateTo(domain.RouteOCR, feedbackOCR)},
		{triggers: []string{"subtítulos", "subtitulos"}, resolve: navigateTo(domain.RouteCaptions, feedbackCaptions)},

		{triggers: []string{"contraste", "oscuro"}, resolve: toggleSetting(domain.SettingHighContrast, feedbackContrast)},
		{triggers: []string{"letra", "tamaño", "fuente"}, resolve: toggleSetting(domain.SettingFontSize, feedbackFontSize)},

		{triggers: []string{"salir", "cerrar"}, resolve: navigateTo(domain.RouteLogin, feedbackLogout)},
	}
	return c
}

func (c *RuleClassifier) Classify(_ context.Context, utterance string) domain.Intent {
	if utterance == "" {
		return domain.Intent{Action: domain.ActionUnknown, Feedback: feedbackEmpty, Source: domain.IntentSourceLocal}
	}

	for _, r := range c.rules {
		for _, t := range r.triggers {
			if strings.Contains(utterance, t) {
				intent := r.resolve(utterance)
				c.log.Debug("utterance classified",
					zap.String("trigger", t),
					zap.String("action", string(intent.Action)),
					zap.String("target", intent.Target),
				)
				return intent
			}
		}
	}

	return domain.Intent{Action: domain.ActionUnknown, Feedback: feedbackUnknown, Source: domain.IntentSourceLocal}
}

func navigateTo(route, feedback string) func(string) domain.Intent {
	return func(string) domain.Intent {
		return domain.Intent{
			Action:   domain.ActionNavigate,
			Target:   route,
			Feedback: feedback,
			Source:   domain.IntentSourceLocal,
		}
	}
}

func toggleSetting(setting, feedback string) func(string) domain.Intent {
	return func(string) domain.Intent {
		return domain.Intent{
			Action:   domain.ActionToggleSetting,
			Target:   setting,
			Feedback: feedback,
			Source:   domain.IntentSourceLocal,
		}
	}
}

// Cue phrases stripped before extracting credential values. Longest
// first, so "mi correo es" goes before "correo".
var (
	emailCues    = []string{"mi correo es", "el correo es", "correo", "email", "usuario"}
	passwordCues = []string{"mi contraseña es", "la contraseña es", "mi clave es", "la clave es", "contraseña", "clave", "password"}
)

func stripCues(utterance string, cues []string) string {
	for _, cue := range cues {
		utterance = strings.ReplaceAll(utterance, cue, "")
	}
	return strings.TrimSpace(utterance)
}

// emailIntent turns a spoken address into a literal one: spaces removed,
// "arroba" and "punto" translated to their characters.
func emailIntent(utterance string) domain.Intent {
	value := stripCues(utterance, emailCues)
	value = strings.ReplaceAll(value, " ", "")
	value = strings.ReplaceAll(value, "arroba", "@")
	value = strings.ReplaceAll(value, "punto", ".")
	value = strings.ToLower(value)

	return domain.Intent{
		Action:   domain.ActionFillForm,
		Target:   domain.FieldEmail,
		Value:    value,
		Feedback: fmt.Sprintf("Entendido. Puse el correo: %s", value),
		Source:   domain.IntentSourceLocal,
	}
}

// passwordIntent strips the cue phrase; spoken digit sequences ("1 2 3 4")
// lose their spaces, anything else keeps internal spacing untouched.
func passwordIntent(utterance string) domain.Intent {
	value := stripCues(utterance, passwordCues)

	compact := strings.ReplaceAll(value, " ", "")
	if compact != "" && isDigits(compact) {
		value = compact
	}

	return domain.Intent{
		Action:   domain.ActionFillForm,
		Target:   domain.FieldPassword,
		Value:    value,
		Feedback: feedbackPassword,
		Source:   domain.IntentSourceLocal,
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// createCourseIntent parses "agregar curso historia" style commands.
func createCourseIntent(utterance string) domain.Intent {
	name := utterance
	name = strings.ReplaceAll(name, "agregar curso", "")
	name = strings.ReplaceAll(name, "nuevo curso", "")
	name = strings.TrimSpace(name)

	if len([]rune(name)) <= 2 {
		return domain.Intent{Action: domain.ActionUnknown, Feedback: feedbackWhichCourse, Source: domain.IntentSourceLocal}
	}

	return domain.Intent{
		Action:   domain.ActionCreateEntity,
		Target:   "course",
		Value:    name,
		Feedback: fmt.Sprintf("Agregando curso %s", name),
		Source:   domain.IntentSourceLocal,
	}
}
