package voice

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/ShiroiHyun/StudAIApp/internal/adapter/ai/classifier"
	"github.com/ShiroiHyun/StudAIApp/internal/domain"
	"github.com/ShiroiHyun/StudAIApp/internal/observability/telemetry"
)

// Predictor is the remote classification endpoint.
type Predictor interface {
	Predict(ctx context.Context, command string) (*classifier.Prediction, error)
}

// labelResolvers maps the remote model's categorical labels onto the
// same intent builders the local rules use. Labels that carry a value
// (credentials, course names) re-run local extraction on the utterance,
// since the remote endpoint returns only a category.
var labelResolvers = map[string]func(utterance string) domain.Intent{
	"llenar_correo":      emailIntent,
	"llenar_clave":       passwordIntent,
	"agregar_curso":      createCourseIntent,
	"abrir_cursos":       navigateTo(domain.RouteCourses, feedbackCourses),
	"abrir_perfil":       navigateTo(domain.RouteProfile, feedbackProfile),
	"ir_inicio":          navigateTo(domain.RouteHome, feedbackHome),
	"abrir_agenda":       navigateTo(domain.RouteSchedule, feedbackSchedule),
	"abrir_mapa":         navigateTo(domain.RouteMap, feedbackMap),
	"abrir_lector":       navigateTo(domain.RouteOCR, feedbackOCR),
	"activar_subtitulos": navigateTo(domain.RouteCaptions, feedbackCaptions),
	"cambiar_contraste":  toggleSetting(domain.SettingHighContrast, feedbackContrast),
	"cambiar_letra":      toggleSetting(domain.SettingFontSize, feedbackFontSize),
	"cerrar_sesion":      navigateTo(domain.RouteLogin, feedbackLogout),
	"leer_pantalla": func(string) domain.Intent {
		return domain.Intent{Action: domain.ActionReadScreen}
	},
}

// RemoteClassifier tries the remote endpoint first and falls back to the
// local rule table on any failure: timeout, non-2xx, malformed payload,
// open breaker, or a label the table does not know. The fallback is
// silent; the user never hears a distinct error because the remote path
// failed.
type RemoteClassifier struct {
	remote   Predictor
	fallback *RuleClassifier
	breaker  *gobreaker.CircuitBreaker
	timeout  time.Duration
	log      *zap.Logger
}

// RemoteClassifierConfig bounds the remote call and tunes the breaker.
type RemoteClassifierConfig struct {
	Timeout          time.Duration
	BreakerInterval  time.Duration
	BreakerTimeout   time.Duration
	FailureThreshold uint32
}

func NewRemoteClassifier(remote Predictor, fallback *RuleClassifier, cfg RemoteClassifierConfig, log *zap.Logger) *RemoteClassifier {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "intent-classifier",
		MaxRequests: 3,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("Classifier circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &RemoteClassifier{
		remote:   remote,
		fallback: fallback,
		breaker:  cb,
		timeout:  cfg.Timeout,
		log:      log,
	}
}

func (rc *RemoteClassifier) Classify(ctx context.Context, utterance string) domain.Intent {
	if utterance == "" || rc.remote == nil {
		return rc.fallback.Classify(ctx, utterance)
	}

	result, err := rc.breaker.Execute(func() (interface{}, error) {
		callCtx, cancel := context.WithTimeout(ctx, rc.timeout)
		defer cancel()
		return rc.remote.Predict(callCtx, utterance)
	})
	if err != nil {
		telemetry.ClassifierFallbacksTotal.Inc()
		rc.log.Debug("Remote classifier unavailable, using local rules", zap.Error(err))
		return rc.fallback.Classify(ctx, utterance)
	}

	pred := result.(*classifier.Prediction)
	resolve, ok := labelResolvers[pred.Label]
	if !ok {
		rc.log.Debug("Remote classifier returned unmapped label, using local rules",
			zap.String("label", pred.Label),
		)
		return rc.fallback.Classify(ctx, utterance)
	}

	intent := resolve(utterance)
	intent.Confidence = pred.Confidence
	intent.Source = domain.IntentSourceRemote
	return intent
}
