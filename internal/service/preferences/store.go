package preferences

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ShiroiHyun/StudAIApp/internal/domain"
	"github.com/ShiroiHyun/StudAIApp/internal/ports"
)

const (
	cacheTTL       = 30 * time.Minute
	speedStep      = 0.25
	cacheKeyPrefix = "prefs:"
)

// Store owns one user's accessibility preferences for the lifetime of a
// voice session or HTTP request. All mutations run through its setters
// under a single writer; the speaker reads through Get on every
// utterance, so a toggle takes effect on the next one.
type Store struct {
	userID string
	users  ports.UserRepository
	cache  ports.Cache
	log    *zap.Logger

	mu    sync.Mutex // serializes mutations including their persistence
	prefs domain.AccessibilityPreferences
}

func NewStore(userID string, initial domain.AccessibilityPreferences, users ports.UserRepository, cache ports.Cache, log *zap.Logger) *Store {
	return &Store{
		userID: userID,
		users:  users,
		cache:  cache,
		log:    log,
		prefs:  initial,
	}
}

// Load hydrates a store from cache, then from the user repository, then
// from defaults.
func Load(ctx context.Context, userID string, users ports.UserRepository, cache ports.Cache, log *zap.Logger) *Store {
	if cache != nil {
		if raw, err := cache.Get(ctx, cacheKeyPrefix+userID); err == nil {
			var prefs domain.AccessibilityPreferences
			if err := json.Unmarshal([]byte(raw), &prefs); err == nil {
				return NewStore(userID, prefs, users, cache, log)
			}
		}
	}

	if users != nil {
		if user, err := users.FindByID(ctx, userID); err == nil && user != nil {
			return NewStore(userID, user.Preferences, users, cache, log)
		}
	}

	return NewStore(userID, domain.DefaultPreferences(), users, cache, log)
}

// Get returns a copy of the current preferences.
func (s *Store) Get() domain.AccessibilityPreferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// ToggleHighContrast negates the flag and returns the new value.
func (s *Store) ToggleHighContrast(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.prefs
	next.HighContrast = !next.HighContrast
	if err := s.persist(ctx, next); err != nil {
		return s.prefs.HighContrast, err
	}
	s.prefs = next
	return next.HighContrast, nil
}

// CycleFontSize advances normal -> large -> extraLarge -> normal.
func (s *Store) CycleFontSize(ctx context.Context) (domain.FontSize, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.prefs
	next.FontSize = next.FontSize.Next()
	if err := s.persist(ctx, next); err != nil {
		return s.prefs.FontSize, err
	}
	s.prefs = next
	return next.FontSize, nil
}

// StepTTSSpeed advances the speech rate by a fixed step, wrapping back
// to the minimum past the top of the range.
func (s *Store) StepTTSSpeed(ctx context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.prefs
	next.TTSSpeed += speedStep
	if next.TTSSpeed > domain.MaxTTSSpeed {
		next.TTSSpeed = domain.MinTTSSpeed
	}
	if err := s.persist(ctx, next); err != nil {
		return s.prefs.TTSSpeed, err
	}
	s.prefs = next
	return next.TTSSpeed, nil
}

// ToggleScreenReader negates the flag and returns the new value.
func (s *Store) ToggleScreenReader(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.prefs
	next.ScreenReaderEnabled = !next.ScreenReaderEnabled
	if err := s.persist(ctx, next); err != nil {
		return s.prefs.ScreenReaderEnabled, err
	}
	s.prefs = next
	return next.ScreenReaderEnabled, nil
}

// Update replaces the whole preference set (profile settings form).
func (s *Store) Update(ctx context.Context, prefs domain.AccessibilityPreferences) error {
	prefs.TTSSpeed = domain.ClampTTSSpeed(prefs.TTSSpeed)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, prefs); err != nil {
		return err
	}
	s.prefs = prefs
	return nil
}

func (s *Store) persist(ctx context.Context, prefs domain.AccessibilityPreferences) error {
	if s.users != nil {
		if err := s.users.UpdatePreferences(ctx, s.userID, prefs); err != nil {
			return fmt.Errorf("failed to persist preferences: %w", err)
		}
	}

	if s.cache != nil {
		raw, err := json.Marshal(prefs)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKeyPrefix+s.userID, string(raw), cacheTTL); err != nil {
				// Cache is read-through on the next Load; a failed write
				// only costs a repository hit.
				s.log.Warn("Failed to cache preferences", zap.Error(err))
			}
		}
	}

	return nil
}
