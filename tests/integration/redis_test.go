package integration

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ShiroiHyun/StudAIApp/internal/domain"
	"github.com/ShiroiHyun/StudAIApp/internal/service/preferences"
)

func TestCache_BasicOperations(t *testing.T) {
	env := SetupTestEnvironment(t)
	ctx := context.Background()

	t.Run("SetAndGet", func(t *testing.T) {
		if err := env.Cache.Set(ctx, "it:greeting", "hola", time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		value, err := env.Cache.Get(ctx, "it:greeting")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if value != "hola" {
			t.Errorf("value = %q, want hola", value)
		}
	})

	t.Run("Expiration", func(t *testing.T) {
		if err := env.Cache.Set(ctx, "it:ephemeral", "x", time.Second); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		time.Sleep(1500 * time.Millisecond)
		if _, err := env.Cache.Get(ctx, "it:ephemeral"); err == nil {
			t.Error("expected miss after expiration")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := env.Cache.Set(ctx, "it:doomed", "x", time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := env.Cache.Delete(ctx, "it:doomed"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := env.Cache.Get(ctx, "it:doomed"); err == nil {
			t.Error("expected miss after delete")
		}
	})

	t.Run("StructRoundTrip", func(t *testing.T) {
		prefs := domain.AccessibilityPreferences{
			HighContrast: true,
			FontSize:     domain.FontSizeExtraLarge,
			TTSSpeed:     1.75,
		}
		if err := env.Cache.Set(ctx, "it:prefs", prefs, time.Minute); err != nil {
			t.Fatalf("Set failed: %v", err)
		}

		raw, err := env.Cache.Get(ctx, "it:prefs")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		var decoded domain.AccessibilityPreferences
		if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		if decoded.FontSize != domain.FontSizeExtraLarge || decoded.TTSSpeed != 1.75 {
			t.Errorf("round trip lost data: %+v", decoded)
		}
	})
}

// A preferences store hydrated for the same user should see mutations
// another store persisted through the cache.
func TestCache_PreferencesStore(t *testing.T) {
	env := SetupTestEnvironment(t)
	ctx := context.Background()
	userID := uuid.NewString()

	writer := preferences.Load(ctx, userID, nil, env.Cache, env.Logger)
	if _, err := writer.ToggleHighContrast(ctx); err != nil {
		t.Fatalf("ToggleHighContrast failed: %v", err)
	}
	if _, err := writer.CycleFontSize(ctx); err != nil {
		t.Fatalf("CycleFontSize failed: %v", err)
	}

	reader := preferences.Load(ctx, userID, nil, env.Cache, env.Logger)
	prefs := reader.Get()
	if !prefs.HighContrast {
		t.Error("high contrast toggle not visible through cache")
	}
	if prefs.FontSize != domain.FontSizeLarge {
		t.Errorf("font size = %s, want large", prefs.FontSize)
	}
}
