package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ShiroiHyun/StudAIApp/internal/adapter/storage/postgres"
	"github.com/ShiroiHyun/StudAIApp/internal/domain"
)

func TestDatabase_UserRepository(t *testing.T) {
	env := SetupTestEnvironment(t)
	CleanDatabase(t, env.DB)

	ctx := context.Background()
	repo := postgres.NewUserRepository(env.DB, env.Logger)

	user := &domain.User{
		ID:          uuid.NewString(),
		Name:        "Lucía Fernández",
		Email:       "lucia@uni.edu",
		Password:    "hashed",
		Role:        domain.UserRoleStudent,
		Status:      "Active",
		Preferences: domain.DefaultPreferences(),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := repo.Save(ctx, user); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Run("FindByEmail", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "lucia@uni.edu")
		if err != nil {
			t.Fatalf("FindByEmail failed: %v", err)
		}
		if found.ID != user.ID {
			t.Errorf("id = %s, want %s", found.ID, user.ID)
		}
		if !found.Preferences.ScreenReaderEnabled {
			t.Error("screen reader default not persisted")
		}
	})

	t.Run("UpdatePreferences", func(t *testing.T) {
		prefs := domain.AccessibilityPreferences{
			HighContrast:        true,
			FontSize:            domain.FontSizeLarge,
			TTSSpeed:            1.5,
			ScreenReaderEnabled: false,
		}
		if err := repo.UpdatePreferences(ctx, user.ID, prefs); err != nil {
			t.Fatalf("UpdatePreferences failed: %v", err)
		}

		found, err := repo.FindByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("FindByID failed: %v", err)
		}
		if !found.Preferences.HighContrast {
			t.Error("high contrast not persisted")
		}
		if found.Preferences.FontSize != domain.FontSizeLarge {
			t.Errorf("font size = %s", found.Preferences.FontSize)
		}
		if found.Preferences.ScreenReaderEnabled {
			t.Error("screen reader false was not persisted")
		}
	})

	t.Run("UpdateConsents", func(t *testing.T) {
		consents := domain.Consents{DataCollection: true, VoiceRecording: true}
		if err := repo.UpdateConsents(ctx, user.ID, consents); err != nil {
			t.Fatalf("UpdateConsents failed: %v", err)
		}

		found, err := repo.FindByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("FindByID failed: %v", err)
		}
		if !found.Consents.VoiceRecording {
			t.Error("voice recording consent not persisted")
		}
	})
}

func TestDatabase_CourseRepository(t *testing.T) {
	env := SetupTestEnvironment(t)
	CleanDatabase(t, env.DB)

	ctx := context.Background()
	users := postgres.NewUserRepository(env.DB, env.Logger)
	repo := postgres.NewCourseRepository(env.DB, env.Logger)

	userID := uuid.NewString()
	if err := users.Save(ctx, &domain.User{
		ID: userID, Name: "Marco", Email: "marco@uni.edu", Password: "hashed",
		Role: domain.UserRoleStudent, Status: "Active",
	}); err != nil {
		t.Fatalf("user Save failed: %v", err)
	}

	course := &domain.Course{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      "Biología Marina",
		Code:      "BIO-203",
		Professor: "Dra. Ortega",
		Materials: []domain.Material{
			{ID: uuid.NewString(), Title: "Guía de laboratorio", Type: domain.MaterialPDF},
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := repo.Save(ctx, course); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	courses, err := repo.FindByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("FindByUserID failed: %v", err)
	}
	if len(courses) != 1 {
		t.Fatalf("got %d courses, want 1", len(courses))
	}
	if len(courses[0].Materials) != 1 {
		t.Errorf("materials not preloaded, got %d", len(courses[0].Materials))
	}

	count, err := repo.CountByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("CountByUserID failed: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestDatabase_AppointmentRepository(t *testing.T) {
	env := SetupTestEnvironment(t)
	CleanDatabase(t, env.DB)

	ctx := context.Background()
	repo := postgres.NewAppointmentRepository(env.DB, env.Logger)
	userID := uuid.NewString()

	later := &domain.Appointment{
		ID: uuid.NewString(), UserID: userID, Title: "Tutoría",
		Date: time.Now().Add(48 * time.Hour), Status: domain.AppointmentPending,
		Type: domain.AppointmentAcademic,
	}
	sooner := &domain.Appointment{
		ID: uuid.NewString(), UserID: userID, Title: "Examen oral",
		Date: time.Now().Add(24 * time.Hour), Status: domain.AppointmentConfirmed,
		Type: domain.AppointmentAcademic,
	}
	for _, apt := range []*domain.Appointment{later, sooner} {
		if err := repo.Save(ctx, apt); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	appointments, err := repo.FindByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("FindByUserID failed: %v", err)
	}
	if len(appointments) != 2 {
		t.Fatalf("got %d appointments, want 2", len(appointments))
	}
	if appointments[0].ID != sooner.ID {
		t.Error("appointments not ordered by date ascending")
	}

	if err := repo.UpdateStatus(ctx, later.ID, domain.AppointmentCancelled); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	found, err := repo.FindByID(ctx, later.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found.Status != domain.AppointmentCancelled {
		t.Errorf("status = %s, want cancelled", found.Status)
	}
}

func TestDatabase_NotificationRepository(t *testing.T) {
	env := SetupTestEnvironment(t)
	CleanDatabase(t, env.DB)

	ctx := context.Background()
	repo := postgres.NewNotificationRepository(env.DB, env.Logger)
	userID := uuid.NewString()

	n := &domain.Notification{
		ID: uuid.NewString(), UserID: userID, Title: "Nueva cita",
		Message: "Tu cita fue confirmada.", Type: domain.NotificationSuccess,
		CreatedAt: time.Now(),
	}
	if err := repo.Save(ctx, n); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := repo.MarkRead(ctx, n.ID); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}

	notifications, err := repo.FindByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("FindByUserID failed: %v", err)
	}
	if len(notifications) != 1 || !notifications[0].Read {
		t.Error("notification not marked read")
	}
}

func TestDatabase_TicketRepository(t *testing.T) {
	env := SetupTestEnvironment(t)
	CleanDatabase(t, env.DB)

	ctx := context.Background()
	repo := postgres.NewTicketRepository(env.DB, env.Logger)

	open := &domain.Ticket{
		ID: uuid.NewString(), Subject: "Lector no responde", User: "lucia@uni.edu",
		Status: domain.TicketOpen, CreatedAt: time.Now(),
	}
	if err := repo.Save(ctx, open); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := repo.Resolve(ctx, open.ID); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	resolved, err := repo.CountByStatus(ctx, domain.TicketResolved)
	if err != nil {
		t.Fatalf("CountByStatus failed: %v", err)
	}
	if resolved != 1 {
		t.Errorf("resolved count = %d, want 1", resolved)
	}
}
