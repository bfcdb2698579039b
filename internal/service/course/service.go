package course

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ShiroiHyun/StudAIApp/internal/adapter/queue"
	"github.com/ShiroiHyun/StudAIApp/internal/domain"
	"github.com/ShiroiHyun/StudAIApp/internal/ports"
)

const subjectCourseCreated = "course.created"

type Service struct {
	repo ports.CourseRepository
	mq   queue.MessageQueue
	log  *zap.Logger
}

func NewService(repo ports.CourseRepository, mq queue.MessageQueue, log *zap.Logger) ports.CourseService {
	return &Service{repo: repo, mq: mq, log: log}
}

func (s *Service) ListCourses(ctx context.Context, userID string) ([]domain.Course, error) {
	return s.repo.FindByUserID(ctx, userID)
}

// AddCourse creates a course from just a spoken name. Code and professor
// get placeholder values the student fills in later.
func (s *Service) AddCourse(ctx context.Context, userID, name string) (*domain.Course, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("course name is required")
	}

	course := &domain.Course{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      capitalize(name),
		Code:      fmt.Sprintf("AUTO-%d", rand.Intn(1000)),
		Professor: "Por asignar",
		Materials: []domain.Material{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.repo.Save(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to save course: %w", err)
	}

	s.log.Info("Course created",
		zap.String("course_id", course.ID),
		zap.String("user_id", userID),
		zap.String("name", course.Name),
	)

	if s.mq != nil {
		if data, err := json.Marshal(course); err == nil {
			if err := s.mq.Publish(subjectCourseCreated, data); err != nil {
				s.log.Warn("Failed to publish course event", zap.Error(err))
			}
		}
	}

	return course, nil
}

func capitalize(s string) string {
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
