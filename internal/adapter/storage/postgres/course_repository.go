package postgres

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ShiroiHyun/StudAIApp/internal/domain"
	"github.com/ShiroiHyun/StudAIApp/internal/ports"
)

type CourseRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewCourseRepository(db *gorm.DB, log *zap.Logger) ports.CourseRepository {
	return &CourseRepository{
		db:  db,
		log: log,
	}
}

func (r *CourseRepository) Save(ctx context.Context, course *domain.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*domain.Course, error) {
	var course domain.Course
	err := r.db.WithContext(ctx).Preload("Materials").First(&course, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) FindByUserID(ctx context.Context, userID string) ([]domain.Course, error) {
	var courses []domain.Course
	err := r.db.WithContext(ctx).
		Preload("Materials").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) CountByUserID(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Course{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
