package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"edu-platform-api/internal/domain"
)

type CourseRepo struct{ db *gorm.DB }

func NewCourseRepo(db *gorm.DB) *CourseRepo { return &CourseRepo{db: db} }

func (r *CourseRepo) List(ctx context.Context) ([]domain.Course, error) {
	var courses []domain.Course
	err := r.db.WithContext(ctx).Find(&courses).Error
	return courses, err
}

func (r *CourseRepo) FindByID(ctx context.Context, id string) (*domain.Course, error) {
	var c domain.Course
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CourseRepo) Exists(ctx context.Context, id string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Course{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *CourseRepo) Create(ctx context.Context, c *domain.Course) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CourseRepo) Update(ctx context.Context, c *domain.Course) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CourseRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Course{}).Error
}
