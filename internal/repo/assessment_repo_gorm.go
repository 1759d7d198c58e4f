package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"edu-platform-api/internal/domain"
)

type AssessmentRepo struct{ db *gorm.DB }

func NewAssessmentRepo(db *gorm.DB) *AssessmentRepo { return &AssessmentRepo{db: db} }

func (r *AssessmentRepo) List(ctx context.Context) ([]domain.Assessment, error) {
	var items []domain.Assessment
	err := r.db.WithContext(ctx).Find(&items).Error
	return items, err
}

func (r *AssessmentRepo) FindByID(ctx context.Context, id string) (*domain.Assessment, error) {
	var a domain.Assessment
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssessmentRepo) FindByCourseID(ctx context.Context, courseID string) ([]domain.Assessment, error) {
	var items []domain.Assessment
	err := r.db.WithContext(ctx).Where("course_id = ?", courseID).Find(&items).Error
	return items, err
}

func (r *AssessmentRepo) Exists(ctx context.Context, id string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Assessment{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *AssessmentRepo) Create(ctx context.Context, a *domain.Assessment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AssessmentRepo) Update(ctx context.Context, a *domain.Assessment) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AssessmentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Assessment{}).Error
}
