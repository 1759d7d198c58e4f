package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"edu-platform-api/internal/domain"
)

type ResultRepo struct{ db *gorm.DB }

func NewResultRepo(db *gorm.DB) *ResultRepo { return &ResultRepo{db: db} }

func (r *ResultRepo) List(ctx context.Context) ([]domain.Result, error) {
	var items []domain.Result
	err := r.db.WithContext(ctx).Find(&items).Error
	return items, err
}

func (r *ResultRepo) FindByID(ctx context.Context, id string) (*domain.Result, error) {
	var res domain.Result
	err := r.db.WithContext(ctx).First(&res, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ResultRepo) FindByAssessmentAndUser(ctx context.Context, assessmentID, userID string) (*domain.Result, error) {
	var res domain.Result
	err := r.db.WithContext(ctx).
		First(&res, "assessment_id = ? AND user_id = ?", assessmentID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ResultRepo) Create(ctx context.Context, res *domain.Result) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *ResultRepo) Update(ctx context.Context, res *domain.Result) error {
	return r.db.WithContext(ctx).Save(res).Error
}

func (r *ResultRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Result{}).Error
}
