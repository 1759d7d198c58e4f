package domain

import (
	"context"
	"time"
)

type Result struct {
	ID           string    `gorm:"primaryKey;size:36"`
	AssessmentID string    `gorm:"size:36;index;not null"`
	UserID       string    `gorm:"size:36;index;not null"`
	Score        int       `gorm:"not null"`
	AttemptDate  time.Time `gorm:"not null"`
}

func (Result) TableName() string { return "results" }

type ResultRepository interface {
	List(ctx context.Context) ([]Result, error)
	FindByID(ctx context.Context, id string) (*Result, error)
	FindByAssessmentAndUser(ctx context.Context, assessmentID, userID string) (*Result, error)
	Create(ctx context.Context, r *Result) error
	Update(ctx context.Context, r *Result) error
	Delete(ctx context.Context, id string) error
}
