package domain

import "context"

type Assessment struct {
	ID       string `gorm:"primaryKey;size:36"`
	Title    string `gorm:"size:255;not null"`
	CourseID string `gorm:"size:36;index;not null"`
	MaxScore int    `gorm:"not null"`
	// Questions 以序列化文本存放，服务层不解释其内容
	Questions string `gorm:"type:text"`
}

func (Assessment) TableName() string { return "assessments" }

type AssessmentRepository interface {
	List(ctx context.Context) ([]Assessment, error)
	FindByID(ctx context.Context, id string) (*Assessment, error)
	FindByCourseID(ctx context.Context, courseID string) ([]Assessment, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, a *Assessment) error
	Update(ctx context.Context, a *Assessment) error
	Delete(ctx context.Context, id string) error
}
