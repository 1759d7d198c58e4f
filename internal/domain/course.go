package domain

import "context"

type Course struct {
	ID          string `gorm:"primaryKey;size:36"`
	Title       string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`
	UserID      string `gorm:"size:36;index;not null"`
	MediaURL    string `gorm:"size:512"`
}

func (Course) TableName() string { return "courses" }

type CourseRepository interface {
	List(ctx context.Context) ([]Course, error)
	FindByID(ctx context.Context, id string) (*Course, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, c *Course) error
	Update(ctx context.Context, c *Course) error
	Delete(ctx context.Context, id string) error
}
