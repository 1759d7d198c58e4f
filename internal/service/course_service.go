package service

import (
	"context"

	"go.uber.org/zap"

	"edu-platform-api/internal/domain"
	"edu-platform-api/pkg/utils"
)

const msgInvalidUserID = "Invalid UserId: User does not exist."

type CreateCourseInput struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	UserID      string `json:"userId" validate:"required"`
	MediaURL    string `json:"mediaUrl" validate:"omitempty,url"`
}

// SnapshotTrigger 课程创建成功后的快照信号；实现必须不阻塞调用方
type SnapshotTrigger interface {
	Trigger()
}

type CourseService struct {
	courses domain.CourseRepository
	users   domain.UserRepository
	snap    SnapshotTrigger
	log     *zap.Logger
}

func NewCourseService(courses domain.CourseRepository, users domain.UserRepository, snap SnapshotTrigger, log *zap.Logger) *CourseService {
	return &CourseService{courses: courses, users: users, snap: snap, log: log}
}

func (s *CourseService) List(ctx context.Context) ([]domain.Course, error) {
	return s.courses.List(ctx)
}

func (s *CourseService) Get(ctx context.Context, id string) (*domain.Course, error) {
	c, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

// Create 校验顺序：结构 → UserId 引用；落库成功后触发快照导出。
// 导出是尽力而为：课程此时已持久化，导出失败不回滚、不影响响应。
func (s *CourseService) Create(ctx context.Context, in CreateCourseInput) (*domain.Course, error) {
	if err := s.validateInput(ctx, in); err != nil {
		return nil, err
	}
	c := &domain.Course{
		ID:          utils.NewID(),
		Title:       in.Title,
		Description: in.Description,
		UserID:      in.UserID,
		MediaURL:    in.MediaURL,
	}
	if err := s.courses.Create(ctx, c); err != nil {
		return nil, err
	}
	s.log.Info("course created", zap.String("id", c.ID))
	if s.snap != nil {
		s.snap.Trigger()
	}
	return c, nil
}

func (s *CourseService) Update(ctx context.Context, id string, in CreateCourseInput) error {
	c, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrNotFound
	}
	if err := s.validateInput(ctx, in); err != nil {
		return err
	}
	c.Title = in.Title
	c.Description = in.Description
	c.UserID = in.UserID
	c.MediaURL = in.MediaURL
	return s.courses.Update(ctx, c)
}

func (s *CourseService) Delete(ctx context.Context, id string) error {
	c, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrNotFound
	}
	return s.courses.Delete(ctx, id)
}

func (s *CourseService) validateInput(ctx context.Context, in CreateCourseInput) error {
	if err := checkStruct(in); err != nil {
		return err
	}
	ok, err := s.users.Exists(ctx, in.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return invalidInput(msgInvalidUserID)
	}
	return nil
}
