package service

import (
	"context"

	"go.uber.org/zap"

	"edu-platform-api/internal/domain"
	"edu-platform-api/pkg/utils"
)

const msgInvalidCourseID = "Invalid CourseId: Course does not exist."

type CreateAssessmentInput struct {
	Title     string `json:"title" validate:"required,max=255"`
	CourseID  string `json:"courseId" validate:"required"`
	MaxScore  int    `json:"maxScore" validate:"required,min=1"`
	Questions string `json:"questions"`
}

type AssessmentService struct {
	assessments domain.AssessmentRepository
	courses     domain.CourseRepository
	log         *zap.Logger
}

func NewAssessmentService(assessments domain.AssessmentRepository, courses domain.CourseRepository, log *zap.Logger) *AssessmentService {
	return &AssessmentService{assessments: assessments, courses: courses, log: log}
}

func (s *AssessmentService) List(ctx context.Context) ([]domain.Assessment, error) {
	return s.assessments.List(ctx)
}

func (s *AssessmentService) Get(ctx context.Context, id string) (*domain.Assessment, error) {
	a, err := s.assessments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

// ListByCourse 课程不存在返回 NotFound；存在但无测评返回空集合
func (s *AssessmentService) ListByCourse(ctx context.Context, courseID string) ([]domain.Assessment, error) {
	ok, err := s.courses.Exists(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return s.assessments.FindByCourseID(ctx, courseID)
}

func (s *AssessmentService) Create(ctx context.Context, in CreateAssessmentInput) (*domain.Assessment, error) {
	if err := s.validateInput(ctx, in); err != nil {
		return nil, err
	}
	a := &domain.Assessment{
		ID:        utils.NewID(),
		Title:     in.Title,
		CourseID:  in.CourseID,
		MaxScore:  in.MaxScore,
		Questions: in.Questions,
	}
	if err := s.assessments.Create(ctx, a); err != nil {
		return nil, err
	}
	s.log.Info("assessment created", zap.String("id", a.ID))
	return a, nil
}

func (s *AssessmentService) Update(ctx context.Context, id string, in CreateAssessmentInput) error {
	a, err := s.assessments.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return ErrNotFound
	}
	if err := s.validateInput(ctx, in); err != nil {
		return err
	}
	a.Title = in.Title
	a.CourseID = in.CourseID
	a.MaxScore = in.MaxScore
	a.Questions = in.Questions
	return s.assessments.Update(ctx, a)
}

func (s *AssessmentService) Delete(ctx context.Context, id string) error {
	a, err := s.assessments.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return ErrNotFound
	}
	return s.assessments.Delete(ctx, id)
}

func (s *AssessmentService) validateInput(ctx context.Context, in CreateAssessmentInput) error {
	if err := checkStruct(in); err != nil {
		return err
	}
	ok, err := s.courses.Exists(ctx, in.CourseID)
	if err != nil {
		return err
	}
	if !ok {
		return invalidInput(msgInvalidCourseID)
	}
	return nil
}
