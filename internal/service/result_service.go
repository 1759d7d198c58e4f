package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"edu-platform-api/internal/domain"
	"edu-platform-api/pkg/utils"
)

const msgInvalidAssessmentID = "Invalid AssessmentId: Assessment does not exist."

type CreateResultInput struct {
	AssessmentID string    `json:"assessmentId" validate:"required"`
	UserID       string    `json:"userId" validate:"required"`
	Score        int       `json:"score" validate:"min=0"`
	AttemptDate  time.Time `json:"attemptDate" validate:"required"`
}

type ResultService struct {
	results     domain.ResultRepository
	assessments domain.AssessmentRepository
	users       domain.UserRepository
	log         *zap.Logger
}

func NewResultService(results domain.ResultRepository, assessments domain.AssessmentRepository, users domain.UserRepository, log *zap.Logger) *ResultService {
	return &ResultService{results: results, assessments: assessments, users: users, log: log}
}

func (s *ResultService) List(ctx context.Context) ([]domain.Result, error) {
	return s.results.List(ctx)
}

func (s *ResultService) Get(ctx context.Context, id string) (*domain.Result, error) {
	r, err := s.results.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrNotFound
	}
	return r, nil
}

func (s *ResultService) GetByAssessmentAndUser(ctx context.Context, assessmentID, userID string) (*domain.Result, error) {
	r, err := s.results.FindByAssessmentAndUser(ctx, assessmentID, userID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrNotFound
	}
	return r, nil
}

// Create 校验顺序：结构 → AssessmentId 引用 → UserId 引用；各自报独立消息
func (s *ResultService) Create(ctx context.Context, in CreateResultInput) (*domain.Result, error) {
	if err := s.validateInput(ctx, in); err != nil {
		return nil, err
	}
	r := &domain.Result{
		ID:           utils.NewID(),
		AssessmentID: in.AssessmentID,
		UserID:       in.UserID,
		Score:        in.Score,
		AttemptDate:  in.AttemptDate,
	}
	if err := s.results.Create(ctx, r); err != nil {
		return nil, err
	}
	s.log.Info("result created", zap.String("id", r.ID))
	return r, nil
}

func (s *ResultService) Update(ctx context.Context, id string, in CreateResultInput) error {
	r, err := s.results.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if r == nil {
		return ErrNotFound
	}
	if err := s.validateInput(ctx, in); err != nil {
		return err
	}
	r.AssessmentID = in.AssessmentID
	r.UserID = in.UserID
	r.Score = in.Score
	r.AttemptDate = in.AttemptDate
	return s.results.Update(ctx, r)
}

func (s *ResultService) Delete(ctx context.Context, id string) error {
	r, err := s.results.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if r == nil {
		return ErrNotFound
	}
	return s.results.Delete(ctx, id)
}

func (s *ResultService) validateInput(ctx context.Context, in CreateResultInput) error {
	if err := checkStruct(in); err != nil {
		return err
	}
	ok, err := s.assessments.Exists(ctx, in.AssessmentID)
	if err != nil {
		return err
	}
	if !ok {
		return invalidInput(msgInvalidAssessmentID)
	}
	ok, err = s.users.Exists(ctx, in.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return invalidInput(msgInvalidUserID)
	}
	return nil
}
