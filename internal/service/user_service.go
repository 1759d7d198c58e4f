package service

import (
	"context"

	"go.uber.org/zap"

	"edu-platform-api/internal/domain"
	"edu-platform-api/internal/repo"
	"edu-platform-api/pkg/utils"
)

const msgEmailExists = "Email already exists"
const msgInvalidRole = "Invalid role. Role must be either 'Student' or 'Instructor'"

type CreateUserInput struct {
	Name     string `json:"name" validate:"required,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token  string
	UserID string
	Email  string
	Role   domain.Role
}

type UserService struct {
	users domain.UserRepository
	log   *zap.Logger
}

func NewUserService(users domain.UserRepository, log *zap.Logger) *UserService {
	return &UserService{users: users, log: log}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// Create 校验顺序固定：结构 → 唯一性 → 枚举；首个违规即返回
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	if err := s.validateInput(ctx, in, ""); err != nil {
		return nil, err
	}
	role, _ := domain.ParseRole(in.Role)
	u := &domain.User{
		ID:           utils.NewID(),
		Name:         in.Name,
		Email:        in.Email,
		Role:         role,
		PasswordHash: in.Password,
	}
	if err := s.users.Create(ctx, u); err != nil {
		// 并发兜底：预检通过但唯一索引在写入时命中
		if repo.IsDupKey(err) {
			return nil, invalidInput(msgEmailExists)
		}
		return nil, err
	}
	s.log.Info("user created", zap.String("id", u.ID))
	return u, nil
}

// Update 先判目标是否存在，NotFound 永远不被校验错误掩盖
func (s *UserService) Update(ctx context.Context, id string, in CreateUserInput) error {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrNotFound
	}
	if err := s.validateInput(ctx, in, id); err != nil {
		return err
	}
	role, _ := domain.ParseRole(in.Role)
	u.Name = in.Name
	u.Email = in.Email
	u.Role = role
	u.PasswordHash = in.Password
	if err := s.users.Update(ctx, u); err != nil {
		if repo.IsDupKey(err) {
			return invalidInput(msgEmailExists)
		}
		return err
	}
	return nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrNotFound
	}
	// 无级联约束：悬挂的 Course/Result 外键保持原样
	return s.users.Delete(ctx, id)
}

// Login 查 email + 明文比对；任一不匹配都返回同一错误。
// token 是现场生成的一次性标识，不落库、不再校验。
func (s *UserService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	u, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if u == nil || u.PasswordHash != in.Password {
		return nil, ErrInvalidCredentials
	}
	return &LoginResult{
		Token:  utils.NewID(),
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
	}, nil
}

func (s *UserService) validateInput(ctx context.Context, in CreateUserInput, excludeID string) error {
	if err := checkStruct(in); err != nil {
		return err
	}
	taken, err := s.users.EmailTaken(ctx, in.Email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return invalidInput(msgEmailExists)
	}
	if _, ok := domain.ParseRole(in.Role); !ok {
		return invalidInput(msgInvalidRole)
	}
	return nil
}
