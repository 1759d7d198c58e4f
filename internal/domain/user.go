package domain

import "context"

// Role 封闭角色类型：非法值在边界 Parse 时即被拒绝
type Role string

const (
	RoleStudent    Role = "Student"
	RoleInstructor Role = "Instructor"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleStudent, RoleInstructor:
		return Role(s), true
	default:
		return "", false
	}
}

func (r Role) String() string { return string(r) }

type User struct {
	ID           string `gorm:"primaryKey;size:36"`
	Name         string `gorm:"size:64;not null"`
	Email        string `gorm:"uniqueIndex;size:191;not null"`
	Role         Role   `gorm:"size:16;not null"`
	PasswordHash string `gorm:"size:191;not null"`
}

func (User) TableName() string { return "users" }

type UserRepository interface {
	List(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	// EmailTaken 检查 email 是否已被 excludeID 之外的用户占用
	EmailTaken(ctx context.Context, email, excludeID string) (bool, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
}
