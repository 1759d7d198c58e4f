package utils

import "github.com/google/uuid"

// NewID 生成全局唯一的 128-bit 标识（实体主键与登录 token 共用）
func NewID() string { return uuid.NewString() }
