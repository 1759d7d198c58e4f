package service

import "errors"

// ErrNotFound 标识“按 id 未命中”——正常分支，不是故障
var ErrNotFound = errors.New("record not found")

// ErrInvalidCredentials 登录失败统一返回，不暴露具体哪一步不匹配
var ErrInvalidCredentials = errors.New("invalid email or password")

// InvalidInputError 结构/引用/唯一性/枚举校验失败，Reason 面向调用方
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string { return e.Reason }

func invalidInput(reason string) error { return &InvalidInputError{Reason: reason} }
