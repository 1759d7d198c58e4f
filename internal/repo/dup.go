package repo

import "strings"

// IsDupKey 不依赖 gorm.ErrDuplicatedKey，避免驱动/版本差异导致漏判
func IsDupKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
