package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"edu-platform-api/internal/service"
)

// writeServiceErr 服务层错误分类 → HTTP 状态
// NotFound 空体 404；InvalidInput 400 带 message；登录失败 401 统一文案；
// 其余视为依赖故障，按 500 透传
func writeServiceErr(c *gin.Context, err error) {
	var inv *service.InvalidInputError
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.Status(http.StatusNotFound)
	case errors.As(err, &inv):
		c.JSON(http.StatusBadRequest, gin.H{"message": inv.Reason})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password."})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	}
}

func writeBindErr(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload"})
}
