package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"edu-platform-api/internal/domain"
	"edu-platform-api/internal/service"
)

// UserDTO 对外形状：凭据字段永不出现
type UserDTO struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		UserID: u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role.String(),
	}
}

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler { return &UserHandler{svc: svc} }

// List --> GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeServiceErr(c, err)
		return
	}
	out := make([]UserDTO, 0, len(users))
	for i := range users {
		out = append(out, toUserDTO(&users[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get --> GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserDTO(u))
}

// Create --> POST /api/users
func (h *UserHandler) Create(c *gin.Context) {
	var in service.CreateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeBindErr(c)
		return
	}
	u, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		writeServiceErr(c, err)
		return
	}
	c.Header("Location", "/api/users/"+u.ID)
	c.JSON(http.StatusCreated, toUserDTO(u))
}

// Update --> PUT /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var in service.CreateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeBindErr(c)
		return
	}
	if err := h.svc.Update(c.Request.Context(), c.Param("id"), in); err != nil {
		writeServiceErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete --> DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Login --> POST /api/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var in service.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeBindErr(c)
		return
	}
	res, err := h.svc.Login(c.Request.Context(), in)
	if err != nil {
		writeServiceErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":  res.Token,
		"role":   res.Role.String(),
		"userId": res.UserID,
		"email":  res.Email,
	})
}
