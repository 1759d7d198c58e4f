package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"edu-platform-api/internal/domain"
	"edu-platform-api/internal/service"
)

type CourseDTO struct {
	CourseID    string `json:"courseId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	UserID      string `json:"userId"`
	MediaURL    string `json:"mediaUrl"`
}

func toCourseDTO(c *domain.Course) CourseDTO {
	return CourseDTO{
		CourseID:    c.ID,
		Title:       c.Title,
		Description: c.Description,
		UserID:      c.UserID,
		MediaURL:    c.MediaURL,
	}
}

type CourseHandler struct {
	svc *service.CourseService
}

func NewCourseHandler(svc *service.CourseService) *CourseHandler { return &CourseHandler{svc: svc} }

// List --> GET /api/courses
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeServiceErr(c, err)
		return
	}
	out := make([]CourseDTO, 0, len(courses))
	for i := range courses {
		out = append(out, toCourseDTO(&courses[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get --> GET /api/courses/:id
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toCourseDTO(course))
}

// Create --> POST /api/courses
func (h *CourseHandler) Create(c *gin.Context) {
	var in service.CreateCourseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeBindErr(c)
		return
	}
	course, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		writeServiceErr(c, err)
		return
	}
	c.Header("Location", "/api/courses/"+course.ID)
	c.JSON(http.StatusCreated, toCourseDTO(course))
}

// Update --> PUT /api/courses/:id
func (h *CourseHandler) Update(c *gin.Context) {
	var in service.CreateCourseInput
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

// Delete --> DELETE /api/courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
