package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"edu-platform-api/internal/domain"
	"edu-platform-api/internal/service"
)

type AssessmentDTO struct {
	AssessmentID string `json:"assessmentId"`
	Title        string `json:"title"`
	CourseID     string `json:"courseId"`
	MaxScore     int    `json:"maxScore"`
	Questions    string `json:"questions"`
}

func toAssessmentDTO(a *domain.Assessment) AssessmentDTO {
	return AssessmentDTO{
		AssessmentID: a.ID,
		Title:        a.Title,
		CourseID:     a.CourseID,
		MaxScore:     a.MaxScore,
		Questions:    a.Questions,
	}
}

type AssessmentHandler struct {
	svc *service.AssessmentService
}

func NewAssessmentHandler(svc *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{svc: svc}
}

// List --> GET /api/assessments
func (h *AssessmentHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeServiceErr(c, err)
		return
	}
	c.JSON(http.StatusOK, assessmentDTOs(items))
}

// Get --> GET /api/assessments/:id
func (h *AssessmentHandler) Get(c *gin.Context) {
	a, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toAssessmentDTO(a))
}

// ListByCourse --> GET /api/assessments/course/:courseId
func (h *AssessmentHandler) ListByCourse(c *gin.Context) {
	items, err := h.svc.ListByCourse(c.Request.Context(), c.Param("courseId"))
	if err != nil {
		writeServiceErr(c, err)
		return
	}
	c.JSON(http.StatusOK, assessmentDTOs(items))
}

// Create --> POST /api/assessments
func (h *AssessmentHandler) Create(c *gin.Context) {
	var in service.CreateAssessmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeBindErr(c)
		return
	}
	a, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		writeServiceErr(c, err)
		return
	}
	c.Header("Location", "/api/assessments/"+a.ID)
	c.JSON(http.StatusCreated, toAssessmentDTO(a))
}

// Update --> PUT /api/assessments/:id
func (h *AssessmentHandler) Update(c *gin.Context) {
	var in service.CreateAssessmentInput
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

// Delete --> DELETE /api/assessments/:id
func (h *AssessmentHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func assessmentDTOs(items []domain.Assessment) []AssessmentDTO {
	out := make([]AssessmentDTO, 0, len(items))
	for i := range items {
		out = append(out, toAssessmentDTO(&items[i]))
	}
	return out
}
