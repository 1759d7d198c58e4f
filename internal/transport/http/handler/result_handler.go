package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"edu-platform-api/internal/domain"
	"edu-platform-api/internal/service"
)

type ResultDTO struct {
	ResultID     string    `json:"resultId"`
	AssessmentID string    `json:"assessmentId"`
	UserID       string    `json:"userId"`
	Score        int       `json:"score"`
	AttemptDate  time.Time `json:"attemptDate"`
}

func toResultDTO(r *domain.Result) ResultDTO {
	return ResultDTO{
		ResultID:     r.ID,
		AssessmentID: r.AssessmentID,
		UserID:       r.UserID,
		Score:        r.Score,
		AttemptDate:  r.AttemptDate,
	}
}

type ResultHandler struct {
	svc *service.ResultService
}

func NewResultHandler(svc *service.ResultService) *ResultHandler { return &ResultHandler{svc: svc} }

// List --> GET /api/results
func (h *ResultHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeServiceErr(c, err)
		return
	}
	out := make([]ResultDTO, 0, len(items))
	for i := range items {
		out = append(out, toResultDTO(&items[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Get --> GET /api/results/:id
func (h *ResultHandler) Get(c *gin.Context) {
	r, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toResultDTO(r))
}

// GetByAssessmentAndUser --> GET /api/results/assessment/:assessmentId/user/:userId
func (h *ResultHandler) GetByAssessmentAndUser(c *gin.Context) {
	r, err := h.svc.GetByAssessmentAndUser(c.Request.Context(), c.Param("assessmentId"), c.Param("userId"))
	if err != nil {
		writeServiceErr(c, err)
		return
	}
	c.JSON(http.StatusOK, toResultDTO(r))
}

// Create --> POST /api/results
func (h *ResultHandler) Create(c *gin.Context) {
	var in service.CreateResultInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeBindErr(c)
		return
	}
	r, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		writeServiceErr(c, err)
		return
	}
	c.Header("Location", "/api/results/"+r.ID)
	c.JSON(http.StatusCreated, toResultDTO(r))
}

// Update --> PUT /api/results/:id
func (h *ResultHandler) Update(c *gin.Context) {
	var in service.CreateResultInput
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

// Delete --> DELETE /api/results/:id
func (h *ResultHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
