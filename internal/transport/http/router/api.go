package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"edu-platform-api/internal/transport/http/handler"
	mdw "edu-platform-api/internal/transport/http/middleware"
)

type Handlers struct {
	Users       *handler.UserHandler
	Courses     *handler.CourseHandler
	Assessments *handler.AssessmentHandler
	Results     *handler.ResultHandler
	Telemetry   *handler.TelemetryHandler
}

func NewAPIEngine(l *zap.Logger, h Handlers) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(4<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	// 前端开发源；凭证开启时 origin 必须精确匹配
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	users := api.Group("/users")
	users.GET("", h.Users.List)
	users.GET("/:id", h.Users.Get)
	users.POST("", h.Users.Create)
	users.PUT("/:id", h.Users.Update)
	users.DELETE("/:id", h.Users.Delete)
	users.POST("/login", h.Users.Login)

	courses := api.Group("/courses")
	courses.GET("", h.Courses.List)
	courses.GET("/:id", h.Courses.Get)
	courses.POST("", h.Courses.Create)
	courses.PUT("/:id", h.Courses.Update)
	courses.DELETE("/:id", h.Courses.Delete)

	assessments := api.Group("/assessments")
	assessments.GET("", h.Assessments.List)
	assessments.GET("/:id", h.Assessments.Get)
	assessments.GET("/course/:courseId", h.Assessments.ListByCourse)
	assessments.POST("", h.Assessments.Create)
	assessments.PUT("/:id", h.Assessments.Update)
	assessments.DELETE("/:id", h.Assessments.Delete)

	results := api.Group("/results")
	results.GET("", h.Results.List)
	results.GET("/:id", h.Results.Get)
	results.GET("/assessment/:assessmentId/user/:userId", h.Results.GetByAssessmentAndUser)
	results.POST("", h.Results.Create)
	results.PUT("/:id", h.Results.Update)
	results.DELETE("/:id", h.Results.Delete)

	tel := api.Group("/telemetry")
	tel.GET("/trace", h.Telemetry.Trace)
	tel.GET("/event", h.Telemetry.Event)
	tel.GET("/exception", h.Telemetry.Exception)
	tel.GET("/metric", h.Telemetry.Metric)
	tel.GET("/dependency", h.Telemetry.Dependency)
	tel.GET("/request", h.Telemetry.Request)
	tel.GET("/all", h.Telemetry.All)

	return r
}
