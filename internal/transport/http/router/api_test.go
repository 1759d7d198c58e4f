package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"edu-platform-api/internal/domain"
	"edu-platform-api/internal/service"
	"edu-platform-api/internal/telemetry"
	"edu-platform-api/internal/transport/http/handler"
)

// ---- 内存仓储，替代真实数据库跑整条 HTTP 链 ----

type memUsers struct {
	mu    sync.Mutex
	items map[string]domain.User
}

func (r *memUsers) List(context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.items))
	for _, u := range r.items {
		out = append(out, u)
	}
	return out, nil
}

func (r *memUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.items[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.items {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memUsers) EmailTaken(_ context.Context, email, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.items {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUsers) Exists(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.items[id]
	return ok, nil
}

func (r *memUsers) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[u.ID] = *u
	return nil
}

func (r *memUsers) Update(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[u.ID] = *u
	return nil
}

func (r *memUsers) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

type memCourses struct {
	mu    sync.Mutex
	items map[string]domain.Course
}

func (r *memCourses) List(context.Context) ([]domain.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Course, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, c)
	}
	return out, nil
}

func (r *memCourses) FindByID(_ context.Context, id string) (*domain.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.items[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *memCourses) Exists(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.items[id]
	return ok, nil
}

func (r *memCourses) Create(_ context.Context, c *domain.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[c.ID] = *c
	return nil
}

func (r *memCourses) Update(_ context.Context, c *domain.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[c.ID] = *c
	return nil
}

func (r *memCourses) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

type memAssessments struct {
	mu    sync.Mutex
	items map[string]domain.Assessment
}

func (r *memAssessments) List(context.Context) ([]domain.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Assessment, 0, len(r.items))
	for _, a := range r.items {
		out = append(out, a)
	}
	return out, nil
}

func (r *memAssessments) FindByID(_ context.Context, id string) (*domain.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.items[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (r *memAssessments) FindByCourseID(_ context.Context, courseID string) ([]domain.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Assessment{}
	for _, a := range r.items {
		if a.CourseID == courseID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memAssessments) Exists(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.items[id]
	return ok, nil
}

func (r *memAssessments) Create(_ context.Context, a *domain.Assessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[a.ID] = *a
	return nil
}

func (r *memAssessments) Update(_ context.Context, a *domain.Assessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[a.ID] = *a
	return nil
}

func (r *memAssessments) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

type memResults struct {
	mu    sync.Mutex
	items map[string]domain.Result
}

func (r *memResults) List(context.Context) ([]domain.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Result, 0, len(r.items))
	for _, v := range r.items {
		out = append(out, v)
	}
	return out, nil
}

func (r *memResults) FindByID(_ context.Context, id string) (*domain.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.items[id]; ok {
		return &v, nil
	}
	return nil, nil
}

func (r *memResults) FindByAssessmentAndUser(_ context.Context, assessmentID, userID string) (*domain.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.items {
		if v.AssessmentID == assessmentID && v.UserID == userID {
			return &v, nil
		}
	}
	return nil, nil
}

func (r *memResults) Create(_ context.Context, v *domain.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[v.ID] = *v
	return nil
}

func (r *memResults) Update(_ context.Context, v *domain.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[v.ID] = *v
	return nil
}

func (r *memResults) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

type memBlob struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (s *memBlob) Put(_ context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[name] = append([]byte(nil), data...)
	return nil
}

func (s *memBlob) names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.objects))
	for n := range s.objects {
		out = append(out, n)
	}
	return out
}

// ---- 测试装配 ----

func newTestEngine(t *testing.T) (*gin.Engine, *memBlob) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()

	users := &memUsers{items: make(map[string]domain.User)}
	courses := &memCourses{items: make(map[string]domain.Course)}
	assessments := &memAssessments{items: make(map[string]domain.Assessment)}
	results := &memResults{items: make(map[string]domain.Result)}
	store := &memBlob{objects: make(map[string][]byte)}

	exporter := service.NewSnapshotExporter(courses, store, log)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go exporter.Run(ctx)

	h := Handlers{
		Users:       handler.NewUserHandler(service.NewUserService(users, log)),
		Courses:     handler.NewCourseHandler(service.NewCourseService(courses, users, exporter, log)),
		Assessments: handler.NewAssessmentHandler(service.NewAssessmentService(assessments, courses, log)),
		Results:     handler.NewResultHandler(service.NewResultService(results, assessments, users, log)),
		Telemetry:   handler.NewTelemetryHandler(telemetry.New(log)),
	}
	return NewAPIEngine(log, h), store
}

func do(t *testing.T, e *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func createUser(t *testing.T, e *gin.Engine, email string) string {
	t.Helper()
	w := do(t, e, http.MethodPost, "/api/users", gin.H{
		"name": "Alice", "email": email, "role": "Instructor", "password": "s3cret",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return decode(t, w)["userId"].(string)
}

// ---- 场景 ----

func TestDuplicateEmailRejected(t *testing.T) {
	e, _ := newTestEngine(t)

	createUser(t, e, "alice@example.com")

	w := do(t, e, http.MethodPost, "/api/users", gin.H{
		"name": "Alice Again", "email": "alice@example.com", "role": "Student", "password": "pw",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already exists", decode(t, w)["message"])
}

func TestInvalidRoleRejected(t *testing.T) {
	e, _ := newTestEngine(t)

	w := do(t, e, http.MethodPost, "/api/users", gin.H{
		"name": "Bob", "email": "bob@example.com", "role": "Admin", "password": "pw",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid role. Role must be either 'Student' or 'Instructor'", decode(t, w)["message"])
}

func TestCourseCreationAndSnapshot(t *testing.T) {
	e, store := newTestEngine(t)

	w := do(t, e, http.MethodPost, "/api/courses", gin.H{
		"title": "Ghost Course", "description": "x", "userId": "no-such-user",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid UserId: User does not exist.", decode(t, w)["message"])
	assert.Empty(t, store.names())

	uid := createUser(t, e, "teach@example.com")
	w = do(t, e, http.MethodPost, "/api/courses", gin.H{
		"title": "Go Basics", "description": "intro", "userId": uid,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.NotEmpty(t, body["courseId"])
	assert.Contains(t, w.Header().Get("Location"), "/api/courses/")

	require.Eventually(t, func() bool {
		return len(store.names()) > 0
	}, 3*time.Second, 20*time.Millisecond)
	name := store.names()[0]
	assert.True(t, strings.HasPrefix(name, "courses-"))
	assert.True(t, strings.HasSuffix(name, ".json"))
}

func TestResultLifecycle(t *testing.T) {
	e, _ := newTestEngine(t)

	uid := createUser(t, e, "student@example.com")

	w := do(t, e, http.MethodPost, "/api/courses", gin.H{
		"title": "Algorithms", "userId": uid,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	cid := decode(t, w)["courseId"].(string)

	w = do(t, e, http.MethodPost, "/api/assessments", gin.H{
		"title": "Final Exam", "courseId": cid, "maxScore": 100,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	aid := decode(t, w)["assessmentId"].(string)

	w = do(t, e, http.MethodPost, "/api/results", gin.H{
		"assessmentId": aid,
		"userId":       uid,
		"score":        90,
		"attemptDate":  "2025-03-14T09:00:00Z",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	rid := decode(t, w)["resultId"].(string)

	w = do(t, e, http.MethodGet, "/api/results/"+rid, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(90), decode(t, w)["score"])

	w = do(t, e, http.MethodGet, "/api/results/assessment/"+aid+"/user/"+uid, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, rid, decode(t, w)["resultId"])

	w = do(t, e, http.MethodGet, "/api/assessments/course/"+cid, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, aid, list[0]["assessmentId"])
}

func TestResultRejectsUnknownReferences(t *testing.T) {
	e, _ := newTestEngine(t)

	w := do(t, e, http.MethodPost, "/api/results", gin.H{
		"assessmentId": "missing", "userId": "missing", "score": 10,
		"attemptDate": "2025-03-14T09:00:00Z",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid AssessmentId: Assessment does not exist.", decode(t, w)["message"])
}

func TestLogin(t *testing.T) {
	e, _ := newTestEngine(t)
	uid := createUser(t, e, "login@example.com")

	t.Run("wrong password", func(t *testing.T) {
		w := do(t, e, http.MethodPost, "/api/users/login", gin.H{
			"email": "login@example.com", "password": "wrong",
		})
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid email or password.", decode(t, w)["message"])
	})

	t.Run("unknown email", func(t *testing.T) {
		w := do(t, e, http.MethodPost, "/api/users/login", gin.H{
			"email": "nobody@example.com", "password": "s3cret",
		})
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("success", func(t *testing.T) {
		w := do(t, e, http.MethodPost, "/api/users/login", gin.H{
			"email": "login@example.com", "password": "s3cret",
		})
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.NotEmpty(t, body["token"])
		assert.Equal(t, uid, body["userId"])
		assert.Equal(t, "login@example.com", body["email"])
		assert.Equal(t, "Instructor", body["role"])
	})
}

func TestNotFoundAndDelete(t *testing.T) {
	e, _ := newTestEngine(t)

	w := do(t, e, http.MethodGet, "/api/users/nope", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, w.Body.String())

	uid := createUser(t, e, "gone@example.com")

	w = do(t, e, http.MethodDelete, "/api/users/"+uid, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, e, http.MethodDelete, "/api/users/"+uid, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateUnknownIDIs404EvenWithBadBody(t *testing.T) {
	e, _ := newTestEngine(t)

	// 目标不存在优先于输入校验
	w := do(t, e, http.MethodPut, "/api/users/nope", gin.H{})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestMalformedPayloadIs400(t *testing.T) {
	e, _ := newTestEngine(t)

	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request payload", decode(t, w)["message"])
}

func TestHealthAndTelemetry(t *testing.T) {
	e, _ := newTestEngine(t)

	w := do(t, e, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, e, http.MethodGet, "/api/telemetry/trace", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Trace log recorded successfully", w.Body.String())

	w = do(t, e, http.MethodGet, "/api/telemetry/all", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "All telemetry types logged successfully", w.Body.String())
}
