package service

import (
	"context"
	"sync"

	"edu-platform-api/internal/domain"
)

// map-backed repositories; nextErr lets a test fail one operation

type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[string]domain.User
	nextErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]domain.User)}
}

func (r *fakeUserRepo) takeErr() error {
	err := r.nextErr
	r.nextErr = nil
	return err
}

func (r *fakeUserRepo) List(context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeErr(); err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeErr(); err != nil {
		return nil, err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) EmailTaken(_ context.Context, email, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Exists(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[id]
	return ok, nil
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeErr(); err != nil {
		return err
	}
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

type fakeCourseRepo struct {
	mu      sync.Mutex
	courses map[string]domain.Course
	listErr error
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: make(map[string]domain.Course)}
}

func (r *fakeCourseRepo) List(context.Context) ([]domain.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]domain.Course, 0, len(r.courses))
	for _, c := range r.courses {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCourseRepo) FindByID(_ context.Context, id string) (*domain.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *fakeCourseRepo) Exists(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.courses[id]
	return ok, nil
}

func (r *fakeCourseRepo) Create(_ context.Context, c *domain.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.courses[c.ID] = *c
	return nil
}

func (r *fakeCourseRepo) Update(_ context.Context, c *domain.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.courses[c.ID] = *c
	return nil
}

func (r *fakeCourseRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.courses, id)
	return nil
}

type fakeAssessmentRepo struct {
	mu    sync.Mutex
	items map[string]domain.Assessment
}

func newFakeAssessmentRepo() *fakeAssessmentRepo {
	return &fakeAssessmentRepo{items: make(map[string]domain.Assessment)}
}

func (r *fakeAssessmentRepo) List(context.Context) ([]domain.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Assessment, 0, len(r.items))
	for _, a := range r.items {
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeAssessmentRepo) FindByID(_ context.Context, id string) (*domain.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *fakeAssessmentRepo) FindByCourseID(_ context.Context, courseID string) ([]domain.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Assessment
	for _, a := range r.items {
		if a.CourseID == courseID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAssessmentRepo) Exists(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.items[id]
	return ok, nil
}

func (r *fakeAssessmentRepo) Create(_ context.Context, a *domain.Assessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[a.ID] = *a
	return nil
}

func (r *fakeAssessmentRepo) Update(_ context.Context, a *domain.Assessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[a.ID] = *a
	return nil
}

func (r *fakeAssessmentRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

type fakeResultRepo struct {
	mu    sync.Mutex
	items map[string]domain.Result
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{items: make(map[string]domain.Result)}
}

func (r *fakeResultRepo) List(context.Context) ([]domain.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Result, 0, len(r.items))
	for _, res := range r.items {
		out = append(out, res)
	}
	return out, nil
}

func (r *fakeResultRepo) FindByID(_ context.Context, id string) (*domain.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &res, nil
}

func (r *fakeResultRepo) FindByAssessmentAndUser(_ context.Context, assessmentID, userID string) (*domain.Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, res := range r.items {
		if res.AssessmentID == assessmentID && res.UserID == userID {
			res := res
			return &res, nil
		}
	}
	return nil, nil
}

func (r *fakeResultRepo) Create(_ context.Context, res *domain.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[res.ID] = *res
	return nil
}

func (r *fakeResultRepo) Update(_ context.Context, res *domain.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[res.ID] = *res
	return nil
}

func (r *fakeResultRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

// memBlobStore 收集导出的对象，供断言
type memBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{objects: make(map[string][]byte)}
}

func (s *memBlobStore) Put(_ context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return s.putErr
	}
	s.objects[name] = append([]byte(nil), data...)
	return nil
}

func (s *memBlobStore) names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.objects))
	for n := range s.objects {
		out = append(out, n)
	}
	return out
}

func (s *memBlobStore) object(name string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.objects[name]
}

type fakeTrigger struct {
	mu    sync.Mutex
	count int
}

func (t *fakeTrigger) Trigger() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.count++
}

func (t *fakeTrigger) triggered() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}
