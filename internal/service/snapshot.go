package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"edu-platform-api/internal/core/blob"
	"edu-platform-api/internal/domain"
)

// courseSnapshot 导出文档里的一行，与对外 DTO 同形
type courseSnapshot struct {
	CourseID    string `json:"courseId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	UserID      string `json:"userId"`
	MediaURL    string `json:"mediaUrl"`
}

// SnapshotExporter 把全量课程表物化为 JSON 对象写入对象存储。
// 触发与导出解耦：Trigger 只投递信号，导出在独立 goroutine 里限速执行，
// 请求路径不等待导出结果。
type SnapshotExporter struct {
	courses domain.CourseRepository
	store   blob.Store
	log     *zap.Logger
	limiter *rate.Limiter
	ch      chan struct{}
	now     func() time.Time
}

func NewSnapshotExporter(courses domain.CourseRepository, store blob.Store, log *zap.Logger) *SnapshotExporter {
	return &SnapshotExporter{
		courses: courses,
		store:   store,
		log:     log,
		// 全表重导出是 O(n) 写放大，限到每秒至多一次
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		ch:      make(chan struct{}, 1),
		now:     time.Now,
	}
}

// Trigger 非阻塞；已有待处理信号时合并
func (e *SnapshotExporter) Trigger() {
	select {
	case e.ch <- struct{}{}:
	default:
	}
}

// Run 消费触发信号直到 ctx 结束；导出失败只记日志
func (e *SnapshotExporter) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-e.ch:
			if err := e.limiter.Wait(ctx); err != nil {
				return
			}
			if err := e.Export(ctx); err != nil {
				e.log.Error("course snapshot export failed", zap.Error(err))
			}
		}
	}
}

// Export 读取全量课程集合并写入一个以秒级时间戳命名的新对象，
// 从不覆盖既有快照
func (e *SnapshotExporter) Export(ctx context.Context) error {
	courses, err := e.courses.List(ctx)
	if err != nil {
		return err
	}
	rows := make([]courseSnapshot, 0, len(courses))
	for _, c := range courses {
		rows = append(rows, courseSnapshot{
			CourseID:    c.ID,
			Title:       c.Title,
			Description: c.Description,
			UserID:      c.UserID,
			MediaURL:    c.MediaURL,
		})
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	name := "courses-" + e.now().Format("20060102_150405") + ".json"
	if err := e.store.Put(ctx, name, data); err != nil {
		return err
	}
	e.log.Info("course snapshot exported",
		zap.String("object", name),
		zap.Int("courses", len(rows)),
	)
	return nil
}
