package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

var (
	eventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "telemetry_events_total", Help: "Count of tracked custom events"},
		[]string{"event"},
	)
	exceptionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "telemetry_exceptions_total", Help: "Count of tracked exceptions"},
	)
	customMetric = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "telemetry_metric", Help: "Last value of tracked custom metrics"},
		[]string{"name"},
	)
	dependencyDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "telemetry_dependency_duration_seconds",
			Help:    "Duration of tracked dependency calls",
			Buckets: prometheus.DefBuckets,
		}, []string{"type", "name", "success"},
	)
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "telemetry_requests_total", Help: "Count of tracked custom requests"},
		[]string{"name", "code"},
	)
)

func init() {
	prometheus.MustRegister(eventsTotal, exceptionsTotal, customMetric, dependencyDuration, requestsTotal)
}

// Client 把 trace/event/exception/metric/dependency/request 六类遥测
// 落到结构化日志与 prometheus 指标；发后即忘，从不返回错误
type Client struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Client { return &Client{log: log} }

func (c *Client) TrackTrace(message string, props map[string]string) {
	c.log.Info("trace", zap.String("message", message), propsField(props))
}

func (c *Client) TrackEvent(name string, props map[string]string) {
	eventsTotal.WithLabelValues(name).Inc()
	c.log.Info("event", zap.String("event", name), propsField(props))
}

func (c *Client) TrackException(err error, props map[string]string) {
	exceptionsTotal.Inc()
	c.log.Error("exception", zap.Error(err), propsField(props))
}

func (c *Client) TrackMetric(name string, value float64, props map[string]string) {
	customMetric.WithLabelValues(name).Set(value)
	c.log.Info("metric", zap.String("name", name), zap.Float64("value", value), propsField(props))
}

func (c *Client) TrackDependency(depType, name, data string, start time.Time, duration time.Duration, success bool) {
	dependencyDuration.WithLabelValues(depType, name, boolLabel(success)).Observe(duration.Seconds())
	c.log.Info("dependency",
		zap.String("type", depType),
		zap.String("name", name),
		zap.String("data", data),
		zap.Time("start", start),
		zap.Duration("duration", duration),
		zap.Bool("success", success),
	)
}

func (c *Client) TrackRequest(name string, start time.Time, duration time.Duration, responseCode string, success bool) {
	requestsTotal.WithLabelValues(name, responseCode).Inc()
	c.log.Info("request",
		zap.String("name", name),
		zap.Time("start", start),
		zap.Duration("duration", duration),
		zap.String("code", responseCode),
		zap.Bool("success", success),
	)
}

func propsField(props map[string]string) zap.Field {
	if len(props) == 0 {
		return zap.Skip()
	}
	return zap.Any("properties", props)
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
