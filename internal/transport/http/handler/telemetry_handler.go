package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"edu-platform-api/internal/telemetry"
)

// TelemetryHandler 把每类遥测转发给 telemetry.Client；发后即忘，总是 200
type TelemetryHandler struct {
	client *telemetry.Client
}

func NewTelemetryHandler(client *telemetry.Client) *TelemetryHandler {
	return &TelemetryHandler{client: client}
}

// Trace --> GET /api/telemetry/trace
func (h *TelemetryHandler) Trace(c *gin.Context) {
	message := c.DefaultQuery("message", "Default trace message")
	h.client.TrackTrace(message, map[string]string{
		"Source": "TelemetryHandler",
		"Type":   "Trace",
	})
	c.String(http.StatusOK, "Trace log recorded successfully")
}

// Event --> GET /api/telemetry/event
func (h *TelemetryHandler) Event(c *gin.Context) {
	name := c.DefaultQuery("eventName", "CustomEvent")
	h.client.TrackEvent(name, map[string]string{
		"Category":  "Testing",
		"Source":    "TelemetryHandler",
		"Timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
	c.String(http.StatusOK, "Event logged successfully")
}

// Exception --> GET /api/telemetry/exception
func (h *TelemetryHandler) Exception(c *gin.Context) {
	message := c.DefaultQuery("message", "Test exception")
	err := errors.New(message)
	h.client.TrackException(err, map[string]string{
		"Source": "TelemetryHandler",
	})
	c.String(http.StatusOK, "Exception logged successfully")
}

// Metric --> GET /api/telemetry/metric
func (h *TelemetryHandler) Metric(c *gin.Context) {
	name := c.DefaultQuery("name", "TestMetric")
	value, err := strconv.ParseFloat(c.DefaultQuery("value", "1.0"), 64)
	if err != nil {
		value = 1.0
	}
	h.client.TrackMetric(name, value, map[string]string{
		"Source": "TelemetryHandler",
		"Type":   "CustomMetric",
	})
	c.String(http.StatusOK, "Metric logged successfully")
}

// Dependency --> GET /api/telemetry/dependency
func (h *TelemetryHandler) Dependency(c *gin.Context) {
	h.client.TrackDependency("HTTP", "ExternalAPI", "GET /api/data",
		time.Now().UTC(), 150*time.Millisecond, true)
	c.String(http.StatusOK, "Dependency logged successfully")
}

// Request --> GET /api/telemetry/request
func (h *TelemetryHandler) Request(c *gin.Context) {
	h.client.TrackRequest("CustomRequest", time.Now().UTC(), 100*time.Millisecond, "200", true)
	c.String(http.StatusOK, "Request logged successfully")
}

// All --> GET /api/telemetry/all
func (h *TelemetryHandler) All(c *gin.Context) {
	h.client.TrackTrace("Testing all telemetry types", nil)
	h.client.TrackEvent("TestAllEvent", map[string]string{"Type": "All"})
	h.client.TrackMetric("TestAllMetric", 1.0, nil)
	h.client.TrackDependency("Database", "TestDB", "SELECT * FROM Test",
		time.Now().UTC(), 50*time.Millisecond, true)
	h.client.TrackRequest("TestAllRequest", time.Now().UTC(), 75*time.Millisecond, "200", true)
	c.String(http.StatusOK, "All telemetry types logged successfully")
}
