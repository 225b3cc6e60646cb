package health

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// HealthService provides health check functionality
type HealthService struct {
	mu            sync.RWMutex
	clock         clockwork.Clock
	logger        *logrus.Logger
	startTime     time.Time
	dbEnabled     bool
	dbHealthy     bool
	dbError       error
	daemonChecked bool
	daemonRunning bool
	daemonError   error
	runs          int64
	failedRuns    int64
	changedRuns   int64
	lastRun       time.Time
	platform      string
}

// HealthStatus represents health check status
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusDegraded  HealthStatus = "degraded"
	StatusUnhealthy HealthStatus = "unhealthy"
)

// HealthResponse is the health check response struct
type HealthResponse struct {
	Status     HealthStatus           `json:"status"`
	Timestamp  string                 `json:"timestamp"`
	LastRun    string                 `json:"last_run,omitempty"`
	Components map[string]interface{} `json:"components"`
	Statistics map[string]interface{} `json:"statistics"`
}

// NewHealthService creates a new HealthService
func NewHealthService(clock clockwork.Clock, logger *logrus.Logger) *HealthService {
	return &HealthService{
		clock:     clock,
		logger:    logger,
		startTime: clock.Now(),
	}
}

// EnableRunHistory makes the run history database part of the health status
func (h *HealthService) EnableRunHistory() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.dbEnabled = true
}

// UpdateDBHealth updates the database health status
func (h *HealthService) UpdateDBHealth(healthy bool, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.dbHealthy = healthy
	h.dbError = err
}

// UpdateDaemonStatus records the outcome of the last ospf6d liveness check
func (h *HealthService) UpdateDaemonStatus(running bool, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.daemonChecked = true
	h.daemonRunning = running
	h.daemonError = err
}

// RecordRun counts one finished reconciliation
func (h *HealthService) RecordRun(changed, failed bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.runs++
	if failed {
		h.failedRuns++
	}
	if changed {
		h.changedRuns++
	}
	h.lastRun = h.clock.Now()
}

// SetPlatform sets the detected platform
func (h *HealthService) SetPlatform(platform string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.platform = platform
}

// ServeHTTP handles the HTTP health check endpoint
func (h *HealthService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := h.buildHealthResponse()

	statusCode := http.StatusOK
	if response.Status == StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.WithError(err).Error("failed to encode health check response")
	}
}

func (h *HealthService) buildHealthResponse() HealthResponse {
	h.mu.RLock()
	defer h.mu.RUnlock()

	now := h.clock.Now()

	components := map[string]interface{}{
		"ospf6d": map[string]interface{}{
			"checked": h.daemonChecked,
			"running": h.daemonRunning,
			"error":   formatError(h.daemonError),
		},
		"platform": map[string]interface{}{
			"type": h.platform,
		},
	}
	if h.dbEnabled {
		components["run_history"] = map[string]interface{}{
			"healthy": h.dbHealthy,
			"error":   formatError(h.dbError),
		}
	}

	statistics := map[string]interface{}{
		"runs":         h.runs,
		"failed_runs":  h.failedRuns,
		"changed_runs": h.changedRuns,
		"uptime":       formatUptime(now.Sub(h.startTime)),
	}

	response := HealthResponse{
		Status:     h.determineOverallStatus(),
		Timestamp:  now.Format(time.RFC3339),
		Components: components,
		Statistics: statistics,
	}
	if !h.lastRun.IsZero() {
		response.LastRun = h.lastRun.Format(time.RFC3339)
	}
	return response
}

func (h *HealthService) determineOverallStatus() HealthStatus {
	if h.daemonChecked && !h.daemonRunning {
		return StatusUnhealthy
	}
	if h.dbEnabled && !h.dbHealthy {
		return StatusUnhealthy
	}

	// Half or more of the runs failing is degraded
	if h.runs > 0 && h.failedRuns > 0 {
		if float64(h.failedRuns)/float64(h.runs) >= 0.5 {
			return StatusDegraded
		}
	}

	return StatusHealthy
}

func formatError(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// formatUptime formats uptime duration to human-readable format
func formatUptime(duration time.Duration) string {
	days := int(duration.Hours()) / 24
	hours := int(duration.Hours()) % 24
	minutes := int(duration.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd%dh%dm", days, hours, minutes)
	} else if hours > 0 {
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
