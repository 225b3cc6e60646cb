package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Run results
const (
	ResultChanged   = "changed"
	ResultUnchanged = "unchanged"
	ResultFailed    = "failed"
)

var (
	// Reconciliation runs
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ospf6_runs_total",
			Help: "Total number of OSPFv3 reconciliation runs",
		},
		[]string{"scope", "result"}, // global|interface, changed|unchanged|failed
	)

	RunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ospf6_run_duration_seconds",
			Help:    "Time spent in each reconciliation run",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"scope"},
	)

	CommandsExecuted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ospf6_commands_executed_total",
			Help: "Total number of cl-ospf6 commands executed",
		},
		[]string{"action", "status"},
	)

	Snapshots = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ospf6_config_snapshots_total",
			Help: "Total number of running-config snapshots taken before changes",
		},
		[]string{"status"},
	)

	// Polling
	PollingCycleCount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ospf6_polling_cycles_total",
			Help: "Total number of polling cycles executed",
		},
	)

	PollingCycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ospf6_polling_cycle_duration_seconds",
			Help:    "Time spent in each polling cycle",
			Buckets: prometheus.DefBuckets,
		},
	)

	PollingBackoffLevel = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ospf6_polling_backoff_level",
			Help: "Current backoff level (0 = no backoff)",
		},
	)

	// Run history database
	DBConnectionStatus = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ospf6_db_connection_status",
			Help: "Run history database connection status (1 = connected, 0 = disconnected)",
		},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ospf6_db_query_duration_seconds",
			Help:    "Time spent executing run history queries",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query_type"}, // record_run, recent_runs
	)

	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ospf6_errors_total",
			Help: "Total number of errors encountered",
		},
		[]string{"error_type"}, // VALIDATION, PRECONDITION, NOT_FOUND, SYSTEM, TIMEOUT
	)

	AgentInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ospf6_agent_info",
			Help: "Agent information",
		},
		[]string{"version", "platform", "node_name"},
	)
)

// RecordRun records the outcome and duration of one reconciliation
func RecordRun(scope, result string, duration float64) {
	RunsTotal.WithLabelValues(scope, result).Inc()
	RunDuration.WithLabelValues(scope).Observe(duration)
}

// RecordCommand records one executed cl-ospf6 command
func RecordCommand(action, status string) {
	CommandsExecuted.WithLabelValues(action, status).Inc()
}

// RecordSnapshot records a pre-change snapshot attempt
func RecordSnapshot(status string) {
	Snapshots.WithLabelValues(status).Inc()
}

// RecordPollingCycle records polling cycle metrics
func RecordPollingCycle(duration float64) {
	PollingCycleCount.Inc()
	PollingCycleDuration.Observe(duration)
}

// RecordDBQuery records database query duration
func RecordDBQuery(queryType string, duration float64) {
	DBQueryDuration.WithLabelValues(queryType).Observe(duration)
}

// RecordError records an error occurrence
func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}

// SetBackoffLevel sets the current backoff level
func SetBackoffLevel(level float64) {
	PollingBackoffLevel.Set(level)
}

// SetDBConnectionStatus sets the run history database connection status
func SetDBConnectionStatus(connected bool) {
	if connected {
		DBConnectionStatus.Set(1)
	} else {
		DBConnectionStatus.Set(0)
	}
}

// SetAgentInfo sets agent information
func SetAgentInfo(version, platform, nodeName string) {
	AgentInfo.WithLabelValues(version, platform, nodeName).Set(1)
}

// WriteTextfile dumps the default registry in the node_exporter textfile
// format, for one-shot runs that never serve /metrics
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
