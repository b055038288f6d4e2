// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkflowOperationsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflow_operations_completed_total",
			Help: "Total number of workflow operations completed",
		},
		[]string{"operation"},
	)

	WorkflowOperationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflow_operations_failed_total",
			Help: "Total number of workflow operations failed",
		},
		[]string{"operation", "error_code"},
	)

	WorkflowOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "workflow_operation_duration_seconds",
			Help: "Duration of workflow operations in seconds",
		},
		[]string{"operation"},
	)

	WorkflowSessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "workflow_sessions_active",
			Help: "Number of active beneficiary workflow sessions",
		},
	)
)
