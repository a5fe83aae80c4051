// Package metrics declares the Prometheus collectors of the code generation
// server. Collectors register with the default registry and are exposed by
// promhttp on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Label values of ValidationsTotal.
const (
	TriggerOnDemand = "on_demand"
	TriggerDeferred = "deferred"
)

var (
	// GenerationsTotal counts generations by the path that produced the text
	// ("provider" or "fallback").
	GenerationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codegen_generations_total",
		Help: "Total number of code generations by source",
	}, []string{"source"})

	// ProviderFailuresTotal counts provider calls that fell back to the
	// placeholder, by provider name.
	ProviderFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codegen_provider_failures_total",
		Help: "Total number of failed text-generation provider calls",
	}, []string{"provider"})

	// ValidationsTotal counts written validation outcomes by trigger and
	// resulting status.
	ValidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codegen_validations_total",
		Help: "Total number of validation outcomes written",
	}, []string{"trigger", "status"})

	// ValidationConflictsTotal counts validation writes rejected by the
	// version check.
	ValidationConflictsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codegen_validation_conflicts_total",
		Help: "Total number of validation writes rejected by a version conflict",
	}, []string{"trigger"})

	// QueueErrorsTotal counts task queue failures by operation.
	QueueErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "codegen_queue_errors_total",
		Help: "Total number of validation queue errors by operation",
	}, []string{"operation"})
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
