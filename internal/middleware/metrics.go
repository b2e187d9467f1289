package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts failed redis commands by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recshelf_redis_errors_total",
		Help: "Total number of failed Redis commands",
	}, []string{"command"})

	// DomainEvents counts successful write operations by entity and action.
	DomainEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recshelf_domain_events_total",
		Help: "Total number of successful write operations by entity and action",
	}, []string{"entity", "action"})

	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

// InitMetrics returns the process-wide HTTP metrics middleware. The
// collectors register on the default registry, so they are created once.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		prom = fiberprometheus.New(serviceName)
	})
	return prom
}

// RecordEvent bumps the DomainEvents counter.
func RecordEvent(entity, action string) {
	DomainEvents.WithLabelValues(entity, action).Inc()
}
