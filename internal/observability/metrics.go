package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

// DatabaseQueryLatency records database query latency by operation and table.
var DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "recshelf_database_query_latency_seconds",
	Help:    "Database query latency in seconds",
	Buckets: prometheus.DefBuckets,
}, []string{"operation", "table"})

const startedAtKey = "recshelf:started_at"

// QueryMetrics is a gorm plugin observing DatabaseQueryLatency for every
// statement gorm executes.
type QueryMetrics struct{}

func (QueryMetrics) Name() string { return "recshelf:query_metrics" }

func (QueryMetrics) Initialize(db *gorm.DB) error {
	register := []struct {
		operation string
		before    func(string, func(*gorm.DB)) error
		after     func(string, func(*gorm.DB)) error
	}{
		{"create", db.Callback().Create().Before("gorm:create").Register, db.Callback().Create().After("gorm:create").Register},
		{"query", db.Callback().Query().Before("gorm:query").Register, db.Callback().Query().After("gorm:query").Register},
		{"update", db.Callback().Update().Before("gorm:update").Register, db.Callback().Update().After("gorm:update").Register},
		{"delete", db.Callback().Delete().Before("gorm:delete").Register, db.Callback().Delete().After("gorm:delete").Register},
		{"row", db.Callback().Row().Before("gorm:row").Register, db.Callback().Row().After("gorm:row").Register},
		{"raw", db.Callback().Raw().Before("gorm:raw").Register, db.Callback().Raw().After("gorm:raw").Register},
	}

	for _, r := range register {
		if err := r.before("recshelf:before_"+r.operation, startTimer); err != nil {
			return err
		}
		if err := r.after("recshelf:after_"+r.operation, observe(r.operation)); err != nil {
			return err
		}
	}
	return nil
}

func startTimer(db *gorm.DB) {
	db.InstanceSet(startedAtKey, time.Now())
}

func observe(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(startedAtKey)
		if !ok {
			return
		}
		started, ok := v.(time.Time)
		if !ok {
			return
		}
		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(started).Seconds())
	}
}
