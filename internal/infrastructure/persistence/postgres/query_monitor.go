package postgres

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const startedAtKey = "query_monitor:started_at"

// QueryMonitor tracks query counts and latency through gorm callbacks
type QueryMonitor struct {
	logger        *zap.Logger
	slowThreshold time.Duration
	mu            sync.RWMutex
	stats         QueryStats
}

// QueryStats holds aggregated query statistics
type QueryStats struct {
	TotalQueries     int64         `json:"total_queries"`
	SlowQueries      int64         `json:"slow_queries"`
	FailedQueries    int64         `json:"failed_queries"`
	AverageQueryTime time.Duration `json:"average_query_time"`
	TotalQueryTime   time.Duration `json:"total_query_time"`
	LastReset        time.Time     `json:"last_reset"`
}

// NewQueryMonitor creates a new query monitor
func NewQueryMonitor(logger *zap.Logger, slowThreshold time.Duration) *QueryMonitor {
	return &QueryMonitor{
		logger:        logger.Named("query-monitor"),
		slowThreshold: slowThreshold,
		stats:         QueryStats{LastReset: time.Now()},
	}
}

// Install registers the monitor around gorm's query and create callbacks
func (qm *QueryMonitor) Install(db *gorm.DB) error {
	if err := db.Callback().Query().Before("gorm:query").Register("monitor:before_query", qm.BeforeQuery); err != nil {
		return err
	}
	if err := db.Callback().Query().After("gorm:query").Register("monitor:after_query", qm.AfterQuery); err != nil {
		return err
	}
	if err := db.Callback().Create().Before("gorm:create").Register("monitor:before_create", qm.BeforeQuery); err != nil {
		return err
	}
	return db.Callback().Create().After("gorm:create").Register("monitor:after_create", qm.AfterQuery)
}

// BeforeQuery is called before query execution
func (qm *QueryMonitor) BeforeQuery(db *gorm.DB) {
	db.InstanceSet(startedAtKey, time.Now())
}

// AfterQuery is called after query execution
func (qm *QueryMonitor) AfterQuery(db *gorm.DB) {
	v, ok := db.InstanceGet(startedAtKey)
	if !ok {
		return
	}
	started, ok := v.(time.Time)
	if !ok {
		return
	}
	qm.Record(time.Since(started), db.Error, db.Statement.SQL.String())
}

// Record adds one execution to the statistics
func (qm *QueryMonitor) Record(d time.Duration, err error, sql string) {
	qm.mu.Lock()
	defer qm.mu.Unlock()

	qm.stats.TotalQueries++
	qm.stats.TotalQueryTime += d
	qm.stats.AverageQueryTime = qm.stats.TotalQueryTime / time.Duration(qm.stats.TotalQueries)

	if err != nil && err != gorm.ErrRecordNotFound {
		qm.stats.FailedQueries++
	}
	if qm.slowThreshold > 0 && d > qm.slowThreshold {
		qm.stats.SlowQueries++
		qm.logger.Warn("Slow query",
			zap.Duration("duration", d),
			zap.String("sql", sql),
		)
	}
}

// GetStats returns a snapshot of the statistics
func (qm *QueryMonitor) GetStats() QueryStats {
	qm.mu.RLock()
	defer qm.mu.RUnlock()
	return qm.stats
}

// Reset clears the statistics
func (qm *QueryMonitor) Reset() {
	qm.mu.Lock()
	defer qm.mu.Unlock()
	qm.stats = QueryStats{LastReset: time.Now()}
}

// GORMLogWriter implements GORM's Writer interface for query logging
type GORMLogWriter struct {
	logger *zap.Logger
}

// Printf implements the Writer interface
func (w *GORMLogWriter) Printf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)

	switch {
	case strings.Contains(msg, "SLOW SQL"):
		w.logger.Warn("GORM slow query", zap.String("message", msg))
	case strings.Contains(msg, "error"), strings.Contains(msg, "ERROR"):
		w.logger.Error("GORM error", zap.String("message", msg))
	default:
		w.logger.Debug("GORM log", zap.String("message", msg))
	}
}
