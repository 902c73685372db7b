package infrastructure

import (
	"context"

	"gorm.io/gorm"
	"weatherdash.app/internal/ports"
)

// SessionCounter reports how many sessions have persisted flags
type SessionCounter interface {
	CountSessions(ctx context.Context) (int64, error)
}

// DatabaseHealthChecker checks the database-backed flag store
type DatabaseHealthChecker struct {
	db       *gorm.DB
	sessions SessionCounter
	table    string
}

// NewDatabaseHealthChecker creates a checker for db. sessions may be nil.
func NewDatabaseHealthChecker(db *gorm.DB, sessions SessionCounter) *DatabaseHealthChecker {
	return &DatabaseHealthChecker{db: db, sessions: sessions, table: "session_flags"}
}

// Check pings the database and verifies the flag table has been migrated
func (d *DatabaseHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "database",
		Details:   make(map[string]interface{}),
	}

	if d.db == nil {
		status.Status = "unhealthy"
		status.Error = "database instance is nil"
		return status
	}

	sqlDB, err := d.db.DB()
	if err != nil {
		status.Status = "unhealthy"
		status.Error = "failed to get underlying database connection"
		return status
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		status.Status = "unhealthy"
		status.Error = err.Error()
		return status
	}

	stats := sqlDB.Stats()
	status.Details["openConnections"] = stats.OpenConnections
	status.Details["inUse"] = stats.InUse

	if !d.db.WithContext(ctx).Migrator().HasTable(d.table) {
		status.Status = "unhealthy"
		status.Error = "table " + d.table + " is missing"
		return status
	}

	if d.sessions != nil {
		count, err := d.sessions.CountSessions(ctx)
		if err != nil {
			status.Status = "unhealthy"
			status.Error = err.Error()
			return status
		}
		status.Details["persistedSessions"] = count
	}

	status.Status = "healthy"
	return status
}
