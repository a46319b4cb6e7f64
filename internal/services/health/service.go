// Package health reports process liveness and dependency reachability for
// load balancer and uptime probes.
package health

import (
	"context"
	"database/sql"
	"time"
)

const pingTimeout = 2 * time.Second

// Status is the health probe payload.
type Status struct {
	OK       bool            `json:"ok"`
	Checks   map[string]bool `json:"checks,omitempty"`
	Database string          `json:"database"`
}

// Service encapsulates health checks.
type Service struct {
	DB *sql.DB
}

// NewService constructs a health service. db may be nil when running on
// in-memory repositories.
func NewService(db *sql.DB) *Service {
	return &Service{DB: db}
}

// Status pings the database when one is configured. The LLM provider is not
// probed here: its availability check costs a real completion call.
func (s *Service) Status(ctx context.Context) Status {
	st := Status{OK: true, Checks: map[string]bool{}, Database: "memory"}
	if s.DB == nil {
		return st
	}

	st.Database = "postgres"
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.DB.PingContext(ctx); err != nil {
		st.OK = false
		st.Checks["database"] = false
		return st
	}
	st.Checks["database"] = true
	return st
}
