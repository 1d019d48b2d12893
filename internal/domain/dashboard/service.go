package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetStats returns the combined dashboard using parallel queries
	GetStats(ctx context.Context) (*StatsResponse, error)
}
