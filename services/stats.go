package services

import "freelance-backend/models"

type DashboardStats struct {
	Total            int     `json:"total"`
	Ongoing          int     `json:"ongoing"`
	Completed        int     `json:"completed"`
	OngoingRevenue   float64 `json:"ongoingRevenue"`
	CompletedRevenue float64 `json:"completedRevenue"`
}

// ComputeDashboardStats partitions projects into done and not done and sums
// totalPrice over each side.
func ComputeDashboardStats(projects []models.Project) DashboardStats {
	stats := DashboardStats{Total: len(projects)}
	for _, p := range projects {
		if p.Status == models.StatusDone {
			stats.Completed++
			stats.CompletedRevenue += p.TotalPrice
		} else {
			stats.Ongoing++
			stats.OngoingRevenue += p.TotalPrice
		}
	}
	return stats
}
