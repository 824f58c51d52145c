package controllers

import (
	"net/http"

	"github.com/mahfuzanam/bloodlink/app/services"
	"github.com/mahfuzanam/bloodlink/pkg/response"
)

// StatsController serves the admin dashboard aggregates.
type StatsController struct {
	stats *services.StatsService
}

func NewStatsController(stats *services.StatsService) *StatsController {
	return &StatsController{stats: stats}
}

// Admin handles GET /admin-stats.
func (c *StatsController) Admin(w http.ResponseWriter, r *http.Request) {
	stats, err := c.stats.Admin(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, stats)
}
