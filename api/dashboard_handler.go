package api

import (
	"net/http"
	"strconv"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type dashboardHandler struct {
	responder  Responder
	logger     zerolog.Logger
	stats      StatsStore
	activities ActivityStore
}

func newDashboardHandler(stats StatsStore, activities ActivityStore) dashboardHandler {
	logger := log.With().Str("handlerName", "dashboardHandler").Logger()

	return dashboardHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		stats:      stats,
		activities: activities,
	}
}

// getDashboard returns the headline counts and the recent activity feed
// @Summary Admin dashboard
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param activity query int false "number of activity entries, default 10"
// @Success 200 {object} models.Dashboard
// @Failure 401 {object} ErrorResponse
// @Router /admin/dashboard [get]
func (h dashboardHandler) getDashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := database.DefaultRecentActivity
		if raw := r.URL.Query().Get("activity"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 || n > 100 {
				h.responder.WriteError(w, errs.NewInvalidFieldError("activity", "must be between 1 and 100"))
				return
			}
			limit = n
		}

		var dashboard models.Dashboard
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() error {
			stats, err := h.stats.Stats(ctx)
			dashboard.Stats = stats
			return err
		})
		g.Go(func() error {
			activity, err := h.activities.Recent(ctx, limit)
			dashboard.RecentActivity = activity
			return err
		})
		if err := g.Wait(); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if dashboard.RecentActivity == nil {
			dashboard.RecentActivity = []models.Activity{}
		}

		if claims := ctxGetClaims(r.Context()); claims != nil {
			h.logger.Debug().Int64("tokenIssuedAt", claims.Timestamp).Msg("Dashboard served")
		}
		h.responder.WriteJSON(w, dashboard)
	}
}
