package admin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/ilim-academy/website/internal/infrastructure/backend"
	"github.com/ilim-academy/website/internal/interfaces/http/handlers/common"
	"github.com/ilim-academy/website/internal/interfaces/http/view"
	"github.com/ilim-academy/website/internal/shared/fetch"
)

type StatsAPI interface {
	Stats(ctx context.Context) (*backend.DashboardStats, error)
}

// DashboardHandler handles the admin dashboard page.
type DashboardHandler struct {
	*common.PageBase
	stats StatsAPI
}

func NewDashboardHandler(base *common.PageBase, stats StatsAPI) *DashboardHandler {
	return &DashboardHandler{
		PageBase: base,
		stats:    stats,
	}
}

type dashboardView struct {
	Stats backend.DashboardStats
}

// Dashboard handles GET /admin. Failed stats show as zeros with an error banner.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	res := fetch.New(
		func(ctx context.Context) (backend.DashboardStats, error) {
			s, err := h.stats.Stats(ctx)
			if err != nil {
				return backend.DashboardStats{}, err
			}
			return *s, nil
		},
		fetch.WithFallback(backend.DashboardStats{}),
		fetch.WithErrorHook[backend.DashboardStats](h.SessionHook(c)),
	)

	var (
		page  *view.Page
		state fetch.State[backend.DashboardStats]
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		state = res.Load(ctx)
		return nil
	})
	g.Go(func() error {
		page = h.NewAdminPage(c)
		return nil
	})
	_ = g.Wait()

	if common.SessionCleared(c) {
		common.RedirectToLogin(c)
		return
	}

	if state.Failed() {
		common.SetAlert(page, view.AlertError, state.Err)
	}
	page.Data = dashboardView{Stats: *state.Data}
	h.Render(c, http.StatusOK, "admin_dashboard", page)
}
