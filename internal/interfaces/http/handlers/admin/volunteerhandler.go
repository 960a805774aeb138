package admin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ilim-academy/website/internal/infrastructure/backend"
	"github.com/ilim-academy/website/internal/interfaces/dto"
	"github.com/ilim-academy/website/internal/interfaces/http/handlers/common"
	"github.com/ilim-academy/website/internal/interfaces/http/view"
	"github.com/ilim-academy/website/internal/shared/fetch"
	"github.com/ilim-academy/website/internal/shared/utils"
)

type VolunteersAPI interface {
	List(ctx context.Context, params backend.ListParams) (*backend.VolunteerList, error)
	Review(ctx context.Context, id string, review backend.VolunteerReview) (*backend.Volunteer, error)
	Delete(ctx context.Context, id string) error
}

type VolunteerHandler struct {
	*common.PageBase
	volunteers VolunteersAPI
}

func NewVolunteerHandler(base *common.PageBase, volunteers VolunteersAPI) *VolunteerHandler {
	return &VolunteerHandler{
		PageBase:   base,
		volunteers: volunteers,
	}
}

type volunteersView struct {
	Volunteers []backend.Volunteer
	Query      utils.ListQuery
	Statuses   []string
	Pager      view.Pager
}

// List handles GET /admin/volunteers
func (h *VolunteerHandler) List(c *gin.Context) {
	q := utils.ParseListQuery(c)
	res := fetch.New(
		func(ctx context.Context) (backend.VolunteerList, error) {
			out, err := h.volunteers.List(ctx, listParams(q))
			if err != nil {
				return backend.VolunteerList{}, err
			}
			return *out, nil
		},
		fetch.WithFallback(backend.VolunteerList{}),
		fetch.WithErrorHook[backend.VolunteerList](h.SessionHook(c)),
	)
	state := res.Load(c.Request.Context())
	if common.SessionCleared(c) {
		common.RedirectToLogin(c)
		return
	}

	page := h.NewAdminPage(c)
	if state.Failed() {
		common.SetAlert(page, view.AlertError, state.Err)
	}
	page.Data = volunteersView{
		Volunteers: state.Data.Volunteers,
		Query:      q,
		Statuses:   dto.VolunteerStatuses,
		Pager:      common.NewPager(c, state.Data.Pagination),
	}
	h.Render(c, http.StatusOK, "admin_volunteers", page)
}

// Review handles POST /admin/volunteers/:id/review
func (h *VolunteerHandler) Review(c *gin.Context) {
	var form dto.ReviewForm
	if err := c.ShouldBind(&form); err != nil {
		h.RenderError(c, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := utils.ValidateStruct(&form); err != nil {
		h.RenderError(c, http.StatusBadRequest, "invalid review")
		return
	}

	if _, err := h.volunteers.Review(c.Request.Context(), c.Param("id"), form.ToReview()); err != nil {
		h.MutationFailed(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin/volunteers")
}

// Delete handles POST /admin/volunteers/:id/delete
func (h *VolunteerHandler) Delete(c *gin.Context) {
	if err := h.volunteers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.MutationFailed(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin/volunteers")
}
