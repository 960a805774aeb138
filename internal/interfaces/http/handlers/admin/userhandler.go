package admin

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ilim-academy/website/internal/infrastructure/backend"
	"github.com/ilim-academy/website/internal/interfaces/http/handlers/common"
	"github.com/ilim-academy/website/internal/interfaces/http/view"
	"github.com/ilim-academy/website/internal/shared/fetch"
	"github.com/ilim-academy/website/internal/shared/utils"
)

type UsersAPI interface {
	List(ctx context.Context, params backend.ListParams) (*backend.UserList, error)
	Delete(ctx context.Context, id string) error
}

type UserHandler struct {
	*common.PageBase
	users UsersAPI
}

func NewUserHandler(base *common.PageBase, users UsersAPI) *UserHandler {
	return &UserHandler{
		PageBase: base,
		users:    users,
	}
}

type usersView struct {
	Users []backend.User
	Query utils.ListQuery
	Pager view.Pager
}

// List handles GET /admin/users. A 401 from the backend clears both tokens
// and sends the browser back to the login page.
func (h *UserHandler) List(c *gin.Context) {
	q := utils.ParseListQuery(c)
	res := fetch.New(
		func(ctx context.Context) (backend.UserList, error) {
			out, err := h.users.List(ctx, listParams(q))
			if err != nil {
				return backend.UserList{}, err
			}
			return *out, nil
		},
		fetch.WithFallback(backend.UserList{}),
		fetch.WithPolicy[backend.UserList](fetch.ClearOnError),
		fetch.WithErrorHook[backend.UserList](h.SessionHook(c)),
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
	page.Data = usersView{
		Users: state.Data.Users,
		Query: q,
		Pager: common.NewPager(c, state.Data.Pagination),
	}
	h.Render(c, http.StatusOK, "admin_users", page)
}

// Delete handles POST /admin/users/:id/delete
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.MutationFailed(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin/users")
}
