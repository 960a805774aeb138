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

type ContactsAPI interface {
	List(ctx context.Context, params backend.ListParams) (*backend.ContactList, error)
	UpdateStatus(ctx context.Context, id, status string) (*backend.Contact, error)
	Delete(ctx context.Context, id string) error
}

type ContactHandler struct {
	*common.PageBase
	contacts ContactsAPI
}

func NewContactHandler(base *common.PageBase, contacts ContactsAPI) *ContactHandler {
	return &ContactHandler{
		PageBase: base,
		contacts: contacts,
	}
}

type contactsView struct {
	Contacts []backend.Contact
	Query    utils.ListQuery
	Statuses []string
	Pager    view.Pager
}

// List handles GET /admin/contacts
func (h *ContactHandler) List(c *gin.Context) {
	q := utils.ParseListQuery(c)
	res := fetch.New(
		func(ctx context.Context) (backend.ContactList, error) {
			out, err := h.contacts.List(ctx, listParams(q))
			if err != nil {
				return backend.ContactList{}, err
			}
			return *out, nil
		},
		fetch.WithFallback(backend.ContactList{}),
		fetch.WithErrorHook[backend.ContactList](h.SessionHook(c)),
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
	page.Data = contactsView{
		Contacts: state.Data.Contacts,
		Query:    q,
		Statuses: dto.ContactStatuses,
		Pager:    common.NewPager(c, state.Data.Pagination),
	}
	h.Render(c, http.StatusOK, "admin_contacts", page)
}

// UpdateStatus handles POST /admin/contacts/:id/status
func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	var form dto.StatusForm
	if err := c.ShouldBind(&form); err != nil {
		h.RenderError(c, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := utils.ValidateStruct(&form); err != nil {
		h.RenderError(c, http.StatusBadRequest, "invalid status")
		return
	}

	if _, err := h.contacts.UpdateStatus(c.Request.Context(), c.Param("id"), form.Status); err != nil {
		h.MutationFailed(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin/contacts")
}

// Delete handles POST /admin/contacts/:id/delete
func (h *ContactHandler) Delete(c *gin.Context) {
	if err := h.contacts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.MutationFailed(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin/contacts")
}

func listParams(q utils.ListQuery) backend.ListParams {
	return backend.ListParams{
		Page:   q.Page,
		Limit:  q.Limit,
		Search: q.Search,
		Status: q.Status,
	}
}
