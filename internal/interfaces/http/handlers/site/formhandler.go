package site

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ilim-academy/website/internal/domain/locale"
	"github.com/ilim-academy/website/internal/infrastructure/backend"
	"github.com/ilim-academy/website/internal/interfaces/dto"
	"github.com/ilim-academy/website/internal/interfaces/http/handlers/common"
	"github.com/ilim-academy/website/internal/interfaces/http/middleware"
	"github.com/ilim-academy/website/internal/interfaces/http/view"
	apperrors "github.com/ilim-academy/website/internal/shared/errors"
	"github.com/ilim-academy/website/internal/shared/utils"
)

type ContactSubmitter interface {
	Submit(ctx context.Context, in backend.ContactSubmission) (*backend.Contact, error)
}

type VolunteerSubmitter interface {
	Submit(ctx context.Context, in backend.VolunteerApplication) (*backend.Volunteer, error)
}

// FormHandler shows and accepts the contact and volunteer forms.
type FormHandler struct {
	*common.PageBase
	contacts   ContactSubmitter
	volunteers VolunteerSubmitter
}

func NewFormHandler(base *common.PageBase, contacts ContactSubmitter, volunteers VolunteerSubmitter) *FormHandler {
	return &FormHandler{
		PageBase:   base,
		contacts:   contacts,
		volunteers: volunteers,
	}
}

func (h *FormHandler) ContactPage(c *gin.Context) {
	h.Render(c, http.StatusOK, "contact", h.NewPage(c, locale.TopicContact))
}

func (h *FormHandler) VolunteerPage(c *gin.Context) {
	h.Render(c, http.StatusOK, "volunteer", h.NewPage(c, locale.TopicVolunteer))
}

func (h *FormHandler) SubmitContact(c *gin.Context) {
	var form dto.ContactForm
	page := h.NewPage(c, locale.TopicContact)
	if err := c.ShouldBind(&form); err != nil {
		h.GetLogger().Ctx(c.Request.Context()).Warnw("invalid contact form", "error", err)
		h.failed(c, page, http.StatusBadRequest, page.T("messages.validation_failed"))
		return
	}
	form.Normalize()
	page.Form = form.Values()

	if fields, err := utils.ValidateStruct(&form); err != nil {
		common.SetFieldErrors(page, fields)
		h.failed(c, page, http.StatusUnprocessableEntity, page.T("messages.validation_failed"))
		return
	}

	if _, err := h.contacts.Submit(c.Request.Context(), form.ToSubmission(middleware.GetLanguage(c))); err != nil {
		h.GetLogger().Ctx(c.Request.Context()).Errorw("failed to submit contact form", "error", err)
		h.failed(c, page, submitStatus(err), submitMessage(page, err))
		return
	}

	page.Form = map[string]string{}
	common.SetAlert(page, view.AlertSuccess, page.T("messages.contact_sent"))
	h.Render(c, http.StatusOK, "contact", page)
}

func (h *FormHandler) SubmitVolunteer(c *gin.Context) {
	var form dto.VolunteerForm
	page := h.NewPage(c, locale.TopicVolunteer)
	if err := c.ShouldBind(&form); err != nil {
		h.GetLogger().Ctx(c.Request.Context()).Warnw("invalid volunteer form", "error", err)
		h.failed(c, page, http.StatusBadRequest, page.T("messages.validation_failed"))
		return
	}
	form.Normalize()
	page.Form = form.Values()

	if fields, err := utils.ValidateStruct(&form); err != nil {
		common.SetFieldErrors(page, fields)
		h.failed(c, page, http.StatusUnprocessableEntity, page.T("messages.validation_failed"))
		return
	}

	if _, err := h.volunteers.Submit(c.Request.Context(), form.ToApplication(middleware.GetLanguage(c))); err != nil {
		h.GetLogger().Ctx(c.Request.Context()).Errorw("failed to submit volunteer application", "error", err)
		h.failed(c, page, submitStatus(err), submitMessage(page, err))
		return
	}

	page.Form = map[string]string{}
	common.SetAlert(page, view.AlertSuccess, page.T("messages.volunteer_sent"))
	h.Render(c, http.StatusOK, "volunteer", page)
}

// RateLimited re-renders the submitted form with the rate limit notice. It
// matches middleware.Rejector.
func (h *FormHandler) RateLimited(c *gin.Context, status int, _ string) {
	var (
		page *view.Page
		name string
	)
	switch c.FullPath() {
	case "/volunteer":
		page, name = h.NewPage(c, locale.TopicVolunteer), "volunteer"
		var form dto.VolunteerForm
		_ = c.ShouldBind(&form)
		page.Form = form.Values()
	default:
		page, name = h.NewPage(c, locale.TopicContact), "contact"
		var form dto.ContactForm
		_ = c.ShouldBind(&form)
		page.Form = form.Values()
	}
	common.SetAlert(page, view.AlertError, page.T("messages.rate_limited"))
	h.Render(c, status, name, page)
}

func (h *FormHandler) failed(c *gin.Context, page *view.Page, status int, message string) {
	common.SetAlert(page, view.AlertError, message)
	name := "contact"
	if page.Topic == locale.TopicVolunteer {
		name = "volunteer"
	}
	h.Render(c, status, name, page)
}

// submitStatus maps a backend failure to the status of the re-rendered form.
func submitStatus(err error) int {
	if appErr := apperrors.GetAppError(err); appErr != nil && appErr.Code >= 400 && appErr.Code < 500 {
		return appErr.Code
	}
	return http.StatusBadGateway
}

// submitMessage prefers the backend's own message for client errors and the
// localized generic text otherwise.
func submitMessage(page *view.Page, err error) string {
	generic := page.T("messages.submit_failed")
	if appErr := apperrors.GetAppError(err); appErr != nil && appErr.Code >= 400 && appErr.Code < 500 {
		return apperrors.Message(err, generic)
	}
	return generic
}
