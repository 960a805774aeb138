package admin

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ilim-academy/website/internal/infrastructure/backend"
	"github.com/ilim-academy/website/internal/interfaces/dto"
	"github.com/ilim-academy/website/internal/interfaces/http/handlers/common"
	"github.com/ilim-academy/website/internal/interfaces/http/view"
	apperrors "github.com/ilim-academy/website/internal/shared/errors"
	"github.com/ilim-academy/website/internal/shared/fetch"
	"github.com/ilim-academy/website/internal/shared/utils"
)

// maxRawUploadBytes bounds the file read from the request before compression.
const maxRawUploadBytes = 16 << 20

const defaultUploadFolder = "general"

type SettingsService interface {
	Refresh(ctx context.Context) fetch.State[backend.Settings]
	Update(ctx context.Context, in backend.Settings) (*backend.Settings, error)
}

type ImageUploader interface {
	UploadImage(ctx context.Context, filename string, data []byte, folder string) (*backend.UploadResult, error)
}

// SettingHandler handles the site settings form and image uploads.
type SettingHandler struct {
	*common.PageBase
	settings SettingsService
	uploader ImageUploader
}

func NewSettingHandler(base *common.PageBase, settings SettingsService, uploader ImageUploader) *SettingHandler {
	return &SettingHandler{
		PageBase: base,
		settings: settings,
		uploader: uploader,
	}
}

// Page handles GET /admin/settings
func (h *SettingHandler) Page(c *gin.Context) {
	state := h.settings.Refresh(c.Request.Context())

	page := h.NewAdminPage(c)
	form := dto.SettingsFormFrom(*state.Data)
	page.Form = form.Values()
	h.Render(c, http.StatusOK, "admin_settings", page)
}

// Save handles POST /admin/settings
func (h *SettingHandler) Save(c *gin.Context) {
	var form dto.SettingsForm
	if err := c.ShouldBind(&form); err != nil {
		h.RenderError(c, http.StatusBadRequest, err.Error())
		return
	}

	page := h.NewAdminPage(c)
	page.Form = form.Values()
	if fields, err := utils.ValidateStruct(&form); err != nil {
		common.SetFieldErrors(page, fields)
		common.SetAlert(page, view.AlertError, page.T("messages.validation_failed"))
		h.Render(c, http.StatusUnprocessableEntity, "admin_settings", page)
		return
	}

	current := h.settings.Refresh(c.Request.Context())
	saved, err := h.settings.Update(c.Request.Context(), form.ToSettings(*current.Data))
	if err != nil {
		if h.HandleMutationError(c, err) {
			return
		}
		h.GetLogger().Ctx(c.Request.Context()).Warnw("failed to update settings", "error", err)
		status := http.StatusBadGateway
		if appErr := apperrors.GetAppError(err); appErr != nil && appErr.Code >= 400 && appErr.Code < 500 {
			status = appErr.Code
		}
		common.SetAlert(page, view.AlertError, apperrors.Message(err, page.T("messages.error_generic")))
		h.Render(c, status, "admin_settings", page)
		return
	}

	page.Settings = *saved
	page.SettingsErr = ""
	saveForm := dto.SettingsFormFrom(*saved)
	page.Form = saveForm.Values()
	common.SetAlert(page, view.AlertSuccess, page.T("admin.saved"))
	h.Render(c, http.StatusOK, "admin_settings", page)
}

// Upload handles POST /admin/uploads. Errors are attached to the context and
// written as JSON by the error handler middleware.
func (h *SettingHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		_ = c.Error(apperrors.NewValidationError("image file is required"))
		return
	}
	if file.Size > maxRawUploadBytes {
		_ = c.Error(&apperrors.AppError{
			Type:    apperrors.ErrorTypeValidation,
			Message: "image file is too large",
			Code:    http.StatusRequestEntityTooLarge,
		})
		return
	}

	f, err := file.Open()
	if err != nil {
		_ = c.Error(apperrors.NewValidationError("image file could not be read"))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxRawUploadBytes))
	if err != nil {
		_ = c.Error(apperrors.NewValidationError("image file could not be read"))
		return
	}

	var form dto.UploadForm
	_ = c.ShouldBind(&form)
	folder := form.Folder
	if folder == "" {
		folder = defaultUploadFolder
	}

	result, err := h.uploader.UploadImage(c.Request.Context(), file.Filename, data, folder)
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			h.ClearSession(c)
		}
		_ = c.Error(err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "image uploaded", result)
}
