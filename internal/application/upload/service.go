// Package upload gates admin image uploads: content sniffing, compression and
// the post-compression size limit are all checked before any network call.
package upload

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/ilim-academy/website/internal/infrastructure/backend"
	apperrors "github.com/ilim-academy/website/internal/shared/errors"
	"github.com/ilim-academy/website/internal/shared/logger"
)

// DefaultMaxBytes is the largest payload the backend accepts after compression.
const DefaultMaxBytes int64 = 1 << 20

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

var folderPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,31}$`)

// Compressor shrinks image bytes, possibly changing the format.
type Compressor interface {
	Compress(data []byte, mimeType string) ([]byte, string, error)
}

// Uploader sends the final image to the backend.
type Uploader interface {
	UploadImage(ctx context.Context, in backend.ImageUpload) (*backend.UploadResult, error)
}

type Service struct {
	uploader   Uploader
	compressor Compressor
	maxBytes   int64
	logger     logger.Interface
}

func NewService(uploader Uploader, compressor Compressor, maxBytes int64, log logger.Interface) *Service {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		uploader:   uploader,
		compressor: compressor,
		maxBytes:   maxBytes,
		logger:     log,
	}
}

// UploadImage validates, compresses and uploads one image. The backend's
// {url, filename, size} result is returned unchanged.
func (s *Service) UploadImage(ctx context.Context, filename string, data []byte, folder string) (*backend.UploadResult, error) {
	log := s.logger.Ctx(ctx)

	if len(data) == 0 {
		return nil, apperrors.NewValidationError("image is empty")
	}
	if folder != "" && !folderPattern.MatchString(folder) {
		return nil, apperrors.NewValidationError("invalid folder name", folder)
	}

	mimeType := mimetype.Detect(data).String()
	if _, ok := allowedImageTypes[mimeType]; !ok {
		log.Warnw("rejected upload with unsupported type",
			"detected_mime", mimeType,
			"filename", filename,
		)
		return nil, apperrors.NewValidationError("only JPEG, PNG, GIF and WebP images are allowed")
	}

	out, outType := data, mimeType
	if s.compressor != nil {
		compressed, compressedType, err := s.compressor.Compress(data, mimeType)
		if err != nil {
			return nil, apperrors.NewValidationError("image could not be processed", err.Error())
		}
		out, outType = compressed, compressedType
	}

	if int64(len(out)) > s.maxBytes {
		log.Infow("rejected upload over size limit after compression",
			"filename", filename,
			"original_size", len(data),
			"compressed_size", len(out),
			"limit", s.maxBytes,
		)
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("image must be at most %d KB after compression", s.maxBytes/1024),
		)
	}

	result, err := s.uploader.UploadImage(ctx, backend.ImageUpload{
		Filename:    uploadName(filename, outType),
		ContentType: outType,
		Data:        out,
		Folder:      folder,
	})
	if err != nil {
		return nil, err
	}

	log.Infow("image uploaded",
		"filename", result.Filename,
		"size", result.Size,
	)
	return result, nil
}

// uploadName keeps the base name and fixes the extension to match mimeType.
func uploadName(filename, mimeType string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.TrimSuffix(base, path.Ext(base))
	if base == "" || base == "." || base == "/" {
		base = "image"
	}
	return base + allowedImageTypes[mimeType]
}
