package backend

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
)

type UploadsService struct {
	client *Client
}

// UploadImage posts the file as the "image" field with an optional "folder".
// The call is bounded by the client's upload timeout.
func (s *UploadsService) UploadImage(ctx context.Context, in ImageUpload) (*UploadResult, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, in.Filename))
	contentType := in.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("upload image: create part: %w", err)
	}
	if _, err := part.Write(in.Data); err != nil {
		return nil, fmt.Errorf("upload image: write part: %w", err)
	}
	if in.Folder != "" {
		if err := w.WriteField("folder", in.Folder); err != nil {
			return nil, fmt.Errorf("upload image: write folder: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("upload image: close form: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.client.uploadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.client.endpoint("/uploads/image", nil), &buf)
	if err != nil {
		return nil, fmt.Errorf("upload image: create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var result UploadResult
	if err := s.client.do(req, &result); err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}
	return &result, nil
}
