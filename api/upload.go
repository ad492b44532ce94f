// ABOUTME: Multipart profile image upload
// ABOUTME: Bypasses the JSON content type but keeps the bearer and refresh-retry policy

package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/tutorlink/tutorlink-go/models"
)

// UploadProfileImage sends an image through the standard request
// pipeline. The form is buffered up front so the 401 retry can replay
// the identical body.
func (c *Client) UploadProfileImage(ctx context.Context, filename string, image io.Reader) (*models.UploadResponse, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize upload form: %w", err)
	}

	var out models.UploadResponse
	if err := c.request(ctx, http.MethodPost, "/upload/profile-image/", buf.Bytes(), writer.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
