package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
)

// UploadPhoto sends the raw bytes of a staged image as a multipart form and
// returns the server-assigned photo id. fileName must carry the slot prefix
// produced by the filename generator; the backend re-derives slot placement
// from it, so it is sent as both title and file_name.
func (c *Client) UploadPhoto(ctx context.Context, perevalID int, fileName string, data []byte) (int, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	if err := form.WriteField("pereval_id", strconv.Itoa(perevalID)); err != nil {
		return 0, fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := form.WriteField("title", fileName); err != nil {
		return 0, fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := form.WriteField("file_name", fileName); err != nil {
		return 0, fmt.Errorf("failed to build upload form: %w", err)
	}
	part, err := form.CreateFormFile("image", fileName)
	if err != nil {
		return 0, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return 0, fmt.Errorf("failed to build upload form: %w", err)
	}
	if err := form.Close(); err != nil {
		return 0, fmt.Errorf("failed to build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/uploadImage/", &buf)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	var resp struct {
		State   int    `json:"state"`
		Message string `json:"message"`
		ID      int    `json:"id"`
	}
	if err := c.send(req, &resp); err != nil {
		return 0, err
	}
	if resp.ID == 0 {
		return 0, fmt.Errorf("%w: no image id in response", ErrBadResponse)
	}
	return resp.ID, nil
}

// DeletePhoto removes a photo by its server id. The acting user's email
// travels in the body; the backend rejects the call unless that user owns
// the parent record and the record is still in the editable status.
func (c *Client) DeletePhoto(ctx context.Context, photoID int, email string) error {
	body := map[string]string{"email": email}
	path := fmt.Sprintf("/api/uploadImage/delete/%d/", photoID)
	return c.doJSON(ctx, http.MethodDelete, path, body, nil)
}

// ListPhotos fetches the photo records attached to a pereval
func (c *Client) ListPhotos(ctx context.Context, perevalID int) ([]Photo, error) {
	var resp struct {
		State  int     `json:"state"`
		Photos []Photo `json:"photos"`
	}
	path := fmt.Sprintf("/api/uploadImage/photos/%d/", perevalID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Photos, nil
}
