package client

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
)

// UploadProductImage sends one image through the backend's multipart upload
// endpoint and returns the stored image URL.
//
// The file is validated before any request goes out: a missing name or an
// empty body is rejected locally. Rate-limited attempts (429) are retried
// with exponential backoff until the attempt budget is spent; any other
// failure propagates immediately. retries is the total attempt budget for
// this call; zero or negative falls back to the configured default.
func (c *Client) UploadProductImage(ctx context.Context, productID int, filename string, content []byte, retries int) (string, error) {
	if productID == 0 {
		return "", &ValidationError{Message: "product id is required"}
	}
	if filename == "" {
		return "", &ValidationError{Message: "image file is missing"}
	}
	if len(content) == 0 {
		return "", &ValidationError{Message: "image file is empty"}
	}
	if retries <= 0 {
		retries = c.retryBudget
	}

	path := fmt.Sprintf("/api/products/%d/images", productID)
	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		resp, err := c.http.R().
			SetContext(ctx).
			SetFileReader("image", filename, bytes.NewReader(content)).
			Post(path)
		if err != nil {
			return "", err
		}

		if !resp.IsError() {
			var uploaded struct {
				Url string `json:"url"`
			}
			if err := decodeBody(resp.Body(), &uploaded); err != nil {
				return "", err
			}
			return uploaded.Url, nil
		}

		lastErr = c.apiError(resp)
		if resp.StatusCode() != http.StatusTooManyRequests || attempt == retries {
			return "", lastErr
		}
		if err := sleep(ctx, c.backoff(attempt)); err != nil {
			return "", err
		}
	}
	return "", lastErr
}
