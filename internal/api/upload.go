package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// UploadResult carries the served URL of an uploaded file.
type UploadResult struct {
	URL string `json:"url"`
}

// UploadImage posts an image as multipart form data (fields: file, type)
// and returns its URL. Uploads get a longer timeout than JSON requests.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader, kind string) (string, error) {
	if r == nil {
		return "", &ValidationError{Field: "file", Reason: "no file to upload"}
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("failed to read upload file: %w", err)
	}
	if kind != "" {
		if err := mw.WriteField("type", kind); err != nil {
			return "", fmt.Errorf("failed to build upload form: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize upload form: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.uploadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload/image", &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("upload request", "filename", filename, "type", kind)

	// The JSON client's short Timeout would cap the longer upload deadline,
	// so uploads go through their own client sharing the session jar.
	uploadClient := &http.Client{
		Timeout: c.uploadTimeout,
		Jar:     c.httpClient.Jar,
	}
	resp, err := uploadClient.Do(req)
	if err != nil {
		kind := KindNoResponse
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			kind = KindTimeout
		}
		return "", &TransportError{Kind: kind, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Kind: KindNoResponse, Err: err}
	}

	if resp.StatusCode >= 400 {
		return "", &TransportError{
			Kind:    KindHTTPError,
			Status:  resp.StatusCode,
			Message: backendMessage(body),
		}
	}

	var result UploadResult
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse upload response: %w", err)
	}
	return result.URL, nil
}
