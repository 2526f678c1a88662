package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
)

// APIError is a non-2xx response from a backend. Status is preserved so
// callers can tell "not found" apart from other failures.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status code = %d)", e.Message, e.Status)
}

// IsNotFound reports whether err is an APIError with HTTP 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsUnauthorized reports whether err is an APIError with HTTP 401.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

func (c *client) newRequest(ctx context.Context, method, rawurl string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawurl, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token, ok := c.session.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// doJSON sends a request with an optional JSON body and decodes a JSON
// response into out (skipped when out is nil).
func (c *client) doJSON(ctx context.Context, method, rawurl string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(buf)
		contentType = "application/json"
	}
	req, err := c.newRequest(ctx, method, rawurl, body, contentType)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

// doForm sends a URL-encoded form and decodes a JSON response into out.
func (c *client) doForm(ctx context.Context, method, rawurl string, form url.Values, out any) error {
	req, err := c.newRequest(ctx, method, rawurl, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *client) do(req *http.Request, out any) error {
	resp, err := c.httpclient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", req.URL.Host, err)
	}
	defer resp.Body.Close()

	logrus.WithFields(logrus.Fields{
		"method": req.Method,
		"url":    req.URL.String(),
		"status": resp.StatusCode,
	}).Debug("api call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.asError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("failed to decode response (status code = %d): %w", resp.StatusCode, err)
	}
	return nil
}

// asError converts a non-2xx response into *APIError. An expired or invalid
// credential also drops the stored session so the next command starts
// logged out.
func (c *client) asError(resp *http.Response) error {
	if resp.StatusCode == http.StatusUnauthorized {
		c.session.Clear()
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Status: resp.StatusCode, Message: genericMessage(resp.StatusCode)}
	}
	return &APIError{Status: resp.StatusCode, Message: parseErrorDetail(body, resp.StatusCode)}
}

// parseErrorDetail extracts the `detail` message of an error body, falling
// back to a generic status-derived message.
func parseErrorDetail(body []byte, status int) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(payload.Detail, &detail); err == nil && detail != "" {
			return detail
		}
		// fastapi validation errors carry a structured detail
		return string(payload.Detail)
	}
	return genericMessage(status)
}

func genericMessage(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "request failed"
	}
	return strings.ToLower(text)
}
