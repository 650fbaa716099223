// Package client is a Go client for the portfolio API. It implements the
// editing protocol the browser client uses: the plaintext editor code is the
// credential and is re-sent on every write, and after a successful save the
// client re-fetches the full record rather than trusting its local copy.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"folio/api/internal/store"
)

type Client struct {
	baseURL    string
	password   string
	httpClient *http.Client
}

func New(baseURL, password string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		password:   password,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Portfolio fetches the singleton record.
func (c *Client) Portfolio(ctx context.Context) (store.Portfolio, error) {
	var portfolio store.Portfolio
	if err := c.get(ctx, "/api/portfolio", &portfolio); err != nil {
		return store.Portfolio{}, err
	}
	return portfolio, nil
}

// VerifyPassword checks the configured editor code against the server. A
// wrong code reports false, not an error; errors are transport-level only.
func (c *Client) VerifyPassword(ctx context.Context) (bool, error) {
	body, err := json.Marshal(map[string]string{"password": c.password})
	if err != nil {
		return false, err
	}
	resp, err := c.post(ctx, "/api/verify-password", body)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusUnauthorized:
		return false, nil
	default:
		return false, apiError(resp)
	}
}

// UpdatePortfolio sends a partial field-level update and then unconditionally
// re-fetches the record, returning the canonical server state. Fields use the
// wire names the server maps (student_details, typing_texts, ...); values
// must be complete replacements for the field they name.
func (c *Client) UpdatePortfolio(ctx context.Context, updates map[string]json.RawMessage) (store.Portfolio, error) {
	body, err := json.Marshal(map[string]any{
		"password": c.password,
		"updates":  updates,
	})
	if err != nil {
		return store.Portfolio{}, err
	}
	resp, err := c.post(ctx, "/api/portfolio/update", body)
	if err != nil {
		return store.Portfolio{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return store.Portfolio{}, apiError(resp)
	}
	// Drain the save response; the re-fetch below is the source of truth.
	_, _ = io.Copy(io.Discard, resp.Body)

	return c.Portfolio(ctx)
}

// CaptureVisitor records a visitor email.
func (c *Client) CaptureVisitor(ctx context.Context, email string) (store.Visitor, error) {
	body, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return store.Visitor{}, err
	}
	resp, err := c.post(ctx, "/api/visitors", body)
	if err != nil {
		return store.Visitor{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return store.Visitor{}, apiError(resp)
	}
	var visitor store.Visitor
	if err := json.NewDecoder(resp.Body).Decode(&visitor); err != nil {
		return store.Visitor{}, fmt.Errorf("decode visitor: %w", err)
	}
	return visitor, nil
}

// Visitors lists captured emails, newest first.
func (c *Client) Visitors(ctx context.Context) ([]store.Visitor, error) {
	var visitors []store.Visitor
	if err := c.get(ctx, "/api/visitors", &visitors); err != nil {
		return nil, err
	}
	return visitors, nil
}

// Upload stores an image and returns its public URL.
func (c *Client) Upload(ctx context.Context, filename string, reader io.Reader) (string, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	part, err := form.CreateFormFile("image", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, reader); err != nil {
		return "", err
	}
	if err := form.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apiError(resp)
	}
	var payload struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	return payload.URL, nil
}

func (c *Client) get(ctx context.Context, path string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.httpClient.Do(req)
}

// APIError is a non-2xx response decoded into the server's failure shape.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

func apiError(resp *http.Response) error {
	var payload struct {
		Code  string `json:"code"`
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       payload.Code,
		Message:    payload.Error,
	}
}
