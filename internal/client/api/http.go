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
	"net/url"
	"strings"
	"time"
)

const defaultHTTPTimeout = 60 * time.Second

// genericErrorMessage is surfaced when a failing response carries no error
// field of its own.
const genericErrorMessage = "Something went wrong. Please try again."

// HTTPClient talks JSON and multipart to the RecallAI backend.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes the HTTP client.
type Option func(*HTTPClient)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *HTTPClient) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *HTTPClient) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewHTTPClient constructs a backend client rooted at baseURL.
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	client := &HTTPClient{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type uploadResponse struct {
	UploadNo string `json:"upload_no"`
}

func (c *HTTPClient) UploadFile(ctx context.Context, name string, r io.Reader) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", name)
	if err != nil {
		return "", fmt.Errorf("upload file: build form: %w", err)
	}
	if _, err := io.Copy(fw, r); err != nil {
		return "", fmt.Errorf("upload file: read %s: %w", name, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("upload file: finalize form: %w", err)
	}

	respBody, err := c.post(ctx, "/upload/file", mw.FormDataContentType(), &body)
	if err != nil {
		return "", fmt.Errorf("upload file: %w", err)
	}

	var resp uploadResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("upload file: decode response: %w", err)
	}
	if resp.UploadNo == "" {
		return "", errors.New("upload file: backend returned no upload identifier")
	}
	return resp.UploadNo, nil
}

func (c *HTTPClient) UploadYouTube(ctx context.Context, videoURL string) (string, error) {
	payload, err := json.Marshal(map[string]string{"url": videoURL})
	if err != nil {
		return "", fmt.Errorf("upload youtube: encode request: %w", err)
	}

	respBody, err := c.post(ctx, "/upload/youtube", "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("upload youtube: %w", err)
	}

	var resp uploadResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("upload youtube: decode response: %w", err)
	}
	if resp.UploadNo == "" {
		return "", errors.New("upload youtube: backend returned no upload identifier")
	}
	return resp.UploadNo, nil
}

func (c *HTTPClient) Ask(ctx context.Context, question string, uploadNo string) (*AskResult, error) {
	payload, err := json.Marshal(map[string]string{
		"question":  question,
		"upload_no": uploadNo,
	})
	if err != nil {
		return nil, fmt.Errorf("ask: encode request: %w", err)
	}

	respBody, err := c.post(ctx, "/ask", "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("ask: %w", err)
	}

	var result AskResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("ask: decode response: %w", err)
	}
	return &result, nil
}

// post sends one request and returns the response body, converting non-2xx
// responses into a *BackendError.
func (c *HTTPClient) post(ctx context.Context, path string, contentType string, body io.Reader) ([]byte, error) {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return nil, fmt.Errorf("build url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, errorFromResponse(resp.StatusCode, respBody)
	}
	return respBody, nil
}
