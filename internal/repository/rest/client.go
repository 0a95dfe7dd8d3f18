package rest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/remote"
	"github.com/CSE2000/selfie-punchedIn-attendance-sub000/internal/domain/session"
	json "github.com/goccy/go-json"
	"golang.org/x/oauth2"
)

// maxBodyBytes caps how much of a backend answer is read.
const maxBodyBytes = 10 << 20

// Client talks to the attendance backend. The bearer token comes from the request context.
type Client struct {
	baseURL        string
	timeout        time.Duration
	httpClient     *http.Client
	onUnauthorized func(ctx context.Context) error
}

func NewClient(baseURL string, timeout time.Duration, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		httpClient: httpClient,
	}
}

// OnUnauthorized registers fn to run when the backend refuses a bearer token.
func (c *Client) OnUnauthorized(fn func(ctx context.Context) error) {
	c.onUnauthorized = fn
}

// FilePart is one file of a multipart body.
type FilePart struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// authorized wraps the base client with the context's bearer token, if any.
func (c *Client) authorized(ctx context.Context) *http.Client {
	raw := session.RawToken(ctx)
	if raw == "" {
		return c.httpClient
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: raw,
		TokenType:   "Bearer",
	}))
}

// GetJSON issues a GET and parses the envelope.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values) (Envelope, error) {
	return c.do(ctx, http.MethodGet, path, query, nil, "")
}

// SendJSON issues method with a JSON body.
func (c *Client) SendJSON(ctx context.Context, method, path string, payload interface{}) (Envelope, error) {
	var body io.Reader
	contentType := ""
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return Envelope{}, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, nil, body, contentType)
}

// SendMultipart issues method with a multipart/form-data body.
func (c *Client) SendMultipart(ctx context.Context, method, path string, fields [][2]string, files []FilePart) (Envelope, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for _, field := range fields {
		if err := writer.WriteField(field[0], field[1]); err != nil {
			return Envelope{}, fmt.Errorf("failed to write field %s: %w", field[0], err)
		}
	}
	for _, file := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.Field, file.Filename))
		header.Set("Content-Type", file.ContentType)
		part, err := writer.CreatePart(header)
		if err != nil {
			return Envelope{}, fmt.Errorf("failed to create part %s: %w", file.Field, err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return Envelope{}, fmt.Errorf("failed to write part %s: %w", file.Field, err)
		}
	}
	if err := writer.Close(); err != nil {
		return Envelope{}, fmt.Errorf("failed to close multipart body: %w", err)
	}

	return c.do(ctx, method, path, nil, &buf, writer.FormDataContentType())
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (Envelope, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.authorized(ctx).Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return Envelope{}, err
		}
		return Envelope{}, fmt.Errorf("%w: %v", remote.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", remote.ErrBackendUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &remote.APIError{StatusCode: resp.StatusCode}
		if env, err := ParseEnvelope(raw); err == nil {
			apiErr.Message = env.Message
		}
		slog.Warn("Backend request failed", "method", method, "path", path, "status", resp.StatusCode, "message", apiErr.Message)

		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil && session.RawToken(ctx) != "" {
			if err := c.onUnauthorized(context.WithoutCancel(ctx)); err != nil {
				slog.Error("Failed to drop refused credential", "error", err)
			}
		}
		return Envelope{}, apiErr
	}

	return ParseEnvelope(raw)
}
