package growi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/aoyamat/growi-mcp-server/metrics"
)

// Client translates logical wiki operations into HTTP calls against the
// configured GROWI server. It holds no per-call state: the config is
// read-only and *http.Client is safe for concurrent use, so one Client
// serves concurrent tool invocations.
type Client struct {
	config     *Config
	api        dialect
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new GROWI API client for the configured dialect.
func NewClient(config *Config, logger *slog.Logger, opts ...ClientOption) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	api, err := dialectFor(config.APIVersion)
	if err != nil {
		return nil, err
	}

	c := &Client{
		config:     config,
		api:        api,
		httpClient: newHTTPClient(config.Timeout),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// APIVersion returns the configured dialect name ("v1" or "v3").
func (c *Client) APIVersion() string {
	return c.api.name()
}

// do issues one backend call described by req and returns the response
// body. Non-2xx statuses and network failures come back already
// normalized; callers only handle success envelopes.
func (c *Client) do(ctx context.Context, req request) ([]byte, error) {
	httpReq, err := c.newHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Warn("GROWI request failed",
			"method", req.method,
			"path", req.path,
			"error", err)
		metrics.RecordAPICall(c.api.name(), req.path, time.Since(start).Seconds(), false, string(KindTransport))
		return nil, transportErr(err)
	}

	body, err := readAndClose(resp)
	if err != nil {
		return nil, transportErr(fmt.Errorf("reading response: %w", err))
	}
	duration := time.Since(start)

	c.logger.Debug("GROWI request",
		"method", req.method,
		"path", req.path,
		"status", resp.StatusCode,
		"duration", duration)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := FromResponse(resp.StatusCode, body)
		if apiErr.Kind == KindAuth {
			metrics.AuthFailures.WithLabelValues("token_rejected").Inc()
		}
		metrics.RecordAPICall(c.api.name(), req.path, duration.Seconds(), false, string(apiErr.Kind))
		return nil, apiErr
	}
	metrics.RecordAPICall(c.api.name(), req.path, duration.Seconds(), true, "")
	return body, nil
}

// doJSON issues a call and decodes the success body into out, after
// checking the v1 {"ok": false} envelope that reports failures inside a
// 200 response.
func (c *Client) doJSON(ctx context.Context, req request, out any) error {
	body, err := c.do(ctx, req)
	if err != nil {
		return err
	}

	var env struct {
		OK    *bool           `json:"ok"`
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return &Error{Kind: KindBackend, Message: "unexpected response from GROWI: " + truncate(string(body), 200)}
	}
	if env.OK != nil && !*env.OK {
		return FromMessage(decodeErrorValue(env.Error))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Kind: KindBackend, Message: "failed to parse GROWI response: " + err.Error()}
	}
	return nil
}

// doUpload issues a multipart upload: the fields from req.form plus one
// file part streamed from r. The file is never buffered whole; an io.Pipe
// feeds the request body while the multipart writer runs in a goroutine.
func (c *Client) doUpload(ctx context.Context, req request, filename, contentType string, r io.Reader, out any) error {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := writeMultipart(mw, req.form, filename, contentType, r)
		if cerr := mw.Close(); err == nil {
			err = cerr
		}
		pw.CloseWithError(err)
	}()

	u := c.buildURL(req.path, req.query)
	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, pr)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.config.UserAgent)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return transportErr(err)
	}
	body, err := readAndClose(resp)
	if err != nil {
		return transportErr(fmt.Errorf("reading response: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return FromResponse(resp.StatusCode, body)
	}

	var env struct {
		OK    *bool           `json:"ok"`
		Error json.RawMessage `json:"error"`
	}
	if json.Unmarshal(body, &env) == nil && env.OK != nil && !*env.OK {
		return FromMessage(decodeErrorValue(env.Error))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &Error{Kind: KindBackend, Message: "failed to parse GROWI response: " + err.Error()}
	}
	return nil
}

// fetchBinary issues the raw binary fetch used for attachment download.
// The configured connect.sid session cookie is attached when present;
// the access token is not, matching how GROWI serves proxied files.
func (c *Client) fetchBinary(ctx context.Context, proxiedPath string) (*http.Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.Domain+proxiedPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("User-Agent", c.config.UserAgent)
	if c.config.HasSessionCookie() {
		httpReq.AddCookie(&http.Cookie{Name: "connect.sid", Value: c.config.ConnectSID})
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, transportErr(err)
	}
	return resp, nil
}

// newHTTPRequest builds the HTTP request for a dialect-produced call,
// attaching the access token as a query parameter (both dialects
// authenticate this way).
func (c *Client) newHTTPRequest(ctx context.Context, req request) (*http.Request, error) {
	var bodyReader io.Reader
	contentType := ""
	switch {
	case req.json != nil:
		data, err := json.Marshal(req.json)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
		contentType = "application/json"
	case req.form != nil:
		bodyReader = strings.NewReader(req.form.Encode())
		contentType = "application/x-www-form-urlencoded"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.buildURL(req.path, req.query), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.config.UserAgent)
	return httpReq, nil
}

// buildURL joins the domain, path and query, always including the token.
func (c *Client) buildURL(path string, query url.Values) string {
	q := url.Values{}
	for k, vs := range query {
		q[k] = vs
	}
	q.Set("access_token", c.config.APIToken)
	return c.config.Domain + path + "?" + q.Encode()
}

// writeMultipart emits the form fields followed by the single file part.
func writeMultipart(mw *multipart.Writer, fields url.Values, filename, contentType string, r io.Reader) error {
	for key, vals := range fields {
		for _, v := range vals {
			if err := mw.WriteField(key, v); err != nil {
				return err
			}
		}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, r)
	return err
}

// readAndClose reads the response body and closes it
func readAndClose(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return body, err
}

// newHTTPClient creates an HTTP client with optimized transport settings
func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		MaxConnsPerHost:       50,
		IdleConnTimeout:       120 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		DisableCompression:    false,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
