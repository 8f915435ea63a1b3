// Package ragapi is a typed client for the answering service's HTTP contract.
package ragapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	PathHealth   = "/health"
	PathAsk      = "/ask"
	PathHistory  = "/history"
	PathDocs     = "/documents"
	PathUpload   = "/upload-document"
	PathActivate = "/activate-document/"
	PathReset    = "/reset-memory"

	maxBodyBytes = 8 << 20
)

type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New returns a client bound to baseURL. Timeouts come from the context of
// each call, so the default http.Client has none of its own.
func New(baseURL *url.URL, opts ...Option) *Client {
	base := *baseURL
	c := &Client{
		baseURL: &base,
		http:    &http.Client{},
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() *url.URL {
	base := *c.baseURL
	return &base
}

// Health probes the service, bypassing any intermediate cache. The body is
// ignored.
func (c *Client) Health(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, PathHealth, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	return c.do(req, PathHealth, nil)
}

func (c *Client) Ask(ctx context.Context, input string) (AskResponse, error) {
	var out AskResponse
	buf, err := json.Marshal(AskRequest{Input: input})
	if err != nil {
		return out, errors.Wrap(err, "encode ask request")
	}
	req, err := c.newRequest(ctx, http.MethodPost, PathAsk, bytes.NewReader(buf))
	if err != nil {
		return out, err
	}
	req.Header.Set("Content-Type", "application/json")
	err = c.do(req, PathAsk, &out)
	return out, err
}

func (c *Client) History(ctx context.Context) (HistoryResponse, error) {
	var out HistoryResponse
	req, err := c.newRequest(ctx, http.MethodGet, PathHistory, nil)
	if err != nil {
		return out, err
	}
	err = c.do(req, PathHistory, &out)
	return out, err
}

func (c *Client) Documents(ctx context.Context) ([]DocumentInfo, error) {
	var out []DocumentInfo
	req, err := c.newRequest(ctx, http.MethodGet, PathDocs, nil)
	if err != nil {
		return nil, err
	}
	if err := c.do(req, PathDocs, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []DocumentInfo{}
	}
	return out, nil
}

// UploadDocument sends content as the single multipart field "file".
func (c *Client) UploadDocument(ctx context.Context, filename string, content io.Reader) (UploadResponse, error) {
	var out UploadResponse
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return out, errors.Wrap(err, "create multipart field")
	}
	if _, err := io.Copy(part, content); err != nil {
		return out, errors.Wrapf(err, "read %s", filename)
	}
	if err := form.Close(); err != nil {
		return out, errors.Wrap(err, "close multipart body")
	}
	req, err := c.newRequest(ctx, http.MethodPost, PathUpload, &body)
	if err != nil {
		return out, err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	err = c.do(req, PathUpload, &out)
	return out, err
}

func (c *Client) ActivateDocument(ctx context.Context, filename string) (StatusResponse, error) {
	var out StatusResponse
	path := PathActivate + url.PathEscape(filename)
	req, err := c.newRequest(ctx, http.MethodPost, path, nil)
	if err != nil {
		return out, err
	}
	err = c.do(req, path, &out)
	return out, err
}

func (c *Client) ResetMemory(ctx context.Context) (StatusResponse, error) {
	var out StatusResponse
	req, err := c.newRequest(ctx, http.MethodPost, PathReset, nil)
	if err != nil {
		return out, err
	}
	err = c.do(req, PathReset, &out)
	return out, err
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	endpoint := strings.TrimRight(c.baseURL.String(), "/") + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, errors.Wrapf(err, "build %s %s", method, path)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

// do sends req and decodes a 2xx body into out when out is non-nil. An empty
// 2xx body leaves out at its zero value.
func (c *Client) do(req *http.Request, path string, out any) error {
	started := time.Now()
	logger := c.logger.With().
		Str("request_id", req.Header.Get("X-Request-ID")).
		Str("method", req.Method).
		Str("path", path).
		Logger()

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Debug().Err(err).Dur("elapsed", time.Since(started)).Msg("request failed")
		return errors.Wrapf(err, "%s %s", req.Method, path)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		logger.Debug().Err(err).Int("status", resp.StatusCode).Msg("reading body failed")
		return errors.Wrapf(err, "read %s response", path)
	}
	logger.Debug().
		Int("status", resp.StatusCode).
		Int("bytes", len(payload)).
		Dur("elapsed", time.Since(started)).
		Msg("request done")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{Path: path, Status: resp.StatusCode, Detail: parseDetail(payload)}
	}
	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &DecodeError{Path: path, Err: err}
	}
	return nil
}
