package client

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
	"time"

	"github.com/dmitrijs2005/fieldadmin/internal/common"
	"github.com/dmitrijs2005/fieldadmin/internal/logging"
)

// Authenticator supplies the bearer token and refreshes it on demand. The
// session Store implements it.
type Authenticator interface {
	AccessToken() string
	Refresh(ctx context.Context) bool
}

// API is the backend REST client.
type API struct {
	baseURL    *url.URL
	httpClient *http.Client
	log        logging.Logger
	auth       Authenticator
}

type Option func(*apiOptions)

type apiOptions struct {
	httpClient *http.Client
	log        logging.Logger
	transport  TransportOptions
	timeout    time.Duration
}

// WithHTTPClient replaces the underlying client. Its transport is wrapped by
// the logging transport.
func WithHTTPClient(c *http.Client) Option {
	return func(o *apiOptions) { o.httpClient = c }
}

func WithLogger(l logging.Logger) Option {
	return func(o *apiOptions) { o.log = l }
}

func WithTransportOptions(t TransportOptions) Option {
	return func(o *apiOptions) { o.transport = t }
}

// WithTimeout bounds every request, including a refresh-and-retry cycle's
// individual round trips.
func WithTimeout(d time.Duration) Option {
	return func(o *apiOptions) { o.timeout = d }
}

// New returns an API rooted at baseURL, e.g. http://localhost:3000/api.
func New(baseURL string, opts ...Option) (*API, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", baseURL)
	}

	o := apiOptions{log: logging.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	hc := &http.Client{}
	if o.httpClient != nil {
		c := *o.httpClient
		hc = &c
	}
	if o.timeout > 0 {
		hc.Timeout = o.timeout
	}
	hc.Transport = NewLoggingTransport(hc.Transport, o.log, o.transport)

	return &API{baseURL: u, httpClient: hc, log: o.log.With("component", "api")}, nil
}

// SetAuthenticator attaches the session. It must be called before the API is
// shared between goroutines.
func (a *API) SetAuthenticator(auth Authenticator) {
	a.auth = auth
}

func (a *API) Get(ctx context.Context, path string, query url.Values, out any) error {
	return a.do(ctx, http.MethodGet, path, query, nil, out, true)
}

func (a *API) Post(ctx context.Context, path string, body, out any) error {
	return a.do(ctx, http.MethodPost, path, nil, body, out, true)
}

func (a *API) Patch(ctx context.Context, path string, body, out any) error {
	return a.do(ctx, http.MethodPatch, path, nil, body, out, true)
}

func (a *API) Delete(ctx context.Context, path string) error {
	return a.do(ctx, http.MethodDelete, path, nil, nil, nil, true)
}

func (a *API) do(ctx context.Context, method, path string, query url.Values, body, out any, authenticated bool) error {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s: %w", method, path, err)
		}
		payload = b
	}

	useAuth := authenticated && a.auth != nil

	resp, err := a.send(ctx, method, path, query, payload, useAuth)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && useAuth {
		drain(resp)
		a.log.Debug(ctx, "access token rejected, refreshing", "method", method, "path", path)
		if !a.auth.Refresh(ctx) {
			return &APIError{Status: http.StatusUnauthorized, Message: "session expired"}
		}
		resp, err = a.send(ctx, method, path, query, payload, useAuth)
		if err != nil {
			return err
		}
	}
	defer drain(resp)

	return decodeResponse(resp, out)
}

func (a *API) send(ctx context.Context, method, path string, query url.Values, payload []byte, useAuth bool) (*http.Response, error) {
	u := a.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if useAuth {
		if tok := a.auth.AccessToken(); tok != "" {
			req.Header.Set(common.AuthorizationHeaderName, "Bearer "+tok)
		}
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%s %s: %w: %w", method, path, ErrUnavailable, err)
	}
	return resp, nil
}

func decodeResponse(resp *http.Response, out any) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w: %w", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseErrorBody(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
