package client

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/fieldadmin/internal/common"
	"github.com/dmitrijs2005/fieldadmin/internal/logging"
	"github.com/google/uuid"
)

// TransportOptions are the HTTP debugging switches of the configuration.
// Outside production every request is logged at debug level; headers and
// bodies only when asked for. NoCache appends a "_nc" timestamp to GETs.
type TransportOptions struct {
	Production  bool
	LogHeaders  bool
	LogBody     bool
	NoCache     bool
	maxBodySize int
}

const defaultMaxLoggedBody = 4 << 10

type loggingTransport struct {
	next http.RoundTripper
	log  logging.Logger
	opts TransportOptions
	now  func() time.Time
}

// NewLoggingTransport wraps next (http.DefaultTransport when nil).
func NewLoggingTransport(next http.RoundTripper, log logging.Logger, opts TransportOptions) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	if log == nil {
		log = logging.Nop()
	}
	if opts.maxBodySize == 0 {
		opts.maxBodySize = defaultMaxLoggedBody
	}
	return &loggingTransport{next: next, log: log.With("component", "http"), opts: opts, now: time.Now}
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	req = req.Clone(ctx)

	reqID := req.Header.Get(common.RequestIDHeaderName)
	if reqID == "" {
		reqID = uuid.NewString()
		req.Header.Set(common.RequestIDHeaderName, reqID)
	}

	debug := !t.opts.Production

	if debug && t.opts.NoCache && req.Method == http.MethodGet {
		q := req.URL.Query()
		q.Set("_nc", strconv.FormatInt(t.now().UnixMilli(), 10))
		req.URL.RawQuery = q.Encode()
	}

	if debug {
		args := []any{"request_id", reqID, "method", req.Method, "url", req.URL.String()}
		if t.opts.LogHeaders {
			args = append(args, "headers", redactHeaders(req.Header))
		}
		if t.opts.LogBody && req.GetBody != nil {
			if body, err := req.GetBody(); err == nil {
				args = append(args, "body", t.peek(body))
			}
		}
		t.log.Debug(ctx, "http request", args...)
	}

	start := t.now()
	resp, err := t.next.RoundTrip(req)
	elapsed := t.now().Sub(start).Milliseconds()

	if err != nil {
		t.log.Error(ctx, "http request failed", "request_id", reqID, "method", req.Method, "url", req.URL.String(), "elapsed_ms", elapsed, "error", err)
		return nil, err
	}

	if debug {
		args := []any{"request_id", reqID, "method", req.Method, "url", req.URL.String(), "status", resp.StatusCode, "elapsed_ms", elapsed}
		if t.opts.LogBody && resp.Body != nil {
			data, rerr := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			if rerr != nil {
				// The caller still sees the read failure after the bytes that did arrive.
				resp.Body = io.NopCloser(io.MultiReader(bytes.NewReader(data), errReader{rerr}))
				args = append(args, "body_error", rerr)
			} else {
				resp.Body = io.NopCloser(bytes.NewReader(data))
				args = append(args, "body", truncate(data, t.opts.maxBodySize))
			}
		}
		t.log.Debug(ctx, "http response", args...)
	}

	return resp, nil
}

func (t *loggingTransport) peek(rc io.ReadCloser) string {
	defer rc.Close()
	data, _ := io.ReadAll(io.LimitReader(rc, int64(t.opts.maxBodySize)+1))
	return truncate(data, t.opts.maxBodySize)
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }

func truncate(data []byte, limit int) string {
	if len(data) > limit {
		return string(data[:limit]) + "…"
	}
	return string(data)
}

func redactHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k := range h {
		v := h.Get(k)
		if k == common.AuthorizationHeaderName {
			v = "Bearer ***"
		}
		out[k] = v
	}
	return out
}
