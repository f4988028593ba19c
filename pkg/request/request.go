package request

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-Id"

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return "status is " + e.Status
}

func IsStatus(err error, code int) bool {
	var se *StatusError

	return errors.As(err, &se) && se.Code == code
}

type Request struct {
	client   *http.Client
	url      string
	method   string
	endpoint string
	token    string
	body     io.Reader
	bodyErr  error
	headers  map[string]string
	args     map[string]string
	logger   *slog.Logger
}

func New(c *http.Client, logger *slog.Logger) *Request {
	return &Request{client: c, method: http.MethodGet, logger: logger}
}

func (r *Request) URL(url string) *Request {
	r.url = url

	return r
}

// Endpoint sets the metrics label; the path itself may carry ids.
func (r *Request) Endpoint(name string) *Request {
	r.endpoint = name

	return r
}

func (r *Request) Post() *Request {
	r.method = http.MethodPost

	return r
}

func (r *Request) Token(token string) *Request {
	r.token = token

	return r
}

func (r *Request) Args(args map[string]string) *Request {
	r.args = args

	return r
}

func (r *Request) JSONBody(v any) *Request {
	b, err := json.Marshal(v)
	if err != nil {
		r.bodyErr = err
		return r
	}

	r.body = bytes.NewReader(b)

	if r.headers == nil {
		r.headers = make(map[string]string)
	}

	r.headers["Content-Type"] = "application/json"

	return r
}

func (r *Request) do(ctx context.Context) (*http.Response, error) {
	if r.bodyErr != nil {
		return nil, fmt.Errorf("encode body: %w", r.bodyErr)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, r.url, r.body)
	if err != nil {
		return nil, err
	}

	req.Header.Del("User-Agent")
	req.Header.Set(RequestIDHeader, uuid.NewString())

	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	if len(r.args) > 0 {
		q := req.URL.Query()

		for k, v := range r.args {
			q.Add(k, v)
		}

		req.URL.RawQuery = q.Encode()
	}

	start := time.Now()
	res, err := r.client.Do(req)

	if err != nil {
		observe(r.endpoint, r.method, "error", start)

		if r.logger != nil {
			r.logger.Info(fmt.Sprintf("%s %s - error %s", r.method, req.URL, err.Error()))
		}

		return res, err
	}

	observe(r.endpoint, r.method, res.Status, start)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		if r.logger != nil {
			r.logger.Warn(fmt.Sprintf("%s %s - %d", r.method, req.URL, res.StatusCode))
		}

		_ = res.Body.Close()

		return nil, &StatusError{Code: res.StatusCode, Status: res.Status}
	}

	if r.logger != nil {
		r.logger.Debug(fmt.Sprintf("%s %s - %d", r.method, req.URL, res.StatusCode))
	}

	return res, nil
}

func (r *Request) Do(ctx context.Context) (io.ReadCloser, error) {
	res, err := r.do(ctx)
	if err != nil {
		return nil, err
	}

	if res.Body == nil {
		return nil, errors.New("empty response body")
	}

	return res.Body, nil
}

func (r *Request) GetJSON(ctx context.Context, obj any) error {
	b, err := r.Do(ctx)

	if err != nil {
		return err
	}

	defer b.Close()

	dec := json.NewDecoder(b)

	return dec.Decode(obj)
}

func (r *Request) GetBytes(ctx context.Context) ([]byte, error) {
	b, err := r.Do(ctx)

	if err != nil {
		return nil, err
	}

	defer b.Close()

	return io.ReadAll(b)
}

// GetText reads a plain-text acknowledgement.
func (r *Request) GetText(ctx context.Context) (string, error) {
	dat, err := r.GetBytes(ctx)

	return string(dat), err
}
