// Package client talks to the EatNow server.
package client

import (
	"crypto/tls"
	"crypto/x509"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/kdudkov/eatnow/pkg/request"
)

type Options struct {
	Timeout  time.Duration
	Cert     *tls.Certificate
	RootCAs  *x509.CertPool
	Insecure bool
}

func NewHTTPClient(o Options) *http.Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()

	if o.Cert != nil || o.RootCAs != nil || o.Insecure {
		tr.TLSClientConfig = &tls.Config{RootCAs: o.RootCAs, InsecureSkipVerify: o.Insecure} //nolint:gosec

		if o.Cert != nil {
			tr.TLSClientConfig.Certificates = []tls.Certificate{*o.Cert}
		}
	}

	return &http.Client{Timeout: o.Timeout, Transport: tr}
}

// Client builds requests against the server base url. Token is consulted on
// every request; an empty token sends no Authorization header.
type Client struct {
	base   string
	http   *http.Client
	token  func() string
	logger *slog.Logger
}

func New(base string, c *http.Client, token func() string) *Client {
	if c == nil {
		c = http.DefaultClient
	}

	return &Client{
		base:   strings.TrimRight(base, "/"),
		http:   c,
		token:  token,
		logger: slog.Default().With("logger", "client"),
	}
}

func (c *Client) URL(path string) string {
	return c.base + path
}

func (c *Client) Request(endpoint, path string) *request.Request {
	r := request.New(c.http, c.logger).URL(c.URL(path)).Endpoint(endpoint)

	if c.token != nil {
		r.Token(c.token())
	}

	return r
}
