// Package httpx is the HTTP client factory and request-building
// collaborator declared in spec.md §6 ("assumed provided as a
// configured client factory") and exercised by spec.md §4.3 step 1
// ("Build a request via get_sender(O, u, client)").
package httpx

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/cybertron10/fuzzwalk/internal/config"
)

// Build constructs the shared *http.Client from Options: TLS, proxy,
// timeouts, and redirect policy live here, out of scope for the core
// crawl engine per spec.md §1. No cookie jar is configured; headers and
// basic auth are applied per request by GetSender.
func Build(o *config.Options) (*http.Client, error) {
	transport := &http.Transport{
		MaxIdleConns:        o.Threads * 4,
		MaxIdleConnsPerHost: o.Threads * 2,
		MaxConnsPerHost:     o.Threads * 4,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
		DialContext:         (&net.Dialer{Timeout: o.Timeout}).DialContext,
	}
	if o.InsecureSkipVerify {
		transport.TLSClientConfig = insecureTLSConfig()
	}
	if o.ProxyURL != "" {
		proxyFn, err := proxyFunc(o.ProxyURL)
		if err != nil {
			return nil, err
		}
		transport.Proxy = proxyFn
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   o.Timeout,
	}
	if !o.FollowRedirects {
		client.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	return client, nil
}

// Sender wraps a prepared *http.Request so the pipeline can time the
// send independently of request construction, mirroring the original's
// get_sender()/sender.send() split.
type Sender struct {
	req    *http.Request
	client *http.Client
}

// GetSender builds a request for url under the given options and binds it
// to client, applying method, headers, body, and basic auth.
func GetSender(ctx context.Context, o *config.Options, url string, client *http.Client) (*Sender, error) {
	req, err := newRequest(ctx, o, url)
	if err != nil {
		return nil, err
	}
	return &Sender{req: req, client: client}, nil
}

// Send issues the request and returns the raw response for the pipeline
// to drain and evaluate.
func (s *Sender) Send() (*http.Response, error) {
	return s.client.Do(s.req)
}
