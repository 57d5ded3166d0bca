package httpx

import (
	"context"
	"crypto/tls"
	"net/http"
	"net/url"
	"strings"

	"github.com/cybertron10/fuzzwalk/internal/config"
)

func newRequest(ctx context.Context, o *config.Options, target string) (*http.Request, error) {
	method := o.Method
	if method == "" {
		method = http.MethodGet
	}

	var bodyReader *strings.Reader
	if o.Body != "" {
		bodyReader = strings.NewReader(o.Body)
	} else {
		bodyReader = strings.NewReader("")
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, err
	}

	for k, v := range o.Headers {
		req.Header.Set(k, v)
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", "fuzzwalk")
	}
	req.Header.Set("Connection", "keep-alive")

	if o.BasicAuthUser != "" {
		req.SetBasicAuth(o.BasicAuthUser, o.BasicAuthPass)
	}

	return req, nil
}

func insecureTLSConfig() *tls.Config {
	return &tls.Config{InsecureSkipVerify: true} //nolint:gosec // explicit opt-in via --insecure
}

func proxyFunc(raw string) (func(*http.Request) (*url.URL, error), error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	return http.ProxyURL(u), nil
}
