package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/WangYihang/site-probe/pkg/domain/entity"
)

// Prober implements service.Prober
type Prober struct {
	client       *http.Client
	maxRedirects int
}

// Config holds HTTP prober configuration
type Config struct {
	MaxRedirects int
	// Insecure skips TLS certificate verification
	Insecure bool
	// Transport overrides the default transport, mainly for tests
	Transport http.RoundTripper
}

// NewProber creates a new HTTP prober. The returned prober is safe for
// concurrent use.
func NewProber(config Config) *Prober {
	transport := config.Transport
	if transport == nil {
		transport = &http.Transport{
			Proxy: nil,
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			ForceAttemptHTTP2:   true,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 16,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: config.Insecure,
			},
		}
	}

	maxRedirects := config.MaxRedirects
	if maxRedirects <= 0 {
		maxRedirects = 10
	}

	return &Prober{
		client:       &http.Client{Transport: transport},
		maxRedirects: maxRedirects,
	}
}

// Probe implements service.Prober
func (p *Prober) Probe(ctx context.Context, req entity.ProbeRequest) entity.ProbeResult {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return Classify(req.URL, err)
	}

	// An explicitly empty User-Agent stops net/http from sending its default
	httpReq.Header.Set("User-Agent", req.UserAgent)

	// Each probe gets a shallow copy so redirects are counted per call while
	// the transport and its connection pool stay shared
	redirects := 0
	client := *p.client
	client.CheckRedirect = func(_ *http.Request, via []*http.Request) error {
		if !req.FollowRedirects {
			return http.ErrUseLastResponse
		}
		if len(via) >= p.maxRedirects {
			return fmt.Errorf("stopped after %d redirects", p.maxRedirects)
		}
		redirects = len(via)
		return nil
	}

	start := time.Now()
	resp, err := client.Do(httpReq)
	if err != nil {
		return Classify(req.URL, err)
	}
	defer resp.Body.Close()

	size, body, err := readBody(resp.Body, req.CaptureBody, req.MaxBodyBytes)
	if err != nil {
		return Classify(req.URL, err)
	}
	elapsed := time.Since(start)

	return &entity.Success{
		StatusCode:    resp.StatusCode,
		Reason:        reasonPhrase(resp),
		FinalURL:      resp.Request.URL.String(),
		RedirectCount: redirects,
		BodySizeBytes: size,
		Elapsed:       elapsed,
		Headers:       resp.Header.Clone(),
		Body:          body,
	}
}

// readBody drains r and returns its full length. When capture is set the
// first limit bytes are kept as well.
func readBody(r io.Reader, capture bool, limit int64) (int64, []byte, error) {
	if !capture {
		n, err := io.Copy(io.Discard, r)
		return n, nil, err
	}

	var buf bytes.Buffer
	var n int64
	var err error
	if limit > 0 {
		n, err = io.Copy(&buf, io.LimitReader(r, limit))
	} else {
		n, err = io.Copy(&buf, r)
	}
	if err != nil {
		return n, nil, err
	}

	rest, err := io.Copy(io.Discard, r)
	return n + rest, buf.Bytes(), err
}

func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}
