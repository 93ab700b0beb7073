package fetch

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"sentinel/config"
	"sentinel/logging"
)

// Client is the resty-backed Fetcher used in production. It presents a
// realistic browser identity and follows redirects.
type Client struct {
	rc     *resty.Client
	cfg    config.NetworkConfig
	logger *logging.Logger
}

func NewClient(cfg config.NetworkConfig, logger *logging.Logger) *Client {
	rc := resty.New().
		SetTimeout(cfg.PageTimeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))
	return &Client{rc: rc, cfg: cfg, logger: logger.Named("fetch")}
}

func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	r := c.rc.R().SetContext(ctx)
	for k, v := range c.browserHeaders() {
		r.SetHeader(k, v)
	}
	for k, v := range req.Headers {
		r.SetHeader(k, v)
	}

	var resp *resty.Response
	var err error
	switch strings.ToUpper(req.Method) {
	case "POST":
		resp, err = r.SetFormData(req.Form).Post(req.URL)
	case "", "GET":
		resp, err = r.Get(req.URL)
	default:
		return nil, fmt.Errorf("unsupported method %q", req.Method)
	}
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	headers := make(map[string]string, len(resp.Header()))
	for k := range resp.Header() {
		headers[k] = resp.Header().Get(k)
	}
	return &Response{
		Status:  resp.StatusCode(),
		Body:    resp.Body(),
		Headers: headers,
	}, nil
}

func (c *Client) browserHeaders() map[string]string {
	return map[string]string{
		"User-Agent":      c.cfg.UserAgent,
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.9",
	}
}
