package fetch

import (
	"context"
	"time"
)

// Request describes one bounded unit of network work: a single GET or POST.
type Request struct {
	URL     string
	Method  string // "GET" or "POST"; empty means GET
	Headers map[string]string
	Form    map[string]string // POST form fields
	Timeout time.Duration     // per-request bound; zero uses the client default
}

// Response is the outcome of a completed request. A non-2xx/3xx status is not
// an error at this layer; callers decide what counts as success.
type Response struct {
	Status  int
	Body    []byte
	Headers map[string]string
}

// OK reports whether the response status allows the body to be used.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 400
}

// Header returns a response header value or "" when absent.
func (r *Response) Header(key string) string {
	if r.Headers == nil {
		return ""
	}
	return r.Headers[key]
}

// Fetcher is the external HTTP collaborator. Documents, stylesheets, images,
// downloads and blocklist feeds all go through it; every call is an
// independently-failing unit of work.
type Fetcher interface {
	Do(ctx context.Context, req Request) (*Response, error)
}
