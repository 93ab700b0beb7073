package url

import (
	"fmt"
	"strconv"
	"strings"
)

// URL is a parsed http(s) URL. Only the two web schemes are supported; any
// other scheme is a parse error.
type URL struct {
	Scheme string
	Host   string
	Port   int
	Path   string
	Query  string
}

func NewURL(raw string) (*URL, error) {
	u := &URL{}
	splitURL := strings.SplitN(raw, "://", 2)
	if len(splitURL) < 2 {
		return nil, fmt.Errorf("no URL scheme: %s", raw)
	}
	u.Scheme, raw = strings.ToLower(splitURL[0]), splitURL[1]
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
	}
	if u.Scheme == "http" {
		u.Port = 80
	} else {
		u.Port = 443
	}
	if !strings.Contains(raw, "/") {
		raw += "/"
	}
	splitPath := strings.SplitN(raw, "/", 2)
	u.Host, raw = strings.ToLower(splitPath[0]), splitPath[1]
	if u.Host == "" {
		return nil, fmt.Errorf("empty host in URL")
	}
	if strings.Contains(u.Host, ":") {
		hostParts := strings.SplitN(u.Host, ":", 2)
		u.Host = hostParts[0]
		port, err := strconv.Atoi(hostParts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid port in URL: %s", hostParts[1])
		}
		u.Port = port
	}
	u.Path = "/" + raw
	if i := strings.Index(u.Path, "#"); i != -1 {
		u.Path = u.Path[:i]
	}
	if i := strings.Index(u.Path, "?"); i != -1 {
		u.Path, u.Query = u.Path[:i], u.Path[i+1:]
	}
	return u, nil
}

func (u *URL) String() string {
	portPart := ":" + strconv.Itoa(u.Port)
	if u.Scheme == "https" && u.Port == 443 {
		portPart = ""
	}
	if u.Scheme == "http" && u.Port == 80 {
		portPart = ""
	}
	s := u.Scheme + "://" + u.Host + portPart + u.Path
	if u.Query != "" {
		s += "?" + u.Query
	}
	return s
}

// Resolve interprets link relative to u: absolute URLs pass through,
// scheme-relative URLs gain u's scheme, absolute paths keep u's authority,
// and anything else resolves against the directory of u's path.
func (u *URL) Resolve(link string) (*URL, error) {
	if strings.Contains(link, "://") {
		return NewURL(link)
	}
	if strings.HasPrefix(link, "//") {
		return NewURL(u.Scheme + ":" + link)
	}
	if !strings.HasPrefix(link, "/") {
		dir := u.Path
		if i := strings.LastIndex(dir, "/"); i != -1 {
			dir = dir[:i]
		}
		for strings.HasPrefix(link, "../") {
			link = strings.TrimPrefix(link, "../")
			if strings.Contains(dir, "/") {
				if i := strings.LastIndex(dir, "/"); i != -1 {
					dir = dir[:i]
				}
			}
		}
		link = dir + "/" + link
	}
	return NewURL(u.Scheme + "://" + u.Host + ":" + strconv.Itoa(u.Port) + link)
}

// Secure reports whether the URL uses encrypted transport.
func (u *URL) Secure() bool {
	return u.Scheme == "https"
}

// Origin returns scheme://host:port.
func (u *URL) Origin() string {
	return u.Scheme + "://" + u.Host + ":" + strconv.Itoa(u.Port)
}
