package url

import (
	"testing"
)

func TestScheme(t *testing.T) {
	u, err := NewURL("http://example.com/path")
	if err != nil {
		t.Fatal(err)
	}
	if u.Scheme != "http" {
		t.Errorf("Expected scheme 'http', got '%s'", u.Scheme)
	}

	u, err = NewURL("https://example.com/path")
	if err != nil {
		t.Fatal(err)
	}
	if u.Scheme != "https" {
		t.Errorf("Expected scheme 'https', got '%s'", u.Scheme)
	}
}

func TestDefaultPort(t *testing.T) {
	u, _ := NewURL("http://example.com/path")
	if u.Port != 80 {
		t.Errorf("Expected default port 80 for HTTP, got %d", u.Port)
	}

	u, _ = NewURL("https://example.com/path")
	if u.Port != 443 {
		t.Errorf("Expected default port 443 for HTTPS, got %d", u.Port)
	}
}

func TestCustomPort(t *testing.T) {
	u, _ := NewURL("http://example.com:8080/path")
	if u.Port != 8080 {
		t.Errorf("Expected port 8080, got %d", u.Port)
	}
}

func TestInvalidPort(t *testing.T) {
	if _, err := NewURL("http://example.com:invalid/path"); err == nil {
		t.Error("Expected error for invalid port")
	}
}

func TestUnsupportedScheme(t *testing.T) {
	if _, err := NewURL("ftp://example.com/path"); err == nil {
		t.Error("Expected error for unsupported scheme")
	}
	if _, err := NewURL("no-scheme-at-all"); err == nil {
		t.Error("Expected error for missing scheme")
	}
}

func TestHostAndPath(t *testing.T) {
	u, _ := NewURL("http://Example.COM/path/to/resource")
	if u.Host != "example.com" {
		t.Errorf("Expected host 'example.com', got '%s'", u.Host)
	}
	if u.Path != "/path/to/resource" {
		t.Errorf("Expected path '/path/to/resource', got '%s'", u.Path)
	}
}

func TestMissingPath(t *testing.T) {
	u, _ := NewURL("http://example.com")
	if u.Path != "/" {
		t.Errorf("Expected path '/', got '%s'", u.Path)
	}
}

func TestQuerySplit(t *testing.T) {
	u, _ := NewURL("https://example.com/search?q=go+browser")
	if u.Path != "/search" {
		t.Errorf("Expected path '/search', got '%s'", u.Path)
	}
	if u.Query != "q=go+browser" {
		t.Errorf("Expected query 'q=go+browser', got '%s'", u.Query)
	}
	if u.String() != "https://example.com/search?q=go+browser" {
		t.Errorf("Round trip failed: %s", u.String())
	}
}

func TestResolve(t *testing.T) {
	base, _ := NewURL("https://example.com/a/b/page.html")
	tests := []struct {
		link string
		want string
	}{
		{"https://other.com/x", "https://other.com/x"},
		{"//cdn.example.com/style.css", "https://cdn.example.com/style.css"},
		{"/root.css", "https://example.com/root.css"},
		{"style.css", "https://example.com/a/b/style.css"},
		{"../up.css", "https://example.com/a/up.css"},
	}
	for _, tt := range tests {
		got, err := base.Resolve(tt.link)
		if err != nil {
			t.Errorf("Resolve(%q) failed: %v", tt.link, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.link, got.String(), tt.want)
		}
	}
}

func TestSecure(t *testing.T) {
	u, _ := NewURL("https://example.com/")
	if !u.Secure() {
		t.Error("Expected https URL to be secure")
	}
	u, _ = NewURL("http://example.com/")
	if u.Secure() {
		t.Error("Expected http URL to be insecure")
	}
}
