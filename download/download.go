package download

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"sentinel/fetch"
	"sentinel/gate"
	"sentinel/logging"
	u "sentinel/url"
)

// DANGEROUS_EXTENSIONS are filename extensions the sink refuses to write.
var DANGEROUS_EXTENSIONS = map[string]bool{
	".exe": true, ".msi": true, ".bat": true, ".cmd": true, ".sh": true,
	".apk": true, ".jar": true, ".scr": true, ".dll": true, ".ps1": true,
}

// Classifier is the external file-safety collaborator consulted before any
// download is allowed to start.
type Classifier interface {
	Classify(url string) (malicious bool, reason string)
}

// Sink persists a completed download. Implementations must themselves reject
// dangerous filename extensions; callers cannot be trusted to.
type Sink interface {
	Save(body []byte, suggestedName string) (string, error)
}

// HeuristicClassifier flags downloads from blocklisted or brand-impersonating
// hosts. It is the default Classifier when no external service is wired in.
type HeuristicClassifier struct {
	Blocklist *gate.Blocklist
}

func (c *HeuristicClassifier) Classify(url string) (bool, string) {
	if gate.CheckSafety(url, c.Blocklist) {
		return true, "host is on the threat blocklist"
	}
	parsed, err := u.NewURL(url)
	if err != nil {
		return true, "unparseable download URL"
	}
	if gate.IsSuspiciousDomain(parsed.Host) {
		return true, "host imitates a known brand"
	}
	return false, ""
}

// DiskSink writes downloads under a fixed per-user directory.
type DiskSink struct {
	Dir    string
	Logger *logging.Logger
}

func NewDiskSink(dir string, logger *logging.Logger) *DiskSink {
	if strings.HasPrefix(dir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, dir[2:])
		}
	}
	return &DiskSink{Dir: dir, Logger: logger.Named("download")}
}

func (s *DiskSink) Save(body []byte, suggestedName string) (string, error) {
	name := SanitizeFilename(suggestedName)
	ext := strings.ToLower(filepath.Ext(name))
	if DANGEROUS_EXTENSIONS[ext] {
		return "", fmt.Errorf("refusing to save executable file %q", name)
	}

	// a dangerous payload behind a harmless name is still dangerous
	if detected := mimetype.Detect(body); DANGEROUS_EXTENSIONS[detected.Extension()] {
		return "", fmt.Errorf("refusing %q: content is %s", name, detected.String())
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating download dir: %w", err)
	}
	path := filepath.Join(s.Dir, name)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("writing download: %w", err)
	}
	s.Logger.Info("saved download", zap.String("path", path), zap.Int("bytes", len(body)))
	return path, nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// SanitizeFilename strips traversal material and unusual characters, caps the
// length at 80 and falls back to "download" for empty results.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(strings.TrimSpace(name), "..", "")
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	if len(name) > 80 {
		name = name[:80]
	}
	if name == "" {
		return "download"
	}
	return name
}

var contentDispositionName = regexp.MustCompile(`filename="?([^";]+)"?`)

// DetectFilename picks the download's name from the Content-Disposition
// header when present, else the URL path basename.
func DetectFilename(resp *fetch.Response, url *u.URL) string {
	if cd := resp.Header("Content-Disposition"); cd != "" {
		if m := contentDispositionName.FindStringSubmatch(cd); m != nil {
			return SanitizeFilename(m[1])
		}
	}
	return SanitizeFilename(filepath.Base(url.Path))
}

// Manager runs one download end to end: fetch, name, persist.
type Manager struct {
	Fetcher fetch.Fetcher
	Sink    Sink
	Logger  *logging.Logger
}

func (m *Manager) Download(ctx context.Context, target *u.URL) (string, error) {
	resp, err := m.Fetcher.Do(ctx, fetch.Request{URL: target.String()})
	if err != nil {
		return "", fmt.Errorf("download failed: %w", err)
	}
	if resp.Status != 200 {
		return "", fmt.Errorf("download failed: server returned status %d", resp.Status)
	}
	return m.Sink.Save(resp.Body, DetectFilename(resp, target))
}
