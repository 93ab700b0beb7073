package gate

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"sentinel/config"
	"sentinel/fetch"
	"sentinel/logging"
)

// AD_DOMAINS is the fixed set of known ad-serving domains appended to every
// blocklist regardless of feed availability.
var AD_DOMAINS = []string{
	"doubleclick.net", "googlesyndication.com", "adservice.google.com",
	"ads.yahoo.com", "taboola.com", "outbrain.com", "revcontent.com",
	"facebook.net", "scorecardresearch.com",
}

// Blocklist is the process-wide set of known malicious and ad-serving
// domains. It is populated once at startup and read-only afterwards; matching
// is substring containment against the whole URL.
type Blocklist struct {
	entries []string
}

// NewBlocklist builds a read-only blocklist from the given entries plus the
// fixed ad-domain set.
func NewBlocklist(entries []string) *Blocklist {
	all := make([]string, 0, len(entries)+len(AD_DOMAINS))
	all = append(all, entries...)
	all = append(all, AD_DOMAINS...)
	return &Blocklist{entries: all}
}

// Matches reports whether any entry is a substring of raw.
func (b *Blocklist) Matches(raw string) bool {
	if b == nil {
		return false
	}
	for _, entry := range b.entries {
		if strings.Contains(raw, entry) {
			return true
		}
	}
	return false
}

// Len returns the number of entries.
func (b *Blocklist) Len() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}

// LoadBlocklist fetches each configured hosts-file-style threat feed and
// accumulates candidate domains. A source that fails or times out is skipped;
// a partial blocklist is acceptable.
func LoadBlocklist(ctx context.Context, fetcher fetch.Fetcher, cfg config.SecurityConfig, net config.NetworkConfig, logger *logging.Logger) *Blocklist {
	logger = logger.Named("blocklist")
	var entries []string
	if !cfg.BlocklistEnabled {
		return NewBlocklist(entries)
	}
	for _, source := range cfg.BlocklistSources {
		resp, err := fetcher.Do(ctx, fetch.Request{
			URL:     source,
			Timeout: net.BlocklistTimeout,
		})
		if err != nil || !resp.OK() {
			logger.Warn("blocklist source unavailable", zap.String("source", source))
			continue
		}
		count := 0
		for _, line := range strings.Split(string(resp.Body), "\n") {
			if domain, ok := parseHostsLine(line); ok {
				entries = append(entries, domain)
				count++
			}
		}
		logger.Info("loaded blocklist source",
			zap.String("source", source), zap.Int("domains", count))
	}
	return NewBlocklist(entries)
}

// parseHostsLine extracts the candidate domain from one hosts-file line: the
// last whitespace-separated token of any non-comment, non-loopback line, kept
// only if it contains a dot.
func parseHostsLine(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") ||
		strings.HasPrefix(line, "127.") || strings.HasPrefix(line, "::1") {
		return "", false
	}
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return "", false
	}
	domain := parts[len(parts)-1]
	if !strings.Contains(domain, ".") {
		return "", false
	}
	return domain, true
}
