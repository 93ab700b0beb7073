package gate

import (
	"net/url"
	"strings"
)

// Brand and keyword tokens for the impersonation heuristic. Matching is raw
// substring containment, not label-boundary aware: a domain merely containing
// a brand inside an unrelated word will trigger. Known limitation, kept.
var (
	KNOWN_BRANDS = []string{
		"google", "facebook", "instagram", "paypal", "twitter", "amazon"}
	SUSPICIOUS_KEYWORDS = []string{
		"login", "verify", "update", "secure", "signin", "account", "password"}
)

// IsAsciiURL reports whether raw is free of homograph material: the host must
// be non-empty, pure ASCII and not punycode, and the path and query must be
// ASCII too. Anything unparseable fails closed.
func IsAsciiURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := parsed.Hostname()
	if host == "" {
		return false
	}
	if !isASCII(host) || strings.HasPrefix(strings.ToLower(host), "xn--") {
		return false
	}
	return isASCII(parsed.Path + parsed.RawQuery)
}

// IsCrossDomainSubmit reports whether a submission from baseRaw to targetRaw
// leaves the site. Same host, either-direction subdomains and relative
// targets are fine; a non-ASCII or punycode target host, or a different
// registrable domain (approximated as the last two labels), is not.
// Unparseable input fails open, matching the heuristic's origin.
func IsCrossDomainSubmit(baseRaw, targetRaw string) bool {
	decoded, err := url.QueryUnescape(targetRaw)
	if err == nil {
		targetRaw = decoded
	}
	base, err := url.Parse(baseRaw)
	if err != nil {
		return false
	}
	target, err := url.Parse(targetRaw)
	if err != nil {
		return false
	}
	if target.Host == "" {
		return false
	}

	baseHost := stripWWW(strings.ToLower(base.Hostname()))
	targetHost := stripWWW(strings.ToLower(target.Hostname()))

	if baseHost == targetHost ||
		strings.HasSuffix(targetHost, "."+baseHost) ||
		strings.HasSuffix(baseHost, "."+targetHost) {
		return false
	}
	if !isASCII(targetHost) {
		return true
	}
	if strings.HasPrefix(targetHost, "xn--") {
		return true
	}

	baseParts := strings.Split(baseHost, ".")
	targetParts := strings.Split(targetHost, ".")
	if len(baseParts) >= 2 && len(targetParts) >= 2 {
		baseRoot := strings.Join(baseParts[len(baseParts)-2:], ".")
		targetRoot := strings.Join(targetParts[len(targetParts)-2:], ".")
		if baseRoot != targetRoot {
			return true
		}
	}
	return false
}

// IsSuspiciousDomain reports whether domain looks like brand impersonation: a
// brand token together with a phishing keyword, or a brand token at all, on a
// domain that does not end in the brand's .com or .org.
func IsSuspiciousDomain(domain string) bool {
	if domain == "" {
		return false
	}
	domain = strings.ToLower(domain)
	for _, brand := range KNOWN_BRANDS {
		if !strings.Contains(domain, brand) {
			continue
		}
		if strings.HasSuffix(domain, brand+".com") || strings.HasSuffix(domain, brand+".org") {
			continue
		}
		for _, word := range SUSPICIOUS_KEYWORDS {
			if strings.Contains(domain, word) {
				return true
			}
		}
	}
	for _, brand := range KNOWN_BRANDS {
		if strings.Contains(domain, brand) &&
			!strings.HasSuffix(domain, brand+".com") &&
			!strings.HasSuffix(domain, brand+".org") {
			return true
		}
	}
	return false
}

// CheckSafety reports whether any blocklist entry occurs inside raw.
func CheckSafety(raw string, blocklist *Blocklist) bool {
	return blocklist.Matches(raw)
}

func isASCII(s string) bool {
	for _, r := range s {
		if r >= 128 {
			return false
		}
	}
	return true
}

func stripWWW(host string) string {
	return strings.TrimPrefix(host, "www.")
}
