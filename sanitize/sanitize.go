package sanitize

import (
	"regexp"
	"strings"
)

// AD_KEYWORDS are the attribute tokens that mark a container as ad or
// tracking markup.
var AD_KEYWORDS = []string{
	"ads", "ad_", "ad-", "advert", "sponsor", "banner", "promoted",
	"affiliate", "doubleclick", "googlesyndication", "tracking",
	"popunder", "clickserve", "outbrain", "taboola", "metrics",
}

var (
	scriptRe = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleRe  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)

	adIframeRe = regexp.MustCompile(`(?is)<iframe[^>]+(ad|banner|sponsor|doubleclick|googlesyndication)[^>]*>.*?</iframe>`)
	adImgRe    = regexp.MustCompile(`(?i)<img[^>]+(ad|promo|sponsor|banner)[^>]*>`)
	adDivRe    = regexp.MustCompile(`(?is)<div[^>]+(id|class)\s*=\s*["'][^"']*?(` + strings.Join(AD_KEYWORDS, "|") + `)[^"']*?["'][^>]*>.*?</div>`)
	adScriptRe = regexp.MustCompile(`(?is)<script[^>]+(ad|doubleclick|googlesyndication|tracking)[^>]*>.*?</script>`)
)

// Strip removes active and tracking markup from a raw document before the
// render parse: every script and style block, ad-flagged iframes, images and
// scripts, and div containers whose id or class carries an ad keyword,
// subtree included. Style extraction must read the document before this runs.
func Strip(raw string) string {
	raw = adIframeRe.ReplaceAllString(raw, "")
	raw = adImgRe.ReplaceAllString(raw, "")
	raw = adDivRe.ReplaceAllString(raw, "")
	raw = adScriptRe.ReplaceAllString(raw, "")
	raw = scriptRe.ReplaceAllString(raw, "")
	raw = styleRe.ReplaceAllString(raw, "")
	return raw
}
