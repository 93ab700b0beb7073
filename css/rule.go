package css

import (
	"strings"

	"sentinel/logging"

	"go.uber.org/zap"
)

// SUPPORTED_PROPERTIES is the allowlist of style attributes the renderer can
// honor. Everything else a page declares is dropped silently.
var SUPPORTED_PROPERTIES = map[string]bool{
	"color":            true,
	"background-color": true,
	"background":       true,
	"font-size":        true,
	"font-weight":      true,
	"font-style":       true,
	"border":           true,
	"border-color":     true,
	"border-width":     true,
	"border-radius":    true,
	"padding":          true,
	"margin":           true,
	"text-align":       true,
	"width":            true,
	"height":           true,
	"max-width":        true,
	"max-height":       true,
	"min-width":        true,
	"min-height":       true,
	"outline":          true,
	"outline-color":    true,
	"outline-width":    true,
}

// Declarations maps property names to raw declared values.
type Declarations map[string]string

// Rule is one parsed selector block. Selectors are bare tag names, ".class"
// or "#id"; nothing more structured is recognized.
type Rule struct {
	Selector string
	Body     map[string]string
}

// RuleTable maps selectors to their sanitized declarations. A later rule for
// the same selector replaces the earlier one wholesale.
type RuleTable map[string]Declarations

// Lookup returns the declarations for a selector, or nil.
func (t RuleTable) Lookup(selector string) Declarations {
	return t[selector]
}

// sanitize filters a declaration body through the allowlist. Form controls
// must never be hidden by page-supplied style, so display:none is dropped and
// logged rather than stored.
func sanitize(body map[string]string, logger *logging.Logger) Declarations {
	decls := make(Declarations)
	for prop, val := range body {
		if prop == "display" && strings.EqualFold(strings.TrimSpace(val), "none") {
			logger.Warn("dropping display:none declaration", zap.String("property", prop))
			continue
		}
		if !SUPPORTED_PROPERTIES[prop] {
			continue
		}
		decls[prop] = val
	}
	return decls
}
