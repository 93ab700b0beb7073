package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimpleRule(t *testing.T) {
	rules := NewParser("body { color: red; background-color: #111; }").Parse()
	require.Len(t, rules, 1)
	assert.Equal(t, "body", rules[0].Selector)
	assert.Equal(t, "red", rules[0].Body["color"])
	assert.Equal(t, "#111", rules[0].Body["background-color"])
}

func TestParseClassAndIdSelectors(t *testing.T) {
	rules := NewParser(".warn{color:orange}#main{padding:4px}").Parse()
	require.Len(t, rules, 2)
	assert.Equal(t, ".warn", rules[0].Selector)
	assert.Equal(t, "#main", rules[1].Selector)
}

func TestParseWhitespaceInsensitive(t *testing.T) {
	rules := NewParser("\n  h1 \t{\n  font-size :  32px ;\n}\n").Parse()
	require.Len(t, rules, 1)
	assert.Equal(t, "h1", rules[0].Selector)
	assert.Equal(t, "32px", rules[0].Body["font-size"])
}

func TestParseMultiWordValues(t *testing.T) {
	rules := NewParser("p{border:1px solid red;margin:0 auto}").Parse()
	require.Len(t, rules, 1)
	assert.Equal(t, "1px solid red", rules[0].Body["border"])
	assert.Equal(t, "0 auto", rules[0].Body["margin"])
}

func TestParseMalformedRulesSkipped(t *testing.T) {
	rules := NewParser("p{color:blue;;broken;also:ok}trailing{no-close:1").Parse()
	require.Len(t, rules, 1)
	body := rules[0].Body
	assert.Equal(t, "blue", body["color"])
	assert.Equal(t, "ok", body["also"])
	_, ok := body["broken"]
	assert.False(t, ok, "declaration without a colon must be dropped")
}

func TestParseEmptyBodyDropped(t *testing.T) {
	rules := NewParser("div{}span{color:green}").Parse()
	require.Len(t, rules, 1)
	assert.Equal(t, "span", rules[0].Selector)
}
