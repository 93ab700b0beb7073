package browser

import "fmt"

// Internal documents are plain markup rendered through the normal pipeline,
// so they exercise the same parser and renderer as network pages.

const welcomeDocument = `
<html>
<head><title>Sentinel</title></head>
<body>
<h1>Sentinel</h1>
<p>A small browser that renders pages without running their scripts.</p>
<form action="https://duckduckgo.com/lite/" method="get">
<input name="q" placeholder="Search the web">
<input type="submit" value="Search">
</form>
<p>Type an address above, or search here.</p>
</body>
</html>`

const loadingDocument = `
<html>
<head><title>Loading</title></head>
<body>
<p><i>Loading…</i></p>
</body>
</html>`

func errorDocument(message string) string {
	return fmt.Sprintf(`
<html>
<head><title>Page unavailable</title></head>
<body>
<h1>Page unavailable</h1>
<p>%s</p>
</body>
</html>`, message)
}

func blockedDocument(target, reason string) string {
	return fmt.Sprintf(`
<html>
<head><title>Blocked</title></head>
<body>
<h1>Navigation blocked</h1>
<p>%s</p>
<p>%s</p>
</body>
</html>`, target, reason)
}
