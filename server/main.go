// A local page server for exercising the browser by hand: styled text,
// lists, a GET search form, a POST guestbook, and a download link.
package main

import (
	"bufio"
	"fmt"
	"html"
	"io"
	"net"
	urllib "net/url"
	"slices"
	"strconv"
	"strings"
)

var entries = []string{
	"First visitor was here.",
	"Rendered without a single script.",
}

func main() {
	listener, err := net.Listen("tcp", ":8000")
	if err != nil {
		panic(err)
	}
	defer listener.Close()

	fmt.Println("Listening on :8000")
	for {
		conn, err := listener.Accept()
		if err != nil {
			fmt.Println("Error accepting:", err)
			continue
		}
		go handleConnection(conn)
	}
}

func handleConnection(conn net.Conn) {
	defer conn.Close()
	reader := bufio.NewReader(conn)

	reqline, err := reader.ReadString('\n')
	if err != nil {
		return
	}
	fmt.Println("Request: " + strings.TrimSuffix(reqline, "\r\n"))
	split := strings.SplitN(reqline, " ", 3)
	if len(split) < 3 {
		return
	}
	method, url := split[0], split[1]
	if !slices.Contains([]string{"GET", "POST"}, method) {
		return
	}

	headers := make(map[string]string)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		if line == "\r\n" {
			break
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) == 2 {
			headers[strings.ToLower(parts[0])] = strings.TrimSpace(parts[1])
		}
	}

	var body string
	if val, ok := headers["content-length"]; ok {
		length, _ := strconv.Atoi(val)
		buf := make([]byte, length)
		if _, err := io.ReadFull(reader, buf); err != nil {
			return
		}
		body = string(buf)
	}

	status, payload, contentType := route(method, url, body)
	response := "HTTP/1.1 " + status + "\r\n"
	response += "Content-Type: " + contentType + "\r\n"
	response += "Content-Length: " + strconv.Itoa(len(payload)) + "\r\n"
	response += "Connection: close\r\n"
	response += "\r\n" + payload
	conn.Write([]byte(response))
}

func route(method, url, body string) (string, string, string) {
	path := url
	var query string
	if i := strings.Index(url, "?"); i >= 0 {
		path, query = url[:i], url[i+1:]
	}

	switch {
	case method == "GET" && path == "/":
		return "200 OK", homePage(), "text/html"
	case method == "GET" && path == "/styles.css":
		return "200 OK", styleSheet, "text/css"
	case method == "GET" && path == "/search":
		return "200 OK", searchPage(query), "text/html"
	case method == "GET" && path == "/guestbook":
		return "200 OK", guestbookPage(), "text/html"
	case method == "POST" && path == "/guestbook":
		params := formDecode(body)
		if entry := strings.TrimSpace(params["entry"]); entry != "" {
			entries = append(entries, entry)
		}
		return "200 OK", guestbookPage(), "text/html"
	case method == "GET" && path == "/files/notes.pdf":
		return "200 OK", "%PDF-1.4 not really a document", "application/pdf"
	default:
		return "404 Not Found", notFound(path), "text/html"
	}
}

const styleSheet = `
h1 { color: darkblue; }
.note { color: gray; font-style: italic; }
#banner { background-color: lightyellow; font-weight: bold; }
button { display: none; }
`

func homePage() string {
	return `<!doctype html>
<html>
<head>
<title>Sentinel Demo Pages</title>
<link rel="stylesheet" href="/styles.css">
</head>
<body>
<h1>Sentinel demo pages</h1>
<p id="banner">Everything here renders without scripts.</p>
<ul>
<li>A <a href="/search">search form</a> submitted with GET</li>
<li>A <a href="/guestbook">guestbook</a> submitted with POST</li>
<li>A <a href="/files/notes.pdf">downloadable file</a></li>
</ul>
<p class="note">The stylesheet tries to hide this button; it stays visible:</p>
<button>Still here</button>
<script>alert("never runs");</script>
</body>
</html>`
}

func searchPage(query string) string {
	params := formDecode(query)
	result := ""
	if q, ok := params["q"]; ok {
		result = "<p>You searched for <b>" + html.EscapeString(q) + "</b>.</p>"
	}
	return `<!doctype html>
<html>
<head><title>Search</title><link rel="stylesheet" href="/styles.css"></head>
<body>
<h2>Search</h2>
<form action="/search" method="get">
<input name="q" placeholder="Type something">
<input type="submit" value="Search">
</form>
` + result + `
<p><a href="/">Back home</a></p>
</body>
</html>`
}

func guestbookPage() string {
	var sb strings.Builder
	sb.WriteString(`<!doctype html>
<html>
<head><title>Guestbook</title><link rel="stylesheet" href="/styles.css"></head>
<body>
<h2>Guestbook</h2>
<ol>
`)
	for _, entry := range entries {
		sb.WriteString("<li>" + html.EscapeString(entry) + "</li>\n")
	}
	sb.WriteString(`</ol>
<form action="/guestbook" method="post">
<input name="entry" placeholder="Leave a note">
<button>Sign</button>
</form>
<p><a href="/">Back home</a></p>
</body>
</html>`)
	return sb.String()
}

func notFound(path string) string {
	return `<!doctype html>
<html>
<head><title>Not found</title></head>
<body>
<h1>404</h1>
<p>No page at ` + html.EscapeString(path) + `</p>
</body>
</html>`
}

func formDecode(encoded string) map[string]string {
	params := make(map[string]string)
	for _, field := range strings.Split(encoded, "&") {
		name, value, found := strings.Cut(field, "=")
		if !found {
			continue
		}
		n, err1 := urllib.QueryUnescape(name)
		v, err2 := urllib.QueryUnescape(value)
		if err1 != nil || err2 != nil {
			continue
		}
		params[n] = v
	}
	return params
}
