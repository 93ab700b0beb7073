package download

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentinel/fetch"
	"sentinel/gate"
	"sentinel/logging"
	u "sentinel/url"
)

type fetcherFunc func(ctx context.Context, req fetch.Request) (*fetch.Response, error)

func (f fetcherFunc) Do(ctx context.Context, req fetch.Request) (*fetch.Response, error) {
	return f(ctx, req)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"report.pdf", "report.pdf"},
		{"../../etc/passwd", "__etc_passwd"},
		{"some file (1).zip", "some_file__1_.zip"},
		{"", "download"},
		{"   ", "download"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.input), "input %q", tt.input)
	}

	long := SanitizeFilename(string(make([]byte, 200)))
	assert.LessOrEqual(t, len(long), 80)
}

func TestDetectFilename(t *testing.T) {
	target, err := u.NewURL("https://example.com/files/data.csv")
	require.NoError(t, err)

	resp := &fetch.Response{Headers: map[string]string{
		"Content-Disposition": `attachment; filename="monthly report.csv"`,
	}}
	assert.Equal(t, "monthly_report.csv", DetectFilename(resp, target))

	bare := &fetch.Response{}
	assert.Equal(t, "data.csv", DetectFilename(bare, target))
}

func TestDiskSinkRefusesDangerousExtension(t *testing.T) {
	sink := NewDiskSink(t.TempDir(), logging.NewNop())
	_, err := sink.Save([]byte("echo hi"), "setup.exe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "executable")
}

func TestDiskSinkRefusesDisguisedExecutable(t *testing.T) {
	sink := NewDiskSink(t.TempDir(), logging.NewNop())
	// PE header behind an innocent name
	payload := append([]byte("MZ"), make([]byte, 64)...)
	_, err := sink.Save(payload, "holiday-photos.txt")
	require.Error(t, err)
}

func TestDiskSinkWritesFile(t *testing.T) {
	dir := t.TempDir()
	sink := NewDiskSink(dir, logging.NewNop())

	path, err := sink.Save([]byte("hello"), "note.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "note.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestManagerRequiresSuccessStatus(t *testing.T) {
	fetcher := fetcherFunc(func(context.Context, fetch.Request) (*fetch.Response, error) {
		return &fetch.Response{Status: 404, Body: []byte("nope")}, nil
	})
	m := &Manager{Fetcher: fetcher, Sink: NewDiskSink(t.TempDir(), logging.NewNop()), Logger: logging.NewNop()}

	target, err := u.NewURL("https://example.com/missing.zip")
	require.NoError(t, err)
	_, err = m.Download(context.Background(), target)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestManagerPropagatesFetchErrors(t *testing.T) {
	fetcher := fetcherFunc(func(context.Context, fetch.Request) (*fetch.Response, error) {
		return nil, errors.New("connection refused")
	})
	m := &Manager{Fetcher: fetcher, Sink: NewDiskSink(t.TempDir(), logging.NewNop()), Logger: logging.NewNop()}

	target, err := u.NewURL("https://example.com/file.zip")
	require.NoError(t, err)
	_, err = m.Download(context.Background(), target)
	require.Error(t, err)
}

func TestHeuristicClassifier(t *testing.T) {
	c := &HeuristicClassifier{Blocklist: gate.NewBlocklist([]string{"malware.test"})}

	malicious, reason := c.Classify("https://malware.test/installer.zip")
	assert.True(t, malicious)
	assert.Contains(t, reason, "blocklist")

	malicious, reason = c.Classify("https://paypal-verify-account.net/doc.zip")
	assert.True(t, malicious)
	assert.Contains(t, reason, "brand")

	malicious, _ = c.Classify("https://example.com/doc.zip")
	assert.False(t, malicious)
}
