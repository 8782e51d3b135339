package ingest

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
    <w:p><w:r><w:t>Experience</w:t></w:r></w:p>
    <w:p><w:r><w:t xml:space="preserve">Software Engineer </w:t></w:r><w:r><w:t>at Acme Corp</w:t></w:r></w:p>
    <w:p><w:r><w:t>Jan 2020</w:t><w:tab/><w:t>Present</w:t></w:r></w:p>
    <w:p><w:r><w:t>Skills</w:t><w:br/><w:t>Go, Rust</w:t></w:r></w:p>
  </w:body>
</w:document>`

func buildDOCX(t *testing.T, files map[string]string) (data []byte) {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	data = buf.Bytes()
	return data
}

func writeFile(t *testing.T, name string, data []byte) (path string) {
	t.Helper()

	path = filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, data, 0600)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	return path
}

func TestFetchFromFile(t *testing.T) {
	testContent := "Jane Doe\nSoftware Engineer"
	testFile := writeFile(t, "resume.txt", []byte(testContent))

	content, err := fetchFromFile(testFile)
	if err != nil {
		t.Fatalf("Failed to fetch from file: %v", err)
	}

	if content != testContent {
		t.Errorf("Expected content '%s', got '%s'", testContent, content)
	}
}

func TestFetchFromFileNonexistent(t *testing.T) {
	_, err := fetchFromFile("/nonexistent/file.txt")
	if err == nil {
		t.Error("Expected error fetching nonexistent file, got nil")
	}
}

func TestFetchFromFileEmpty(t *testing.T) {
	_, err := fetchFromFile(writeFile(t, "empty.txt", []byte("")))
	if err == nil {
		t.Error("Expected error fetching empty file, got nil")
	}
}

func TestFetchDOCX(t *testing.T) {
	path := writeFile(t, "resume.docx", buildDOCX(t, map[string]string{
		"[Content_Types].xml": "<Types/>",
		"word/document.xml":   documentXML,
	}))

	content, err := Fetch(path)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe\nExperience\nSoftware Engineer at Acme Corp\nJan 2020\tPresent\nSkills\nGo, Rust\n", content)
}

func TestFetchDOCXMissingDocument(t *testing.T) {
	path := writeFile(t, "resume.docx", buildDOCX(t, map[string]string{"word/styles.xml": "<w:styles/>"}))

	_, err := Fetch(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "word/document.xml")
}

func TestFetchCorruptDocuments(t *testing.T) {
	for _, name := range []string{"resume.docx", "resume.pdf"} {
		_, err := Fetch(writeFile(t, name, []byte("this is not a real container")))
		assert.Error(t, err, name)
	}
}

func TestExtractHTML(t *testing.T) {
	page := `<html><head><title>CV</title><style>.x{color:red}</style></head>
<body><nav>Home | About</nav><h1>Jane Doe</h1><h2>Skills</h2><ul><li>Go</li><li>Rust</li></ul>
<script>track()</script><p>Built <strong>billing</strong> systems.</p></body></html>`

	content, err := Extract(FormatHTML, []byte(page))
	require.NoError(t, err)

	lines := []string{}
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	assert.Equal(t, []string{"Jane Doe", "Skills", "• Go", "• Rust", "Built billing systems."}, lines)
	assert.NotContains(t, content, "track()")
	assert.NotContains(t, content, "Home | About")
}

func TestExtractEmptyText(t *testing.T) {
	_, err := Extract(FormatHTML, []byte("<html><body><script>x()</script></body></html>"))
	assert.Error(t, err)

	_, err = Extract(FormatText, []byte("  \n\t "))
	assert.Error(t, err)
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		name      string
		format    Format
		supported bool
	}{
		{"cv.PDF", FormatPDF, true},
		{"cv.docx", FormatDOCX, true},
		{"cv.htm", FormatHTML, true},
		{"cv.md", FormatText, true},
		{"cv.txt", FormatText, true},
		{"cv.rtf", FormatText, false},
		{"README", FormatText, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.format, FormatOf(tt.name))
			assert.Equal(t, tt.supported, IsSupported(tt.name))
		})
	}
}

func TestFetchFromURL(t *testing.T) {
	testContent := "<html><body><h1>Jane Doe</h1><p>Software engineer.</p></body></html>"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(testContent))
	}))
	defer server.Close()

	content, err := fetchFromURL(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Failed to fetch from URL: %v", err)
	}

	assert.Equal(t, "Jane Doe\nSoftware engineer.\n", content)
}

func TestFetchFromURLPlainText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("<b>kept</b> as text"))
	}))
	defer server.Close()

	content, err := fetchFromURL(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "<b>kept</b> as text", content)
}

func TestFetchFromURL404(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := fetchFromURL(context.Background(), server.URL)
	if err == nil {
		t.Error("Expected error for 404 response, got nil")
	}
}

func TestFetchFromURLTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
		_, _ = w.Write([]byte("too slow"))
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := fetchFromURL(ctx, server.URL)
	if err == nil {
		t.Error("Expected timeout error, got nil")
	}
}

func TestFetchWithContextURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body>Test content</body></html>"))
	}))
	defer server.Close()

	content, err := FetchWithContext(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Failed to fetch from URL: %v", err)
	}

	assert.Contains(t, content, "Test content")
}

func TestFetch(t *testing.T) {
	content, err := Fetch(writeFile(t, "resume.md", []byte("# Jane Doe")))
	if err != nil {
		t.Fatalf("Failed to fetch: %v", err)
	}

	if content != "# Jane Doe" {
		t.Errorf("Expected '# Jane Doe', got '%s'", content)
	}
}
