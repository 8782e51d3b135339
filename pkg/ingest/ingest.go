// Package ingest turns résumé files and URLs into raw text for the parser.
package ingest

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Timeout bounds a single fetch when the caller supplies no deadline of its own.
const Timeout = 30 * time.Second

// MaxDocumentBytes caps how much of a file or response body is read.
const MaxDocumentBytes = 20 << 20

// Format is the container a document arrived in.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatHTML Format = "html"
	FormatText Format = "text"
)

// SupportedExtensions lists the file extensions batch runs pick up.
//
//nolint:gochecknoglobals // Read-only lookup table
var SupportedExtensions = map[string]Format{
	".pdf":  FormatPDF,
	".docx": FormatDOCX,
	".html": FormatHTML,
	".htm":  FormatHTML,
	".txt":  FormatText,
	".md":   FormatText,
}

// IsSupported reports whether a file name has an extension batch runs accept.
func IsSupported(name string) (ok bool) {
	_, ok = SupportedExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// FormatOf picks the extraction format from a file name. Unknown extensions are read as text.
func FormatOf(name string) (format Format) {
	format, ok := SupportedExtensions[strings.ToLower(filepath.Ext(name))]
	if !ok {
		format = FormatText
	}
	return format
}

// Fetch retrieves résumé text from a file or URL.
func Fetch(input string) (content string, err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	content, err = FetchWithContext(ctx, input)
	return content, err
}

// FetchWithContext retrieves résumé text with context.
func FetchWithContext(ctx context.Context, input string) (content string, err error) {
	parsedURL, urlErr := url.Parse(input)
	if urlErr == nil && (parsedURL.Scheme == "http" || parsedURL.Scheme == "https") {
		content, err = fetchFromURL(ctx, input)
		if err != nil {
			err = errors.Wrapf(err, "failed to fetch résumé from URL: %s", input)
			return content, err
		}
		return content, err
	}

	content, err = fetchFromFile(input)
	if err != nil {
		err = errors.Wrapf(err, "failed to fetch résumé from file: %s", input)
		return content, err
	}

	return content, err
}

// fetchFromFile reads a document from disk and extracts its text by extension.
func fetchFromFile(filePath string) (content string, err error) {
	var info os.FileInfo
	info, err = os.Stat(filePath)
	if err != nil {
		err = errors.Wrapf(err, "failed to stat file: %s", filePath)
		return content, err
	}
	if info.Size() > MaxDocumentBytes {
		err = errors.Errorf("file is larger than %d bytes", MaxDocumentBytes)
		return content, err
	}

	var data []byte
	data, err = os.ReadFile(filePath)
	if err != nil {
		err = errors.Wrapf(err, "failed to read file: %s", filePath)
		return content, err
	}

	if len(data) == 0 {
		err = errors.New("file is empty")
		return content, err
	}

	content, err = Extract(FormatOf(filePath), data)
	return content, err
}

// fetchFromURL downloads a document and extracts its text by content type, falling back to the URL
// path's extension.
func fetchFromURL(ctx context.Context, urlStr string) (content string, err error) {
	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return content, err
	}

	req.Header.Set("User-Agent", "resume-parser/1.0")

	client := &http.Client{
		Timeout: Timeout,
	}

	var resp *http.Response
	resp, err = client.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return content, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("HTTP request failed with status: %d", resp.StatusCode)
		return content, err
	}

	var body []byte
	body, err = io.ReadAll(io.LimitReader(resp.Body, MaxDocumentBytes))
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return content, err
	}

	content, err = Extract(formatOfResponse(resp, urlStr), body)
	return content, err
}

func formatOfResponse(resp *http.Response, urlStr string) (format Format) {
	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	switch {
	case strings.Contains(contentType, "application/pdf"):
		format = FormatPDF
	case strings.Contains(contentType, "wordprocessingml"):
		format = FormatDOCX
	case strings.Contains(contentType, "text/plain"), strings.Contains(contentType, "text/markdown"):
		format = FormatText
	default:
		format = FormatHTML
		if parsed, err := url.Parse(urlStr); err == nil {
			if byExt, ok := SupportedExtensions[strings.ToLower(path.Ext(parsed.Path))]; ok {
				format = byExt
			}
		}
	}
	return format
}

// Extract converts document bytes of the given format into raw text. The parser does its own cleanup,
// so only container markup is removed here.
func Extract(format Format, data []byte) (content string, err error) {
	switch format {
	case FormatPDF:
		content, err = extractPDF(data)
	case FormatDOCX:
		content, err = extractDOCX(data)
	case FormatHTML:
		content, err = extractHTML(data)
	default:
		content = string(data)
	}
	if err != nil {
		err = errors.Wrapf(err, "failed to extract %s text", format)
		return content, err
	}

	if strings.TrimSpace(content) == "" {
		err = errors.Errorf("no text found in %s document", format)
		return content, err
	}

	return content, err
}
