package ingest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

// extractPDF reads the text layer page by page, one line per text row. Malformed files can panic
// inside the PDF reader; that is reported as an error.
func extractPDF(data []byte) (content string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("malformed PDF: %v", r)
		}
	}()

	var reader *pdf.Reader
	reader, err = pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		err = errors.Wrap(err, "failed to open PDF")
		return content, err
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		rows, rowErr := page.GetTextByRow()
		if rowErr != nil {
			text, textErr := page.GetPlainText(nil)
			if textErr != nil {
				continue
			}
			sb.WriteString(text)
			sb.WriteString("\n")
			continue
		}

		for _, row := range rows {
			words := make([]string, 0, len(row.Content))
			for _, word := range row.Content {
				words = append(words, word.S)
			}
			sb.WriteString(strings.Join(words, " "))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	content = sb.String()
	return content, err
}

// extractDOCX walks word/document.xml: text runs are copied, tabs and breaks kept, and every
// paragraph ends a line.
func extractDOCX(data []byte) (content string, err error) {
	var archive *zip.Reader
	archive, err = zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		err = errors.Wrap(err, "failed to open DOCX container")
		return content, err
	}

	var document *zip.File
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			document = f
			break
		}
	}
	if document == nil {
		err = errors.New("no word/document.xml found in DOCX")
		return content, err
	}

	var rc io.ReadCloser
	rc, err = document.Open()
	if err != nil {
		err = errors.Wrap(err, "failed to open word/document.xml")
		return content, err
	}
	defer rc.Close()

	var sb strings.Builder
	decoder := xml.NewDecoder(io.LimitReader(rc, MaxDocumentBytes))
	inText := false
	inTabStops := false
	for {
		token, tokenErr := decoder.Token()
		if tokenErr == io.EOF {
			break
		}
		if tokenErr != nil {
			err = errors.Wrap(tokenErr, "failed to decode word/document.xml")
			return content, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tabs":
				inTabStops = true
			case "tab":
				if !inTabStops {
					sb.WriteString("\t")
				}
			case "br", "cr":
				sb.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "tabs":
				inTabStops = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}

	content = sb.String()
	return content, err
}

// blockElements end a line of text when rendered.
const blockElements = "p, div, li, tr, br, h1, h2, h3, h4, h5, h6, section, article, header, footer, dt, dd, blockquote, pre, hr"

// extractHTML drops script and navigation noise and keeps block structure as line breaks so section
// headings stay on their own lines. List items become bullets.
func extractHTML(data []byte) (content string, err error) {
	var doc *goquery.Document
	doc, err = goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		err = errors.Wrap(err, "failed to parse HTML")
		return content, err
	}

	doc.Find("script, style, noscript, nav, template, svg").Remove()

	doc.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependNodes(&html.Node{Type: html.TextNode, Data: "• "})
	})
	doc.Find(blockElements).Each(func(_ int, s *goquery.Selection) {
		s.AppendNodes(&html.Node{Type: html.TextNode, Data: "\n"})
	})

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	content = root.Text()
	return content, err
}
