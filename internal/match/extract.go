package match

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-resty/resty/v2"
	"github.com/labstack/gommon/log"
	"github.com/ledongthuc/pdf"
)

// minReadableLength is the threshold below which an extraction attempt
// is considered failed and the next fallback runs.
const minReadableLength = 100

var httpClient = resty.New()

// ExtractTextFromURL downloads a CV and extracts its text. PDF gets a
// real parser; DOC/DOCX fall back to tag scraping and readable-byte
// recovery, which is lossy but good enough for keyword matching.
func ExtractTextFromURL(ctx context.Context, cvURL string) (string, error) {
	resp, err := httpClient.R().SetContext(ctx).Get(cvURL)
	if err != nil {
		return "", fmt.Errorf("download CV: %w", err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("download CV: status %d", resp.StatusCode())
	}

	data := resp.Body()
	contentType := resp.Header().Get("Content-Type")

	if strings.Contains(contentType, "text/plain") || strings.HasSuffix(cvURL, ".txt") {
		return string(data), nil
	}

	if strings.Contains(contentType, "pdf") || strings.HasSuffix(cvURL, ".pdf") {
		text := ExtractTextFromPDF(data)
		if len(text) < minReadableLength {
			text = extractReadableText(data)
		}
		if len(text) >= minReadableLength {
			return text, nil
		}
		return "", fmt.Errorf("could not extract text from PDF; scanned documents need OCR first")
	}

	if strings.Contains(contentType, "wordprocessingml") || strings.HasSuffix(cvURL, ".docx") {
		if text := extractTextFromDOCX(data); len(text) >= minReadableLength {
			return text, nil
		}
	}

	if text := extractReadableText(data); len(text) >= minReadableLength {
		return text, nil
	}

	return "", fmt.Errorf("could not extract readable text; supported formats: PDF, DOC, DOCX, TXT")
}

// ExtractTextFromPDF pulls the plain text out of a PDF document.
func ExtractTextFromPDF(data []byte) (text string) {
	// The parser panics on some malformed files; treat that as an
	// empty extraction so the readable-byte fallback can run.
	defer func() {
		if r := recover(); r != nil {
			log.Warnf("pdf text extraction panicked: %v", r)
			text = ""
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return ""
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return ""
	}
	return strings.TrimSpace(sb.String())
}

var docxTextPatterns = []*regexp.Regexp{
	regexp.MustCompile(`<w:t[^>]*>([^<]+)</w:t>`),
	regexp.MustCompile(`<t[^>]*>([^<]+)</t>`),
	regexp.MustCompile(`<text[^>]*>([^<]+)</text>`),
}

func extractTextFromDOCX(data []byte) string {
	var sb strings.Builder
	content := string(data)

	for _, pattern := range docxTextPatterns {
		for _, m := range pattern.FindAllStringSubmatch(content, -1) {
			if len(m) > 1 {
				sb.WriteString(m[1])
				sb.WriteByte(' ')
			}
		}
	}

	return strings.TrimSpace(sb.String())
}

// extractReadableText salvages word-like runs from arbitrary binary
// data. Last-resort path for DOC files and broken PDFs.
func extractReadableText(data []byte) string {
	var text strings.Builder
	var word strings.Builder

	flush := func() {
		if word.Len() > 2 {
			text.WriteString(word.String())
			text.WriteByte(' ')
		}
		word.Reset()
	}

	for _, b := range data {
		r := rune(b)
		if unicode.IsLetter(r) || unicode.IsDigit(r) || b == '-' || b == '_' {
			word.WriteByte(b)
		} else {
			flush()
		}
	}
	flush()

	return strings.TrimSpace(text.String())
}
