// Package ingestion turns raw job description input (pasted text, files, HTML
// pages) into the clean plain text the pipeline parses.
package ingestion

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Document is a cleaned job description and its metadata
type Document struct {
	Text     string
	Metadata *Metadata
}

var (
	spaceRun     = regexp.MustCompile(`\s+`)
	blankLineRun = regexp.MustCompile(`\n\n\n+`)
)

// Prepare cleans raw job description input. HTML input is reduced to its
// main text first.
func Prepare(raw, source, location string) (*Document, error) {
	format := FormatText
	text := raw
	if LooksLikeHTML(raw) {
		format = FormatHTML
		extracted, err := HTMLToText(raw)
		if err != nil {
			return nil, err
		}
		text = extracted
	}

	cleaned := CleanText(text)
	return &Document{
		Text:     cleaned,
		Metadata: NewMetadata(cleaned, source, location, format),
	}, nil
}

// PrepareText is Prepare for inline input. Unparseable HTML falls back to
// plain text cleanup.
func PrepareText(raw string) string {
	doc, err := Prepare(raw, SourceInline, "")
	if err != nil {
		return CleanText(raw)
	}
	return doc.Text
}

// ReadFile reads and cleans a job description file
func ReadFile(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Prepare(string(content), SourceFile, path)
}

// CleanText cleans and normalizes text content while preserving structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = blankLineRun.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving structure
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t ")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(trimmed, "#") {
		return spaceRun.ReplaceAllString(trimmed, " ")
	}

	indent := strings.Repeat(" ", len(line)-len(trimmed))

	// Unicode bullets become markdown bullets
	if marker, ok := bulletMarker(trimmed); ok {
		item := strings.TrimSpace(strings.TrimPrefix(trimmed, marker))
		if marker == "• " || marker == "· " {
			marker = "- "
		}
		return indent + marker + spaceRun.ReplaceAllString(item, " ")
	}

	return indent + spaceRun.ReplaceAllString(strings.TrimSpace(trimmed), " ")
}

func bulletMarker(trimmed string) (string, bool) {
	for _, marker := range []string{"- ", "* ", "• ", "· "} {
		if strings.HasPrefix(trimmed, marker) {
			return marker, true
		}
	}
	return "", false
}
