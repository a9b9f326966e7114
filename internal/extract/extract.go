// Package extract turns uploaded documents into plain text for the scorer.
// Only text documents are supported; binary formats are reported as
// unsupported rather than guessed at.
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Kind classifies why a document could not be turned into text.
type Kind string

const (
	KindEmpty       Kind = "empty"
	KindUnreadable  Kind = "unreadable"
	KindUnsupported Kind = "unsupported"
	KindNoText      Kind = "no_text"
	KindTooLarge    Kind = "too_large"
)

// MaxSize is the largest accepted document, in bytes.
const MaxSize = 5 << 20

// Error is the extraction failure surfaced unchanged to callers.
type Error struct {
	Kind   Kind
	Source string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("extracting text from %s: %s", e.source(), e.message())
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) source() string {
	if e.Source == "" {
		return "document"
	}
	return e.Source
}

func (e *Error) message() string {
	switch e.Kind {
	case KindEmpty:
		return "document is empty"
	case KindUnreadable:
		return "document cannot be read"
	case KindUnsupported:
		return "only plain-text documents are supported"
	case KindNoText:
		return "document contains no extractable text"
	case KindTooLarge:
		return fmt.Sprintf("document exceeds %d bytes", MaxSize)
	default:
		return string(e.Kind)
	}
}

// IsExtractionError reports whether err is an extraction failure and returns it.
func IsExtractionError(err error) (*Error, bool) {
	var target *Error
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

var textExtensions = map[string]bool{
	"":      true,
	".txt":  true,
	".text": true,
	".md":   true,
}

// FromFile reads a text document from disk. "-" reads stdin.
func FromFile(path string) (string, error) {
	if path == "-" {
		return FromReader("stdin", os.Stdin)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !textExtensions[ext] {
		return "", &Error{Kind: KindUnsupported, Source: path, Err: fmt.Errorf("extension %q", ext)}
	}

	f, err := os.Open(path)
	if err != nil {
		return "", &Error{Kind: KindUnreadable, Source: path, Err: err}
	}
	defer f.Close()

	return FromReader(path, f)
}

// FromReader reads a document of at most MaxSize bytes and validates it as text.
func FromReader(source string, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxSize+1))
	if err != nil {
		return "", &Error{Kind: KindUnreadable, Source: source, Err: err}
	}

	if len(data) > MaxSize {
		return "", &Error{Kind: KindTooLarge, Source: source}
	}

	if len(data) == 0 {
		return "", &Error{Kind: KindEmpty, Source: source}
	}

	if bytes.IndexByte(data, 0) >= 0 || !utf8.Valid(data) {
		return "", &Error{Kind: KindUnsupported, Source: source, Err: errors.New("binary content")}
	}

	return fromText(source, string(data))
}

// FromText validates text that already arrived as a string, e.g. in a JSON body.
func FromText(text string) (string, error) {
	return fromText("request", text)
}

func fromText(source, text string) (string, error) {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if text == "" {
		return "", &Error{Kind: KindNoText, Source: source}
	}
	return text, nil
}
