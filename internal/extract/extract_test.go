package extract

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFile(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	resume := write("resume.txt", "Jane Doe\r\nSkills: Go, Python\r\n")
	empty := write("empty.txt", "")
	blank := write("blank.md", " \n\t\n")
	binary := write("binary.txt", "abc\x00def")
	pdf := write("resume.pdf", "%PDF-1.7")

	text, err := FromFile(resume)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSkills: Go, Python", text)

	tests := []struct {
		path string
		kind Kind
	}{
		{path: empty, kind: KindEmpty},
		{path: blank, kind: KindNoText},
		{path: binary, kind: KindUnsupported},
		{path: pdf, kind: KindUnsupported},
		{path: filepath.Join(dir, "missing.txt"), kind: KindUnreadable},
	}

	for _, tt := range tests {
		t.Run(filepath.Base(tt.path), func(t *testing.T) {
			_, err := FromFile(tt.path)
			extractErr, ok := IsExtractionError(err)
			require.True(t, ok, "expected extraction error, got %v", err)
			assert.Equal(t, tt.kind, extractErr.Kind)
			assert.Contains(t, err.Error(), tt.path)
		})
	}
}

func TestFromText(t *testing.T) {
	text, err := FromText("  Experience: 5 years  ")
	require.NoError(t, err)
	assert.Equal(t, "Experience: 5 years", text)

	_, err = FromText("   ")
	extractErr, ok := IsExtractionError(err)
	require.True(t, ok)
	assert.Equal(t, KindNoText, extractErr.Kind)
	assert.True(t, strings.Contains(err.Error(), "no extractable text"))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("disk on fire")
	err := &Error{Kind: KindUnreadable, Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "document cannot be read: disk on fire")

	_, ok := IsExtractionError(cause)
	assert.False(t, ok)
}

func TestFromReaderSizeLimit(t *testing.T) {
	tests := []struct {
		name    string
		content string
		kind    Kind
	}{
		{name: "exactly at limit", content: strings.Repeat("a", MaxSize)},
		{name: "one byte over", content: strings.Repeat("a", MaxSize+1), kind: KindTooLarge},
		{name: "rune split by limit", content: strings.Repeat("a", MaxSize-1) + "é rest", kind: KindTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := FromReader("upload", strings.NewReader(tt.content))
			if tt.kind == "" {
				require.NoError(t, err)
				assert.Len(t, text, MaxSize)
				return
			}

			extractErr, ok := IsExtractionError(err)
			require.True(t, ok)
			assert.Equal(t, tt.kind, extractErr.Kind)
			assert.Contains(t, err.Error(), "exceeds")
		})
	}
}
