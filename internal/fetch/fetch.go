// Package fetch reads document sources: local files and standard input.
// Remote sources are rejected; acquiring content over the network is left to
// the tools that produce the files.
package fetch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// MaxFileSizeBytes caps the size of a single source to prevent memory overload.
const MaxFileSizeBytes = 50 * 1024 * 1024

// Stdin is the source name that reads standard input.
const Stdin = "-"

// stdin is replaced in tests
var stdin io.ReadCloser = os.Stdin

// limitedReadCloser wraps an io.ReadCloser to enforce size limits
type limitedReadCloser struct {
	io.ReadCloser
	N      int64  // max bytes remaining
	source string // for error messages
}

func (l *limitedReadCloser) Read(p []byte) (n int, err error) {
	if l.N <= 0 {
		return 0, fmt.Errorf("content from %q exceeds size limit", l.source)
	}
	if int64(len(p)) > l.N {
		p = p[0:l.N]
	}
	n, err = l.ReadCloser.Read(p)
	l.N -= int64(n)
	return
}

// GetContent opens a source for reading:
//   - "-" reads from standard input
//   - everything else is treated as a local file path
//
// URLs are refused with an error.
func GetContent(ctx context.Context, source string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch {
	case source == Stdin:
		// stdin has no size to check up front, so it is capped while reading
		return &limitedReadCloser{
			ReadCloser: io.NopCloser(stdin),
			N:          MaxFileSizeBytes + 1,
			source:     "stdin",
		}, nil
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		return nil, fmt.Errorf("remote source %q is not supported; download it first", source)
	default:
		return openFile(source)
	}
}

// ReadText reads a whole source as text.
func ReadText(ctx context.Context, source string) (string, error) {
	reader, err := GetContent(ctx, source)
	if err != nil {
		return "", err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", source, err)
	}
	return string(data), nil
}

// Line is one non-blank line of a source.
type Line struct {
	Number int    // 1-based position in the source, blank lines included
	Text   string // trimmed content
}

// ReadLines reads a source and returns its non-blank lines, one document per line.
func ReadLines(ctx context.Context, source string) ([]Line, error) {
	reader, err := GetContent(ctx, source)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	var lines []Line
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 64*1024), MaxFileSizeBytes)
	for number := 1; scanner.Scan(); number++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if text := strings.TrimSpace(scanner.Text()); text != "" {
			lines = append(lines, Line{Number: number, Text: text})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lines from %q: %w", source, err)
	}
	return lines, nil
}

// openFile opens a local file for reading with better error messages
func openFile(path string) (io.ReadCloser, error) {
	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file %q does not exist", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to access file %q: %w", path, err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%q is a directory", path)
	}

	// check file size before opening to prevent memory overload
	if fileInfo.Size() > MaxFileSizeBytes {
		return nil, fmt.Errorf("file %q is too large (%d bytes > %d bytes limit)",
			path, fileInfo.Size(), MaxFileSizeBytes)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", path, err)
	}

	return file, nil
}
