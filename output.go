package skyblockextractor

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	json "github.com/goccy/go-json"
)

// CreateOutputDir makes one directory per run under root, named from the
// handle, the sanitized profile name and a timestamp.
func CreateOutputDir(root, handle, profileName string, now time.Time) (string, error) {
	name := fmt.Sprintf("%s_%s_%s", handle, sanitizeName(profileName), now.Format("20060102_150405"))
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %q: %w", dir, err)
	}
	return dir, nil
}

// sanitizeName keeps letters, digits, spaces and underscores, dropping
// anything a filesystem could object to, and trims trailing spaces.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// writeArtifact pretty-prints one response document and writes it as a single
// complete file, returning the number of bytes written. The content is fully
// materialized before the write, so an interrupt never leaves a torn file
// behind a previously completed one.
func writeArtifact(dir, file string, raw []byte) (int64, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return 0, fmt.Errorf("failed to format %s: %w", file, err)
	}
	buf.WriteByte('\n')

	path := filepath.Join(dir, file)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return int64(buf.Len()), nil
}
