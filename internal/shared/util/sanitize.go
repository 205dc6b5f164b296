package util

import (
	"path/filepath"
	"strings"
)

// SanitizeFileName derives an on-disk safe name from a client-supplied one.
// Path components are stripped and every character outside [A-Za-z0-9._-]
// becomes an underscore. The original name is kept verbatim on the record;
// only the stored copy uses the sanitized form.
func SanitizeFileName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == ".." || base == "/" {
		return "file"
	}

	var b strings.Builder
	b.Grow(len(base))
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	s := strings.Trim(b.String(), ".")
	if s == "" {
		return "file"
	}
	return s
}
