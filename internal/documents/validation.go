package documents

import "fmt"

// MaxFileSize is the inclusive upper bound for uploads, in bytes (10 MiB).
const MaxFileSize = 10485760

// AllowedMimeTypes is the fixed allow-list of client-declared types. The
// declared type is trusted; magic bytes are not inspected.
var AllowedMimeTypes = map[string]struct{}{
	"application/pdf": {},
	"image/jpeg":      {},
	"image/png":       {},
	"image/gif":       {},
	"text/plain":      {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
}

// ValidateUpload checks the declared metadata of a candidate file. It has no
// side effects; rejection happens before any record or bytes are written.
func ValidateUpload(filename string, size int64, mimeType string) error {
	if len(filename) < 1 || len(filename) > 255 {
		return fmt.Errorf("%w: filename must be 1-255 characters", ErrInvalidInput)
	}
	if size <= 0 {
		return fmt.Errorf("%w: file size must be positive", ErrInvalidInput)
	}
	if size > MaxFileSize {
		return fmt.Errorf("%w: size exceeds maximum", ErrInvalidInput)
	}
	if _, ok := AllowedMimeTypes[mimeType]; !ok {
		return fmt.Errorf("%w: type not allowed", ErrInvalidInput)
	}
	return nil
}
