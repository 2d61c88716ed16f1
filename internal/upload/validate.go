package upload

// MaxFileSize is the largest accepted candidate, inclusive (5 MiB)
const MaxFileSize int64 = 5 * 1024 * 1024

// Validation failure reasons shown to the user
const (
	ReasonNoFile          = "Please select a file"
	ReasonUnsupportedType = "Please upload an image file (JPEG, PNG, GIF, or BMP)"
	ReasonTooLarge        = "File size must be less than 5MB"
)

// allowedTypes lists the accepted declared media types
var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/bmp":  true,
}

// AllowedTypes returns the accepted media types in display order
func AllowedTypes() []string {
	return []string{"image/jpeg", "image/png", "image/gif", "image/bmp"}
}

// IsAllowedType reports whether mediaType is one of the accepted image types
func IsAllowedType(mediaType string) bool {
	return allowedTypes[mediaType]
}

// Result is the outcome of validating a candidate
type Result struct {
	OK  bool
	Err *Error
}

// Reason returns the failure reason, or "" when validation passed
func (r Result) Reason() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Message
}

// Validate checks the candidate against the fixed type and size policy. It is
// a pure function of the declared type and byte size.
func Validate(c *Candidate) Result {
	if c == nil {
		return fail(KindNoFileSelected, ReasonNoFile)
	}
	if !IsAllowedType(c.Type) {
		return fail(KindUnsupportedType, ReasonUnsupportedType)
	}
	if c.Size > MaxFileSize {
		return fail(KindFileTooLarge, ReasonTooLarge)
	}
	return Result{OK: true}
}

func fail(kind ErrorKind, reason string) Result {
	return Result{Err: NewError(kind, reason)}
}
