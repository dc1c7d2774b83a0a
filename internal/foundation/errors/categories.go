package errors

// ErrorCategory selects the exit code and tells the user where to look.
type ErrorCategory string

const (
	// CategoryConfig covers problems reading or decoding the declaration file.
	CategoryConfig ErrorCategory = "config"
	// CategoryValidation covers site declarations that decode but violate an invariant.
	CategoryValidation ErrorCategory = "validation"
	CategoryNotFound   ErrorCategory = "not_found"

	// CategoryFileSystem covers asset resolution and output writes.
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryBuild      ErrorCategory = "build"
	CategoryGenerator  ErrorCategory = "generator"

	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity picks the log level the CLI reports an error at.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"
	SeverityError   ErrorSeverity = "error"
	SeverityWarning ErrorSeverity = "warning"
)

// ErrorContext holds structured log attributes for an error.
type ErrorContext map[string]any

// Get retrieves a context value.
func (c ErrorContext) Get(key string) (any, bool) {
	value, exists := c[key]
	return value, exists
}

// GetString retrieves a string context value.
func (c ErrorContext) GetString(key string) (string, bool) {
	if value, exists := c.Get(key); exists {
		if str, ok := value.(string); ok {
			return str, true
		}
	}
	return "", false
}
