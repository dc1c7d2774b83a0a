package errors

// ErrorBuilder provides a fluent API for creating ClassifiedError instances.
type ErrorBuilder struct {
	err ClassifiedError
}

// NewError creates a new ErrorBuilder with the specified category and message.
func NewError(category ErrorCategory, message string) *ErrorBuilder {
	return &ErrorBuilder{err: ClassifiedError{
		category: category,
		severity: SeverityError,
		message:  message,
		context:  make(ErrorContext),
	}}
}

// WrapError creates a new ErrorBuilder that wraps an existing error.
func WrapError(err error, category ErrorCategory, message string) *ErrorBuilder {
	return NewError(category, message).WithCause(err)
}

// WithSeverity sets the error severity.
func (b *ErrorBuilder) WithSeverity(severity ErrorSeverity) *ErrorBuilder {
	b.err.severity = severity
	return b
}

// WithCause sets the wrapped error.
func (b *ErrorBuilder) WithCause(err error) *ErrorBuilder {
	b.err.cause = err
	return b
}

// WithField names the declaration field at fault.
func (b *ErrorBuilder) WithField(path string) *ErrorBuilder {
	b.err.field = path
	return b
}

// WithHint sets the suggestion printed under the error message.
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.err.hint = hint
	return b
}

// WithContext adds a structured log attribute.
func (b *ErrorBuilder) WithContext(key string, value any) *ErrorBuilder {
	b.err.context[key] = value
	return b
}

// Build creates the final ClassifiedError. The builder must not be reused.
func (b *ErrorBuilder) Build() *ClassifiedError {
	e := b.err
	return &e
}

// ConfigError creates a declaration file error.
func ConfigError(message string) *ErrorBuilder {
	return NewError(CategoryConfig, message).WithSeverity(SeverityFatal)
}

// ValidationError creates a site declaration validation error.
func ValidationError(message string) *ErrorBuilder {
	return NewError(CategoryValidation, message)
}

// NotFoundError creates a missing resource error.
func NotFoundError(message string) *ErrorBuilder {
	return NewError(CategoryNotFound, message)
}

// FileSystemError creates a filesystem error.
func FileSystemError(message string) *ErrorBuilder {
	return NewError(CategoryFileSystem, message)
}

// GeneratorError creates an error raised by the external site generator.
func GeneratorError(message string) *ErrorBuilder {
	return NewError(CategoryGenerator, message).WithSeverity(SeverityFatal)
}

// InternalError creates an internal error.
func InternalError(message string) *ErrorBuilder {
	return NewError(CategoryInternal, message).WithSeverity(SeverityFatal)
}
