package errors

import (
	stderrors "errors"
	"fmt"
	"maps"
)

// ClassifiedError is a failure with a category, an optional declaration
// field it refers to and a hint for fixing it.
type ClassifiedError struct {
	category ErrorCategory
	severity ErrorSeverity
	message  string
	field    string
	hint     string
	cause    error
	context  ErrorContext
}

func (e *ClassifiedError) Error() string {
	msg := e.message
	if e.field != "" {
		msg = e.field + ": " + msg
	}
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.category, msg, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.category, msg)
}

// Unwrap exposes the cause so errors.Is reaches sentinel errors.
func (e *ClassifiedError) Unwrap() error {
	return e.cause
}

func (e *ClassifiedError) Category() ErrorCategory { return e.category }
func (e *ClassifiedError) Severity() ErrorSeverity { return e.severity }
func (e *ClassifiedError) Message() string         { return e.message }
func (e *ClassifiedError) Cause() error            { return e.cause }
func (e *ClassifiedError) Context() ErrorContext   { return e.context }

// Field is the dotted declaration path the error refers to, e.g.
// "starlight.social.email". Empty when the error is not tied to one field.
func (e *ClassifiedError) Field() string { return e.field }

// Hint is a one-line suggestion shown to the user below the message.
func (e *ClassifiedError) Hint() string { return e.hint }

// WithContext returns a copy of e with key set.
func (e *ClassifiedError) WithContext(key string, value any) *ClassifiedError {
	next := *e
	next.context = make(ErrorContext, len(e.context)+1)
	maps.Copy(next.context, e.context)
	next.context[key] = value
	return &next
}

// Is matches another ClassifiedError by category and message.
func (e *ClassifiedError) Is(target error) bool {
	if other, ok := target.(*ClassifiedError); ok {
		return e.category == other.category && e.message == other.message
	}
	return false
}

// IsFatal reports whether the error stops the whole command.
func (e *ClassifiedError) IsFatal() bool {
	return e.severity == SeverityFatal
}

// AsClassified finds the first ClassifiedError in err's chain.
func AsClassified(err error) (*ClassifiedError, bool) {
	var classified *ClassifiedError
	if stderrors.As(err, &classified) {
		return classified, true
	}
	return nil, false
}

// HasCategory checks if the classified error in the chain belongs to a category.
func HasCategory(err error, category ErrorCategory) bool {
	if classified, ok := AsClassified(err); ok {
		return classified.category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal.
func GetCategory(err error) ErrorCategory {
	if classified, ok := AsClassified(err); ok {
		return classified.Category()
	}
	return CategoryInternal
}

// FieldOf returns the declaration field of the classified error in err's
// chain, if any.
func FieldOf(err error) string {
	if classified, ok := AsClassified(err); ok {
		return classified.field
	}
	return ""
}
