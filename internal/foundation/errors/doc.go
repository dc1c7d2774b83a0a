// Package errors provides the classified error type used across docsite.
//
// Every failure that can abort an assembly or a build is a ClassifiedError.
// The category selects the CLI exit code. The optional field names the
// declaration path at fault and the hint is printed under the message.
//
//	err := errors.ValidationError("logo and components.SiteTitle are mutually exclusive").
//		WithField("starlight.logo").
//		WithHint("remove either logo or the SiteTitle component override").
//		WithCause(site.ErrConflictingTitleRender).
//		Build()
package errors
