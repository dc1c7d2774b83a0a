package site

import (
	"errors"
	"fmt"
	"strings"

	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// Sentinel causes carried by the classified errors returned from this package.
// Match them with errors.Is.
var (
	ErrMissingTitle           = errors.New("missing title")
	ErrConflictingTitleRender = errors.New("conflicting title render")
	ErrUnresolvedAssetPath    = errors.New("unresolved asset path")
	ErrUnknownComponentSlot   = errors.New("unknown component slot")
	ErrInvalidSocialLink      = errors.New("invalid social link")
	ErrInvalidSidebar         = errors.New("invalid sidebar")
	ErrInvalidLogo            = errors.New("invalid logo")
)

func missingTitleError() error {
	return ferrors.ValidationError("title must be non-empty").
		WithField("starlight.title").
		WithCause(ErrMissingTitle).
		WithHint("set the title option of the theme integration").
		Build()
}

func emptyLogoError() error {
	return ferrors.ValidationError("logo.src must reference an image asset").
		WithField("starlight.logo.src").
		WithCause(ErrInvalidLogo).
		WithHint("set logo.src or remove the logo").
		Build()
}

func conflictingTitleRenderError(logoSrc, component string) error {
	return ferrors.ValidationError("logo and components.SiteTitle are mutually exclusive").
		WithField("starlight.logo").
		WithCause(ErrConflictingTitleRender).
		WithContext("logo", logoSrc).
		WithContext("component", component).
		WithHint("remove either logo or the SiteTitle component override").
		Build()
}

func unknownSlotError(slot string) error {
	return ferrors.ValidationError(fmt.Sprintf("component slot %q is not a theme slot", slot)).
		WithField("starlight.components." + slot).
		WithCause(ErrUnknownComponentSlot).
		WithContext("slot", slot).
		Build()
}

func invalidSocialError(platform, uri, reason string) error {
	return ferrors.ValidationError(fmt.Sprintf("social link %q: %s", platform, reason)).
		WithField("starlight.social." + platform).
		WithCause(ErrInvalidSocialLink).
		WithContext("platform", platform).
		WithContext("uri", uri).
		Build()
}

func invalidSidebarError(at, reason string) error {
	return ferrors.ValidationError(fmt.Sprintf("%s: %s", at, reason)).
		WithField("starlight." + at).
		WithCause(ErrInvalidSidebar).
		Build()
}

func unresolvedAssetsError(root string, missing []string) error {
	return ferrors.FileSystemError(fmt.Sprintf("%d referenced asset(s) not found: %s", len(missing), strings.Join(missing, ", "))).
		WithCause(ErrUnresolvedAssetPath).
		WithContext("root", root).
		WithContext("paths", missing).
		Build()
}
