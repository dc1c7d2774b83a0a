// Package site assembles and validates the documentation site configuration.
//
// A Declaration is the literal record a user writes (theme and styling
// options). Build turns it into an immutable *Config or a classified
// validation error. Resolve checks that every referenced asset exists under a
// project root and fills sidebar labels from page titles. Merge layers a
// profile declaration over a base one.
//
// The resulting Config is handed to an emitter which writes the external
// generator's native configuration file; nothing in this package performs
// rendering.
package site
