package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyConfigPath = "config_path"
	KeyProfile    = "profile"
	KeyTarget     = "target"
	KeyTitle      = "title"
	KeyStage      = "stage"
	KeyPath       = "path"
	KeyPlugin     = "plugin"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func ConfigPath(p string) slog.Attr   { return slog.String(KeyConfigPath, p) }
func Profile(name string) slog.Attr   { return slog.String(KeyProfile, name) }
func Target(t string) slog.Attr       { return slog.String(KeyTarget, t) }
func Title(t string) slog.Attr        { return slog.String(KeyTitle, t) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Plugin(name string) slog.Attr    { return slog.String(KeyPlugin, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
