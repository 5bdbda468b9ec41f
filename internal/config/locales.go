package config

import "log/slog"

const (
	LangEN = "en"
	LangES = "es"
)

// GetLocaleConfig returns lang when a catalog exists for it, English otherwise.
func GetLocaleConfig(lang string) string {
	switch lang {
	case LangEN:
		return LangEN
	case LangES:
		return LangES
	default:
		slog.Warn("language not supported, falling back to English", "language", lang)
		return LangEN
	}
}
