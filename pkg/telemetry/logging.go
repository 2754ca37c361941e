package telemetry

import (
	"io"
	"log/slog"
	"regexp"
)

var secretParam = regexp.MustCompile(`(api_key=)[^&\s"]+`)

// NewLogger builds the process logger: text by default, JSON when asked,
// debug level when verbose. Sensitive attributes are redacted.
func NewLogger(w io.Writer, json, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: redactSensitiveData,
	}

	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// redactSensitiveData scrubs sensitive keys from logs, plus api_key query
// parameters embedded in URLs of transport errors.
func redactSensitiveData(groups []string, a slog.Attr) slog.Attr {
	sensitiveKeys := map[string]bool{
		"password": true, "access_key": true, "token": true,
		"secret": true, "api_key": true, "apikey": true,
		"credential": true, "authorization": true,
	}

	if sensitiveKeys[a.Key] {
		return slog.Attr{
			Key:   a.Key,
			Value: slog.StringValue("[REDACTED]"),
		}
	}

	switch a.Value.Kind() {
	case slog.KindString:
		if s := a.Value.String(); secretParam.MatchString(s) {
			return slog.String(a.Key, scrub(s))
		}
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok && secretParam.MatchString(err.Error()) {
			return slog.String(a.Key, scrub(err.Error()))
		}
	}
	return a
}

func scrub(s string) string {
	return secretParam.ReplaceAllString(s, "${1}[REDACTED]")
}
