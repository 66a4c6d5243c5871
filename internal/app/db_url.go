package app

import (
	"net/url"
	"strings"
)

// Traced queries are collapsed to a single line and truncated so span
// attributes stay bounded.
const maxTracedQueryLen = 512

func formatQueryForTrace(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	if len(normalized) > maxTracedQueryLen {
		return normalized[:maxTracedQueryLen] + "..."
	}

	return normalized
}

// dbNameFromURL extracts the database name from either a postgres://
// URL or a key=value connection string. Empty when it cannot tell.
func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)

	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		if name := strings.TrimPrefix(parsed.Path, "/"); name != "" {
			return name
		}
	}

	for _, field := range strings.Fields(trimmed) {
		value, ok := strings.CutPrefix(field, "dbname=")
		if !ok {
			continue
		}
		if name := strings.Trim(value, `"'`); name != "" {
			return name
		}
	}

	return ""
}
