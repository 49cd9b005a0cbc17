package postgres

import (
	"fmt"
	"net/url"
	"strings"
)

// BuildDSN creates a PostgreSQL DSN from the provided options. The password
// is escaped so special characters cannot break the space-separated
// key=value format.
func BuildDSN(opts *Options) string {
	if opts == nil {
		return ""
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		opts.Host,
		opts.Port,
		opts.Username,
		escapePostgresValue(opts.Password),
		opts.Database,
		opts.SSLMode,
	)
}

// BuildURI creates a postgresql:// connection URI from the provided options.
func BuildURI(opts *Options) string {
	if opts == nil {
		return ""
	}
	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
		opts.Username,
		url.QueryEscape(opts.Password),
		opts.Host,
		opts.Port,
		opts.Database,
		opts.SSLMode,
	)
}

// escapePostgresValue quotes a DSN value when it contains spaces, quotes, or
// backslashes. Single quotes are doubled, backslashes escaped.
func escapePostgresValue(value string) string {
	if value == "" {
		return "''"
	}
	if !strings.ContainsAny(value, " '\\") {
		return value
	}
	escaped := strings.ReplaceAll(value, "'", "''")
	escaped = strings.ReplaceAll(escaped, "\\", "\\\\")
	return "'" + escaped + "'"
}
