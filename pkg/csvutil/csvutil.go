// Package csvutil renders the semicolon-delimited CSV dialect used by the
// admin report exports. Fields are double-quoted only when they contain a
// semicolon, quote or newline; internal quotes are doubled. This is a fixed
// export contract (spreadsheets in pt-BR locales expect ';'), so the stdlib
// encoding/csv RFC4180 writer is deliberately not used.
package csvutil

import "strings"

// Separator between fields.
const Separator = ";"

// Escape quotes a single field when needed.
func Escape(v string) string {
	if strings.ContainsAny(v, ";\"\n") {
		return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	}
	return v
}

// Row renders one record.
func Row(fields ...string) string {
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = Escape(f)
	}
	return strings.Join(escaped, Separator)
}

// Join renders a full document: one record per line, no trailing newline.
func Join(rows [][]string) string {
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = Row(r...)
	}
	return strings.Join(lines, "\n")
}
