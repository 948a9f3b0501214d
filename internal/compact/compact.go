// Package compact implements the token-efficient line encoding used to hand
// commits and pull-request discussion to LLM agents.
//
// Every record becomes a single line of `key:value` fields joined by `|`.
// Newlines inside a value are written as the two-character sequence `\n` and
// restored on decode. The delimiter and the colon are not escaped: a value
// that contains a literal `|` splits the line into extra segments, which are
// dropped when they do not look like `key:value` and merged into the field
// map when they do. That corruption is a known trade-off of the format and
// is kept as-is for compatibility with existing payloads.
package compact

import "strings"

// fieldDelimiter separates key:value fields within one encoded line.
const fieldDelimiter = "|"

// newlineEscape is the on-wire stand-in for a literal newline in a value.
const newlineEscape = `\n`

// escapeValue rewrites literal newlines so the value fits on one line.
func escapeValue(v string) string {
	return strings.ReplaceAll(v, "\n", newlineEscape)
}

// unescapeValue restores literal newlines in a decoded value.
func unescapeValue(v string) string {
	return strings.ReplaceAll(v, newlineEscape, "\n")
}

// fieldMap splits an encoded line into its key→value fields. Each segment is
// split on the first colon only, so values may themselves contain colons.
// Segments without a colon are discarded; a repeated key keeps the later
// value. Lookups on the returned map yield "" for missing keys.
func fieldMap(line string) map[string]string {
	fields := make(map[string]string)
	for _, segment := range strings.Split(line, fieldDelimiter) {
		key, value, ok := strings.Cut(segment, ":")
		if !ok {
			continue
		}
		fields[key] = value
	}
	return fields
}

// joinFields assembles ordered key:value pairs into one encoded line.
func joinFields(pairs ...string) string {
	return strings.Join(pairs, fieldDelimiter)
}

// joinLines joins per-record lines into a multi-record payload.
func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// splitLines breaks a multi-record payload into individual record lines,
// dropping blank lines and tolerating CRLF input.
func splitLines(payload string) []string {
	var out []string
	for _, line := range strings.Split(payload, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
