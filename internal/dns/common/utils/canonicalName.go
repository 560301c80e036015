package utils

import "strings"

// CanonicalDNSName returns a DNS name in canonical form:
//   - Any "scheme://" prefix is stripped, since a query name can arrive
//     embedded in a URL-shaped string (e.g. from a hosts-style rule or a
//     client that passes a full URL where a bare name was expected).
//   - Everything from the first '/', '?', ':', or '#' onward is truncated,
//     dropping a path, query string, port, or fragment.
//   - Lowercased.
//   - Trimmed of surrounding whitespace.
//   - No trailing dot because it doesn't add any runtime benefit, only legacy baggage.
func CanonicalDNSName(name string) string {
	name = strings.TrimSpace(name)
	name = stripSchema(name)
	name = stripPathAndQuery(name)
	name = strings.ToLower(name)
	// remove all trailing dots
	for strings.HasSuffix(name, ".") {
		name = strings.TrimSuffix(name, ".")
	}
	return name
}

// stripSchema drops everything up to and including the first "://".
func stripSchema(name string) string {
	if idx := strings.Index(name, "://"); idx >= 0 {
		return name[idx+3:]
	}
	return name
}

// stripPathAndQuery truncates name at its first '/', '?', ':', or '#'.
func stripPathAndQuery(name string) string {
	if idx := strings.IndexAny(name, "/?:#"); idx >= 0 {
		return name[:idx]
	}
	return name
}
