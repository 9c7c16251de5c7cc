package service

import (
	"net/url"
	"strings"
	"unicode"
)

// NormalizeURL validates and canonicalizes a raw URL submission. Input with
// no scheme is retried with an https:// prefix. The empty string is the
// rejection sentinel: it is returned for input that is blank after trimming,
// contains embedded whitespace, fails to parse, uses a scheme other than
// http or https, or has an empty host.
func NormalizeURL(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return ""
	}

	if strings.IndexFunc(cleaned, unicode.IsSpace) != -1 {
		return ""
	}

	parsed, err := url.Parse(cleaned)
	if err != nil {
		return ""
	}

	if parsed.Scheme == "" {
		cleaned = "https://" + cleaned

		parsed, err = url.Parse(cleaned)
		if err != nil {
			return ""
		}
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ""
	}

	if parsed.Host == "" {
		return ""
	}

	return cleaned
}
