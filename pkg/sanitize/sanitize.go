// Package sanitize normalizes raw contact-form input so it is safe to
// interpolate into HTML documents and log lines. All functions are pure and
// idempotent: applying them twice yields the same result as applying them
// once, so client-side and server-side sanitization can be stacked freely.
package sanitize

import (
	"html"
	"strings"
	"unicode"
)

// Fields holds the four contact-form fields after sanitization.
type Fields struct {
	Name    string
	Email   string
	Reason  string
	Message string
}

// RawFields holds contact-form fields as received on the wire. Absent fields
// are empty strings.
type RawFields struct {
	Name    string
	Email   string
	Reason  string
	Message string
}

// Apply sanitizes every field. It never fails: empty input produces empty
// output. The email field is additionally normalized to its canonical form.
func Apply(raw RawFields) Fields {
	return Fields{
		Name:    String(raw.Name),
		Email:   Email(raw.Email),
		Reason:  String(raw.Reason),
		Message: String(raw.Message),
	}
}

// String trims surrounding whitespace, strips control and other
// non-printable runes (newlines and tabs survive, CRLF becomes LF) and
// HTML-escapes the reserved characters < > & " '.
//
// Escaping is preceded by an unescape pass so already-escaped input is not
// escaped a second time, and the non-printable strip runs between the two so
// entity-encoded control characters cannot survive a single pass. Together
// with the final trim this makes String idempotent.
func String(s string) string {
	s = html.UnescapeString(strings.TrimSpace(s))
	s = stripNonPrintable(s)
	return strings.TrimSpace(html.EscapeString(s))
}

// Email sanitizes an address: trim, unescape, strip non-printables,
// normalize via NormalizeEmail, then HTML-escape like every other field.
// Escaped entities are legal inside a mailto: href, and the escape pass
// means a hostile address can never reach a document unencoded even if
// validation is bypassed. Idempotent for the same reason String is.
func Email(s string) string {
	s = NormalizeEmail(html.UnescapeString(strings.TrimSpace(s)))
	return strings.TrimSpace(html.EscapeString(s))
}

// NormalizeEmail lowercases the address and canonicalizes well-known
// provider quirks: Gmail local parts lose dots and +tag suffixes, and
// googlemail.com is folded into gmail.com. Invalid shapes are returned
// trimmed and lowercased; validation is a separate concern.
func NormalizeEmail(s string) string {
	s = strings.ToLower(stripNonPrintable(strings.TrimSpace(s)))

	at := strings.LastIndex(s, "@")
	if at < 0 {
		return s
	}

	local, domain := s[:at], s[at+1:]
	if domain == "googlemail.com" {
		domain = "gmail.com"
	}
	if domain == "gmail.com" {
		if plus := strings.Index(local, "+"); plus >= 0 {
			local = local[:plus]
		}
		local = strings.ReplaceAll(local, ".", "")
	}

	return local + "@" + domain
}

// stripNonPrintable drops control and non-printable runes. Newlines and tabs
// are kept because the message body may legitimately contain them; CRLF
// pairs collapse to a single LF so the output has one newline convention.
func stripNonPrintable(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\n' || r == '\t' {
			b.WriteRune(r)
			continue
		}
		if unicode.IsControl(r) || !unicode.IsPrint(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
