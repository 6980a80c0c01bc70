// Package validate holds the contact-form field rules. It is the single
// source of truth for both sides of the pipeline: the HTTP handler re-checks
// submissions with it and the contactform client runs it before touching the
// network, so the two can never drift apart.
package validate

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/DevByAndrei/portfolio/pkg/sanitize"
)

// Spanish user-facing messages, matching the portfolio UI copy.
const (
	MsgNameRequired    = "El nombre es obligatorio."
	MsgNameTooShort    = "El nombre debe tener al menos 2 letras."
	MsgNameInvalid     = "El nombre contiene caracteres inválidos."
	MsgEmailRequired   = "El correo es obligatorio."
	MsgEmailInvalid    = "Introduce un correo electrónico válido."
	MsgMessageRequired = "El mensaje es obligatorio."
	MsgMessageTooShort = "El mensaje debe tener al menos 10 caracteres."
)

const (
	minNameLen    = 2
	minMessageLen = 10
)

var (
	// Unicode letters plus space, apostrophe and hyphen. Accented names
	// ("José", "Núñez-Pérez") must pass.
	nameRe = regexp.MustCompile(`^[\p{L}\s'-]+$`)
	// local@domain.tld shape; full RFC 5322 parsing is deliberately out of
	// scope, this mirrors what the form promises the user. HTML-reserved
	// characters are rejected outright so an address can never smuggle
	// markup past the sanitizer's escape pass.
	emailRe = regexp.MustCompile(`^[^\s@<>"']+@[^\s@<>"']+\.[^\s@<>"']+$`)
)

// FieldOrder is the order in which the server reports the first failing
// field. The client shows the whole map, the HTTP contract returns one
// message (see DESIGN.md).
var FieldOrder = []string{"name", "email", "message"}

// Fields checks sanitized submission fields and returns a field→message map.
// An empty map means the submission is valid. Each field stops at its first
// failing rule; fields are checked independently of each other.
//
// Lengths and character classes are judged on the unescaped text, so an
// apostrophe the sanitizer turned into &#39; still counts as one permitted
// rune.
func Fields(f sanitize.Fields) map[string]string {
	errs := make(map[string]string)

	name := html.UnescapeString(strings.TrimSpace(f.Name))
	switch {
	case name == "":
		errs["name"] = MsgNameRequired
	case utf8.RuneCountInString(name) < minNameLen:
		errs["name"] = MsgNameTooShort
	case !nameRe.MatchString(name):
		errs["name"] = MsgNameInvalid
	}

	email := html.UnescapeString(strings.TrimSpace(f.Email))
	switch {
	case email == "":
		errs["email"] = MsgEmailRequired
	case !emailRe.MatchString(email):
		errs["email"] = MsgEmailInvalid
	}

	message := html.UnescapeString(strings.TrimSpace(f.Message))
	switch {
	case message == "":
		errs["message"] = MsgMessageRequired
	case utf8.RuneCountInString(message) < minMessageLen:
		errs["message"] = MsgMessageTooShort
	}

	return errs
}

// First returns the first failing field (per FieldOrder) and its message.
// ok is false when the map is empty.
func First(errs map[string]string) (field, msg string, ok bool) {
	for _, f := range FieldOrder {
		if m, found := errs[f]; found {
			return f, m, true
		}
	}
	for f, m := range errs {
		return f, m, true
	}
	return "", "", false
}
