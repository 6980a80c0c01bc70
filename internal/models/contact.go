package models

// ContactRequest represents a contact form submission as received on the
// wire. No field is binding-required: absent fields default to empty strings
// and the pipeline's own validator produces the user-facing errors. The max
// caps are a structural guard against oversized payloads only.
type ContactRequest struct {
	Name    string `json:"name" binding:"omitempty,max=200"`
	Email   string `json:"email" binding:"omitempty,max=320"`
	Reason  string `json:"reason" binding:"omitempty,max=100"`
	Message string `json:"message" binding:"omitempty,max=5000"`
}

// ContactResponse represents the response after submitting the contact form
type ContactResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// DefaultReason is used when the submission carries no reason at all.
const DefaultReason = "Propuesta de trabajo"

// defaultGlyph marks reasons outside the known set.
const defaultGlyph = "💬"

// reasonGlyphs maps each contact reason to the emoji used in the email
// subject and header.
var reasonGlyphs = map[string]string{
	"Consulta general":     "💬",
	"Propuesta de trabajo": "💼",
	"Colaboración":         "🤝",
	"Otro":                 "📩",
}

// GlyphForReason returns the notification glyph for a reason. Unrecognized
// reasons keep their text but fall back to the default glyph.
func GlyphForReason(reason string) string {
	if g, ok := reasonGlyphs[reason]; ok {
		return g
	}
	return defaultGlyph
}
